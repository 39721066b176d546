package dashboard

import (
	"fmt"
	"strings"
	"unicode"
)

type Column struct {
	Name  string
	Label string
}

// Row is one rendered record; Cells follow the column order.
type Row struct {
	ID    int64
	Cells []string
}

type FieldView struct {
	Name      string
	Label     string
	Value     string
	Error     string
	InputType string
	Required  bool
}

type DialogView struct {
	Kind   string
	Open   bool
	ID     int64
	Title  string
	Fields []FieldView
}

type PagerView struct {
	From        int
	To          int
	Offset      int
	Limit       int
	CanPrevious bool
	CanNext     bool
}

// FilterView carries the product filter values and their dropdown options.
type FilterView struct {
	MainCat        string
	SubCat         string
	Brand          string
	Model          string
	MainCategories []string
	SubCategories  []string
	Brands         []string
}

// View is a render-ready snapshot of a screen.
type View struct {
	Key      string
	Title    string
	Singular string
	Heading  string
	Loading  bool
	Loaded   bool
	Columns  []Column
	Rows     []Row
	Dialog   DialogView
	Pager    *PagerView
	Filters  *FilterView
}

func columnsOf(fields []Field) []Column {
	columns := make([]Column, len(fields))
	for i, f := range fields {
		columns[i] = Column{Name: f.Name, Label: f.Label}
	}
	return columns
}

func rowOf(id int64, fields []Field, values map[string]string) Row {
	row := Row{ID: id, Cells: make([]string, len(fields))}
	for i, f := range fields {
		row.Cells[i] = values[f.Name]
	}
	return row
}

func dialogView(d Dialog, singular string) DialogView {
	view := DialogView{Kind: d.Kind().String(), Open: d.Kind() != DialogClosed}

	switch dialog := d.(type) {
	case AddOpen:
		view.Title = "Add " + capitalize(singular)
		view.Fields = fieldViews(dialog.Draft)
	case EditOpen:
		view.ID = dialog.ID
		view.Title = "Edit " + capitalize(singular)
		view.Fields = fieldViews(dialog.Draft)
	case DeleteConfirm:
		view.ID = dialog.ID
		view.Title = "Delete " + capitalize(singular)
	}
	return view
}

func fieldViews(draft *FormState) []FieldView {
	if draft == nil {
		return nil
	}
	problems := draft.Errors()
	views := make([]FieldView, len(draft.Fields()))
	for i, f := range draft.Fields() {
		views[i] = FieldView{
			Name:      f.Name,
			Label:     f.Label,
			Value:     draft.Value(f.Name),
			Error:     problems[f.Name],
			InputType: f.InputType(),
			Required:  f.Required,
		}
	}
	return views
}

// pagedHeading is "Loading Products..." while loading, then "Showing 1–15 Products".
func pagedHeading(loading bool, from, to int, title string) string {
	if loading {
		return fmt.Sprintf("Loading %s...", title)
	}
	return fmt.Sprintf("Showing %d–%d %s", from, to, title)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lower(s string) string {
	return strings.ToLower(s)
}
