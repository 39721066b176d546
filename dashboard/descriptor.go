// Package dashboard implements the catalog console's interaction model: one
// generic screen per entity, combining a list controller, a mutation gateway,
// a single dialog state and the draft form it edits.
//
// A screen never holds data the server has not confirmed except the open draft.
// Every successful mutation is followed by a refetch, and the list is the only
// thing rendered.
package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entity is implemented by every catalog record. EntityID is zero until the
// server has assigned one.
type Entity interface {
	EntityID() int64
}

type FieldKind int

const (
	TextField FieldKind = iota
	IntField
)

// Field is one editable column of an entity, named by its JSON key.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	// Rules is the validator tag the draft text must satisfy.
	Rules string
	// Default is the value a blank draft starts with.
	Default string
}

// InputType is the HTML input type used to edit the field.
func (f Field) InputType() string {
	if f.Kind == IntField {
		return "number"
	}
	return "text"
}

// Descriptor parameterizes a Screen for one entity type.
type Descriptor[T Entity] struct {
	// Key is the URL segment of the screen, e.g. "sub-categories".
	Key      string
	Title    string
	Singular string
	Fields   []Field
	// SortKey orders the list ascending after every fetch. Nil keeps server order.
	SortKey func(T) int
	// Paged lists are fetched one offset/limit page at a time.
	Paged bool
}

// fieldLabel turns a JSON key into a form label: "housing_size" -> "Housing Size".
// A Caser keeps state, so each call gets its own.
func fieldLabel(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func text(name string, required bool) Field {
	field := Field{Name: name, Label: fieldLabel(name), Kind: TextField, Required: required}
	if required {
		field.Rules = "required"
	}
	return field
}

func integer(name string, def int) Field {
	return Field{
		Name:    name,
		Label:   fieldLabel(name),
		Kind:    IntField,
		Rules:   "omitempty,number",
		Default: strconv.Itoa(def),
	}
}

// recordValues flattens a record into form strings keyed by field name. JSON
// null and absent keys both become "".
func recordValues[T Entity](fields []Field, record T) (map[string]string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var generic map[string]any
	if err := decoder.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = stringify(generic[f.Name])
	}
	return values, nil
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}
