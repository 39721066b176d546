package dashboard

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/catalog/catalogtest"
)

// collectionOf maps a screen key to the catalog path behind it.
var collectionOf = map[string]string{
	ProductsKey:      "/products",
	CategoriesKey:    "/categories",
	SubcategoriesKey: "/subcategories",
	BrandsKey:        "/brands",
	ClientsKey:       "/clients",
	ProjectsKey:      "/projects",
}

func newTestWorkspace(t *testing.T) (*catalogtest.Server, *Workspace) {
	t.Helper()
	srv := catalogtest.NewServer()
	t.Cleanup(srv.Close)
	client := catalog.NewClient(srv.URL, catalog.WithLogger(zerolog.Nop()))
	return srv, NewWorkspace(catalog.New(client), 15, zerolog.Nop())
}

func rowIDs(v View) []int64 {
	ids := make([]int64, 0, len(v.Rows))
	for _, row := range v.Rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func fieldValue(v View, name string) (FieldView, bool) {
	for _, f := range v.Dialog.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldView{}, false
}

func str(s string) *string { return &s }
