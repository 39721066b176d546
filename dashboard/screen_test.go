package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/catalog-admin/errs"
	"github.com/rpupo63/catalog-admin/models"
)

// seedRecords gives every collection two rows with ids 1 and 2.
func seedRecords(t *testing.T, seed func(path string, records ...any)) {
	t.Helper()
	seed("/products",
		models.Product{ID: 1, Code: str("A"), MainCat: str("Sensors"), SubCat: str("Proximity"), Brand: str("acme"), Model: str("PX-1")},
		models.Product{ID: 2, Code: str("B"), MainCat: str("Valves"), SubCat: str("Ball"), Brand: str("acme"), Model: str("BV-2")},
	)
	seed("/categories", models.Category{ID: 1, MainCategory: "sensors", DisplayName: "Sensors", Priority: 2}, models.Category{ID: 2, MainCategory: "valves", DisplayName: "Valves", Priority: 1})
	seed("/subcategories", models.Subcategory{ID: 1, Subcat: "ball", DisplayName: "Ball"}, models.Subcategory{ID: 2, Subcat: "gate", DisplayName: "Gate"})
	seed("/brands", models.Brand{ID: 1, Brand: "acme", DisplayName: "Acme"}, models.Brand{ID: 2, Brand: "globex", DisplayName: "Globex"})
	seed("/clients", models.Client{ID: 1, Name: "Initech", Priority: 1}, models.Client{ID: 2, Name: "Umbrella", Priority: 1})
	seed("/projects", models.Project{ID: 1, MainTitle: "Plant"}, models.Project{ID: 2, MainTitle: "Refinery"})
}

func TestDeleteThenRefetchExcludesRecord(t *testing.T) {
	for _, key := range ScreenKeys {
		t.Run(key, func(t *testing.T) {
			srv, ws := newTestWorkspace(t)
			seedRecords(t, srv.Seed)
			ctx := context.Background()

			screen, ok := ws.Screen(key)
			require.True(t, ok)
			require.NoError(t, screen.Mount(ctx))
			require.Contains(t, rowIDs(screen.View()), int64(2))

			require.NoError(t, screen.OpenDelete(2))
			assert.Equal(t, DialogDelete, screen.Dialog().Kind())
			require.NoError(t, screen.ConfirmDelete(ctx))

			assert.NotContains(t, rowIDs(screen.View()), int64(2))
			assert.Equal(t, DialogClosed, screen.Dialog().Kind())
			assert.Equal(t, 1, srv.Count(http.MethodDelete, collectionOf[key]+"/2"))
		})
	}
}

func TestPriorityListsRenderInPriorityOrder(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	srv.Seed("/brands",
		models.Brand{ID: 1, Brand: "a", Priority: 3},
		models.Brand{ID: 2, Brand: "b", Priority: 1},
		models.Brand{ID: 3, Brand: "c", Priority: 2},
		models.Brand{ID: 4, Brand: "d", Priority: 1},
	)
	srv.Seed("/projects", models.Project{ID: 9, MainTitle: "z"}, models.Project{ID: 5, MainTitle: "y"}, models.Project{ID: 7, MainTitle: "x"})
	ctx := context.Background()

	brands, _ := ws.Screen(BrandsKey)
	require.NoError(t, brands.Mount(ctx))
	assert.Equal(t, []int64{2, 4, 3, 1}, rowIDs(brands.View()))

	projects, _ := ws.Screen(ProjectsKey)
	require.NoError(t, projects.Mount(ctx))
	assert.Equal(t, []int64{5, 7, 9}, rowIDs(projects.View()))
}

func TestMountLoadsOnce(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	ctx := context.Background()
	clients, _ := ws.Screen(ClientsKey)

	require.NoError(t, clients.Mount(ctx))
	require.NoError(t, clients.Mount(ctx))
	assert.Equal(t, 1, srv.Count(http.MethodGet, "/clients"))

	require.NoError(t, clients.Refresh(ctx))
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/clients"))
}

func TestInvalidDraftIssuesNoRequest(t *testing.T) {
	fieldsByKey := map[string][]Field{
		ProductsKey:      ProductDescriptor().Fields,
		CategoriesKey:    CategoryDescriptor().Fields,
		SubcategoriesKey: SubcategoryDescriptor().Fields,
		BrandsKey:        BrandDescriptor().Fields,
		ClientsKey:       ClientDescriptor().Fields,
		ProjectsKey:      ProjectDescriptor().Fields,
	}

	for _, key := range ScreenKeys {
		fields := fieldsByKey[key]
		required := requiredFields(fields)
		require.NotEmpty(t, required, key)

		for _, missing := range required {
			t.Run(key+"/"+missing, func(t *testing.T) {
				srv, ws := newTestWorkspace(t)
				ctx := context.Background()
				screen, ok := ws.Screen(key)
				require.True(t, ok)
				require.NoError(t, screen.Mount(ctx))
				srv.Reset()

				draft := map[string]string{}
				for _, name := range required {
					draft[name] = "filled"
				}
				draft[missing] = ""

				screen.OpenAdd()
				err := screen.Submit(ctx, draft)
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrMissingRequiredField)
				assert.Empty(t, srv.Requests())

				view := screen.View()
				assert.Equal(t, "add", view.Dialog.Kind)
				field, ok := fieldValue(view, missing)
				require.True(t, ok)
				assert.Equal(t, labelOf(fields, missing)+" is required", field.Error)
				for _, name := range required {
					if name == missing {
						continue
					}
					other, _ := fieldValue(view, name)
					assert.Empty(t, other.Error, name)
					assert.Equal(t, "filled", other.Value, name)
				}
			})
		}
	}
}

func labelOf(fields []Field, name string) string {
	for _, f := range fields {
		if f.Name == name {
			return f.Label
		}
	}
	return ""
}

func TestCreateClosesDialogAndResetsForm(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	ctx := context.Background()
	brands, _ := ws.Screen(BrandsKey)
	require.NoError(t, brands.Mount(ctx))

	brands.OpenAdd()
	require.NoError(t, brands.Submit(ctx, map[string]string{"brand": "acme", "display_name": "Acme", "priority": "2"}))

	req, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, req.Method, "refetch follows the create")
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/brands"))
	assert.Equal(t, DialogClosed, brands.Dialog().Kind())
	assert.Len(t, brands.View().Rows, 1)

	var body map[string]any
	for _, r := range srv.Requests() {
		if r.Method == http.MethodPost {
			body = r.JSON()
		}
	}
	assert.NotContains(t, body, "id")
	assert.Equal(t, float64(2), body["priority"])
	assert.Equal(t, "", body["aws_link"])

	notes := ws.Notifications().Drain()
	require.NotEmpty(t, notes)
	assert.Equal(t, "Success", notes[len(notes)-1].Title)
	assert.Equal(t, VariantDefault, notes[len(notes)-1].Variant)

	brands.OpenAdd()
	for _, f := range brands.View().Dialog.Fields {
		expected := ""
		if f.Name == "priority" {
			expected = "0"
		}
		assert.Equal(t, expected, f.Value, f.Name)
	}
}

func TestEditSendsCompleteRecordToRecordPath(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	srv.Seed("/products", models.Product{ID: 7, Code: str("C-7"), MainCat: str("Sensors"), SubCat: str("Proximity"), Brand: str("acme"), Model: str("PX-7"), Range: nil})
	ctx := context.Background()
	products := ws.Products()
	require.NoError(t, products.Mount(ctx))

	require.NoError(t, products.OpenEdit(7))
	view := products.View()
	assert.Equal(t, "edit", view.Dialog.Kind)
	rangeField, ok := fieldValue(view, "range")
	require.True(t, ok)
	assert.Equal(t, "", rangeField.Value)

	require.NoError(t, products.Submit(ctx, map[string]string{"range": "0-10V"}))
	assert.Equal(t, DialogClosed, products.Dialog().Kind())

	var put map[string]any
	for _, r := range srv.Requests() {
		if r.Method == http.MethodPut {
			assert.Equal(t, "/products/7", r.Path)
			put = r.JSON()
		}
	}
	require.NotNil(t, put)
	assert.Equal(t, float64(7), put["id"])
	assert.Equal(t, "0-10V", put["range"])
	assert.Equal(t, "C-7", put["code"])
	assert.Contains(t, put, "pdf")
}

func TestFailedMutationKeepsDialogAndDraft(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	srv.Seed("/clients", models.Client{ID: 1, Name: "Initech", Priority: 1})
	srv.Fail(http.MethodPost, "/clients", http.StatusInternalServerError)
	ctx := context.Background()
	clients, _ := ws.Screen(ClientsKey)
	require.NoError(t, clients.Mount(ctx))
	ws.Notifications().Drain()

	clients.OpenAdd()
	err := clients.Submit(ctx, map[string]string{"name": "Globex"})
	require.Error(t, err)
	assert.True(t, errs.IsRequestError(err))
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/clients"), "no retry")

	view := clients.View()
	assert.Equal(t, "add", view.Dialog.Kind)
	name, _ := fieldValue(view, "name")
	assert.Equal(t, "Globex", name.Value)
	assert.Equal(t, []int64{1}, rowIDs(view))

	notes := ws.Notifications().Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Error", notes[0].Title)
	assert.Equal(t, VariantDestructive, notes[0].Variant)
	assert.Equal(t, NotificationDuration, notes[0].Duration)
}

func TestFailedDeleteKeepsConfirmation(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	srv.Seed("/categories", models.Category{ID: 3, MainCategory: "x", DisplayName: "X"})
	srv.Fail(http.MethodDelete, "/categories/3", http.StatusBadGateway)
	ctx := context.Background()
	categories, _ := ws.Screen(CategoriesKey)
	require.NoError(t, categories.Mount(ctx))

	require.NoError(t, categories.OpenDelete(3))
	require.Error(t, categories.ConfirmDelete(ctx))
	assert.Equal(t, DeleteConfirm{ID: 3}, categories.Dialog())
	assert.Equal(t, []int64{3}, rowIDs(categories.View()))
}

func TestLoadFailureNotifies(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	srv.Fail(http.MethodGet, "/subcategories", http.StatusServiceUnavailable)
	subcategories, _ := ws.Screen(SubcategoriesKey)

	err := subcategories.Mount(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, errs.StatusCode(err))

	notes := ws.Notifications().Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Failed to fetch sub-categories.", notes[0].Description)
	assert.False(t, subcategories.View().Loaded)
}

func TestDialogIsExclusive(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	srv.Seed("/projects", models.Project{ID: 1, MainTitle: "Plant"})
	ctx := context.Background()
	projects, _ := ws.Screen(ProjectsKey)
	require.NoError(t, projects.Mount(ctx))

	projects.OpenAdd()
	require.NoError(t, projects.OpenEdit(1))
	assert.Equal(t, DialogEdit, projects.Dialog().Kind())
	require.NoError(t, projects.OpenDelete(1))
	assert.Equal(t, DialogDelete, projects.Dialog().Kind())

	projects.Cancel()
	assert.Equal(t, DialogClosed, projects.Dialog().Kind())
	assert.False(t, projects.View().Dialog.Open)
}

func TestActionsWithoutMatchingDialog(t *testing.T) {
	_, ws := newTestWorkspace(t)
	ctx := context.Background()
	brands, _ := ws.Screen(BrandsKey)
	require.NoError(t, brands.Mount(ctx))

	assert.True(t, errors.Is(brands.Submit(ctx, nil), errs.ErrNoDialogOpen))
	assert.True(t, errors.Is(brands.ConfirmDelete(ctx), errs.ErrNoDialogOpen))

	brands.OpenAdd()
	assert.True(t, errors.Is(brands.ConfirmDelete(ctx), errs.ErrNoDialogOpen))

	err := brands.OpenEdit(42)
	assert.True(t, errs.IsConflict(err))
	assert.Equal(t, DialogAdd, brands.Dialog().Kind(), "a failed open leaves the current dialog")
}

func TestViewDescribesTable(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	srv.Seed("/clients", models.Client{ID: 1, Name: "Initech", Link: "https://initech.example", Priority: 1})
	clients, _ := ws.Screen(ClientsKey)
	require.NoError(t, clients.Mount(context.Background()))

	view := clients.View()
	assert.Equal(t, "Clients", view.Heading)
	assert.Nil(t, view.Pager)
	assert.Nil(t, view.Filters)
	require.Len(t, view.Columns, 3)
	assert.Equal(t, Column{Name: "name", Label: "Name"}, view.Columns[0])
	require.Len(t, view.Rows, 1)
	assert.Equal(t, []string{"Initech", "1", "https://initech.example"}, view.Rows[0].Cells)
}
