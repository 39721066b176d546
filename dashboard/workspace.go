package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/models"
)

// Workspace is everything one signed-in operator works with: a screen per
// entity, the upload form and the notification queue.
type Workspace struct {
	products      *ProductScreen
	screens       map[string]ScreenHandle
	uploader      *Uploader
	notifications *Notifications
}

// NewWorkspace builds fresh, unmounted screens over c.
func NewWorkspace(c catalog.Catalog, pageSize int, logger zerolog.Logger) *Workspace {
	notes := NewNotifications()
	products := NewProductScreen(c.Products(), pageSize, notes, logger)

	screens := map[string]ScreenHandle{
		ProductsKey:      products,
		CategoriesKey:    NewScreen(CategoryDescriptor(), listFetcher(c.Categories()), c.Categories(), Query{}, notes, logger),
		SubcategoriesKey: NewScreen(SubcategoryDescriptor(), listFetcher(c.Subcategories()), c.Subcategories(), Query{}, notes, logger),
		BrandsKey:        NewScreen(BrandDescriptor(), listFetcher(c.Brands()), c.Brands(), Query{}, notes, logger),
		ClientsKey:       NewScreen(ClientDescriptor(), listFetcher(c.Clients()), c.Clients(), Query{}, notes, logger),
		ProjectsKey:      NewScreen(ProjectDescriptor(), listFetcher(c.Projects()), c.Projects(), Query{}, notes, logger),
	}

	return &Workspace{
		products:      products,
		screens:       screens,
		uploader:      NewUploader(c.Client(), notes, logger),
		notifications: notes,
	}
}

// listFetcher reads a whole unpaged collection; the query is ignored.
func listFetcher[T Entity](r *catalog.Resource[T]) Fetcher[T] {
	return func(ctx context.Context, _ Query) ([]T, error) {
		return r.List(ctx)
	}
}

// Screen looks a screen up by its URL key.
func (w *Workspace) Screen(key string) (ScreenHandle, bool) {
	s, ok := w.screens[key]
	return s, ok
}

func (w *Workspace) Products() *ProductScreen {
	return w.products
}

func (w *Workspace) Uploader() *Uploader {
	return w.uploader
}

func (w *Workspace) Notifications() *Notifications {
	return w.notifications
}

// Nav lists the screens in navigation order.
func (w *Workspace) Nav() []NavItem {
	items := make([]NavItem, 0, len(ScreenKeys))
	for _, key := range ScreenKeys {
		if s, ok := w.screens[key]; ok {
			items = append(items, NavItem{Key: key, Title: s.Title()})
		}
	}
	return items
}

type NavItem struct {
	Key   string
	Title string
}

var _ ScreenHandle = (*Screen[models.Category])(nil)
var _ ScreenHandle = (*ProductScreen)(nil)
