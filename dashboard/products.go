package dashboard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/models"
)

// ProductSource is the product side of the catalog API.
type ProductSource interface {
	Mutator
	Page(ctx context.Context, limit, offset int) ([]models.Product, error)
	Search(ctx context.Context, filter catalog.ProductFilter, limit, offset int) ([]models.Product, error)
	SearchByModel(ctx context.Context, model string) ([]models.Product, error)
	Distinct(ctx context.Context) (models.DistinctValues, error)
}

// ProductScreen adds paging, dropdown filters and the model search to the
// generic screen.
type ProductScreen struct {
	*Screen[models.Product]
	source ProductSource

	optionsMu sync.Mutex
	options   models.DistinctValues
}

func NewProductScreen(source ProductSource, pageSize int, notes *Notifications, logger zerolog.Logger) *ProductScreen {
	query := Query{Limit: pageSize}
	return &ProductScreen{
		Screen: NewScreen(ProductDescriptor(), productFetcher(source), source, query, notes, logger),
		source: source,
	}
}

// productFetcher picks the endpoint for a query: the model search wins over
// the dropdown filters, which win over the plain page.
func productFetcher(source ProductSource) Fetcher[models.Product] {
	return func(ctx context.Context, q Query) ([]models.Product, error) {
		switch {
		case q.Model != "":
			return source.SearchByModel(ctx, q.Model)
		case !q.Filter.Empty():
			return source.Search(ctx, q.Filter, q.Limit, q.Offset)
		default:
			return source.Page(ctx, q.Limit, q.Offset)
		}
	}
}

// Mount loads the first page and the dropdown options together. Missing
// options leave the dropdowns empty; the list still renders.
func (p *ProductScreen) Mount(ctx context.Context) error {
	if !p.markMounted() {
		return nil
	}

	var g errgroup.Group
	g.Go(func() error {
		return p.Refresh(ctx)
	})
	g.Go(func() error {
		p.loadOptions(ctx)
		return nil
	})
	return g.Wait()
}

func (p *ProductScreen) loadOptions(ctx context.Context) {
	options, err := p.source.Distinct(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("error fetching filter options")
		return
	}
	p.optionsMu.Lock()
	p.options = options
	p.optionsMu.Unlock()
}

// Options returns the dropdown values.
func (p *ProductScreen) Options() models.DistinctValues {
	p.optionsMu.Lock()
	defer p.optionsMu.Unlock()
	return p.options
}

func (p *ProductScreen) Next(ctx context.Context) error {
	return p.notifyOnFailure(p.list.Next(ctx))
}

func (p *ProductScreen) Previous(ctx context.Context) error {
	return p.notifyOnFailure(p.list.Previous(ctx))
}

// Filter sets the dropdown filters and the model text and returns to the first page.
func (p *ProductScreen) Filter(ctx context.Context, filter catalog.ProductFilter, model string) error {
	return p.notifyOnFailure(p.list.Search(ctx, filter, model))
}

// Clear drops every filter and reloads the first unfiltered page.
func (p *ProductScreen) Clear(ctx context.Context) error {
	return p.notifyOnFailure(p.list.ClearFilters(ctx))
}

func (p *ProductScreen) notifyOnFailure(err error) error {
	if err != nil {
		p.notes.Error("Error", "Failed to fetch products.")
	}
	return err
}

// View adds the filter values and dropdown options to the screen view.
func (p *ProductScreen) View() View {
	view := p.Screen.View()
	query := p.list.Query()
	options := p.Options()
	view.Filters = &FilterView{
		MainCat:        query.Filter.MainCat,
		SubCat:         query.Filter.SubCat,
		Brand:          query.Filter.Brand,
		Model:          query.Model,
		MainCategories: options.MainCategories,
		SubCategories:  options.SubCategories,
		Brands:         options.Brands,
	}
	return view
}
