package catalog

import (
	"context"
	"net/http"

	"github.com/rpupo63/catalog-admin/models"
)

const (
	productsPath      = "/products"
	searchPath        = "/search-products"
	searchByModelPath = "/search-by-model"
	distinctPath      = "/distinct-categories"
)

// ProductFilter holds the three dropdown filters. Empty fields are not sent.
type ProductFilter struct {
	MainCat string
	SubCat  string
	Brand   string
}

// Empty reports whether no dropdown filter is set.
func (f ProductFilter) Empty() bool {
	return f.MainCat == "" && f.SubCat == "" && f.Brand == ""
}

// Products extends the generic resource with paging and search endpoints.
type Products struct {
	*Resource[models.Product]
}

func newProducts(c *Client) *Products {
	return &Products{Resource: NewResource[models.Product](c, productsPath)}
}

// Page returns one offset/limit page of the unfiltered product list.
func (p *Products) Page(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var result []models.Product
	query := buildQuery(pageQuery(limit, offset))
	if err := p.client.doJSON(ctx, http.MethodGet, productsPath, query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Search returns one page of products matching every non-empty filter field.
func (p *Products) Search(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, error) {
	params := pageQuery(limit, offset)
	params["main_cat"] = filter.MainCat
	params["sub_cat"] = filter.SubCat
	params["brand"] = filter.Brand

	var result []models.Product
	if err := p.client.doJSON(ctx, http.MethodGet, searchPath, buildQuery(params), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchByModel returns every product whose model matches. The endpoint is not paged.
func (p *Products) SearchByModel(ctx context.Context, model string) ([]models.Product, error) {
	var result []models.Product
	query := buildQuery(map[string]string{"model": model})
	if err := p.client.doJSON(ctx, http.MethodGet, searchByModelPath, query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Distinct returns the values offered by the filter dropdowns.
func (p *Products) Distinct(ctx context.Context) (models.DistinctValues, error) {
	var result models.DistinctValues
	err := p.client.doJSON(ctx, http.MethodGet, distinctPath, nil, nil, &result)
	return result, err
}
