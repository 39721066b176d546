package catalog

import "github.com/rpupo63/catalog-admin/models"

// Catalog groups one resource per entity over a shared client.
type Catalog struct {
	client        *Client
	products      *Products
	categories    *Resource[models.Category]
	subcategories *Resource[models.Subcategory]
	brands        *Resource[models.Brand]
	clients       *Resource[models.Client]
	projects      *Resource[models.Project]
}

// New initializes a Catalog with each resource bound to the same client.
func New(client *Client) Catalog {
	return Catalog{
		client:        client,
		products:      newProducts(client),
		categories:    NewResource[models.Category](client, "/categories"),
		subcategories: NewResource[models.Subcategory](client, "/subcategories"),
		brands:        NewResource[models.Brand](client, "/brands"),
		clients:       NewResource[models.Client](client, "/clients"),
		projects:      NewResource[models.Project](client, "/projects"),
	}
}

// Accessor methods for each resource

func (c Catalog) Client() *Client {
	return c.client
}

func (c Catalog) Products() *Products {
	return c.products
}

func (c Catalog) Categories() *Resource[models.Category] {
	return c.categories
}

func (c Catalog) Subcategories() *Resource[models.Subcategory] {
	return c.subcategories
}

func (c Catalog) Brands() *Resource[models.Brand] {
	return c.brands
}

func (c Catalog) Clients() *Resource[models.Client] {
	return c.clients
}

func (c Catalog) Projects() *Resource[models.Project] {
	return c.projects
}
