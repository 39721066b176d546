package dashboard

import "github.com/rpupo63/catalog-admin/models"

// Screen keys, also used as URL segments.
const (
	ProductsKey      = "products"
	CategoriesKey    = "categories"
	SubcategoriesKey = "sub-categories"
	BrandsKey        = "brands"
	ClientsKey       = "clients"
	ProjectsKey      = "projects"
)

// ScreenKeys lists the screens in navigation order.
var ScreenKeys = []string{ProductsKey, CategoriesKey, SubcategoriesKey, BrandsKey, ClientsKey, ProjectsKey}

func ProductDescriptor() Descriptor[models.Product] {
	return Descriptor[models.Product]{
		Key:      ProductsKey,
		Title:    "Products",
		Singular: "product",
		Paged:    true,
		Fields: []Field{
			text("code", true),
			text("main_cat", true),
			text("sub_cat", true),
			text("brand", true),
			text("model", true),
			text("housing_size", false),
			text("function", false),
			text("range", false),
			text("output", false),
			text("voltage", false),
			text("connection", false),
			text("material", false),
			text("images", false),
			text("pdf", false),
		},
	}
}

func CategoryDescriptor() Descriptor[models.Category] {
	return Descriptor[models.Category]{
		Key:      CategoriesKey,
		Title:    "Categories",
		Singular: "category",
		SortKey:  models.Category.SortKey,
		Fields: []Field{
			text("main_category", true),
			text("display_name", true),
			integer("priority", 0),
			text("image_link", false),
		},
	}
}

func SubcategoryDescriptor() Descriptor[models.Subcategory] {
	return Descriptor[models.Subcategory]{
		Key:      SubcategoriesKey,
		Title:    "Sub-categories",
		Singular: "sub-category",
		SortKey:  models.Subcategory.SortKey,
		Fields: []Field{
			text("subcat", true),
			text("display_name", true),
			integer("priority", 0),
			text("link", false),
		},
	}
}

func BrandDescriptor() Descriptor[models.Brand] {
	return Descriptor[models.Brand]{
		Key:      BrandsKey,
		Title:    "Brands",
		Singular: "brand",
		SortKey:  models.Brand.SortKey,
		Fields: []Field{
			text("brand", true),
			text("display_name", true),
			integer("priority", 0),
			text("aws_link", false),
		},
	}
}

// Clients start at priority 1 rather than 0.
func ClientDescriptor() Descriptor[models.Client] {
	return Descriptor[models.Client]{
		Key:      ClientsKey,
		Title:    "Clients",
		Singular: "client",
		SortKey:  models.Client.SortKey,
		Fields: []Field{
			text("name", true),
			integer("priority", 1),
			text("link", false),
		},
	}
}

func ProjectDescriptor() Descriptor[models.Project] {
	return Descriptor[models.Project]{
		Key:      ProjectsKey,
		Title:    "Projects",
		Singular: "project",
		SortKey:  models.Project.SortKey,
		Fields: []Field{
			text("main_title", true),
			text("subheading", false),
			text("location", false),
			text("summary", false),
			text("image_link", false),
		},
	}
}
