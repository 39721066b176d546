package models

// Product is one catalog product. Every descriptive column is nullable on the
// server, so each is a pointer; nil and "" are both rendered as an empty input.
type Product struct {
	ID          int64   `json:"id,omitempty"`
	Code        *string `json:"code"`
	MainCat     *string `json:"main_cat"`
	SubCat      *string `json:"sub_cat"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	HousingSize *string `json:"housing_size"`
	Function    *string `json:"function"`
	Range       *string `json:"range"`
	Output      *string `json:"output"`
	Voltage     *string `json:"voltage"`
	Connection  *string `json:"connection"`
	Material    *string `json:"material"`
	Images      *string `json:"images"`
	PDF         *string `json:"pdf"`
}

func (p Product) EntityID() int64 { return p.ID }

// DistinctValues feeds the product filter dropdowns.
type DistinctValues struct {
	MainCategories []string `json:"main_categories"`
	SubCategories  []string `json:"sub_categories"`
	Brands         []string `json:"brands"`
}
