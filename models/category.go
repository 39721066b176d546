package models

// Category is a top-level product category tile.
type Category struct {
	ID           int64  `json:"id,omitempty"`
	ImageLink    string `json:"image_link"`
	DisplayName  string `json:"display_name"`
	Priority     int    `json:"priority"`
	MainCategory string `json:"main_category"`
}

func (c Category) EntityID() int64 { return c.ID }
func (c Category) SortKey() int    { return c.Priority }

// Subcategory belongs to a category by name (Subcat).
type Subcategory struct {
	ID          int64  `json:"id,omitempty"`
	Link        string `json:"link"`
	DisplayName string `json:"display_name"`
	Priority    int    `json:"priority"`
	Subcat      string `json:"subcat"`
}

func (s Subcategory) EntityID() int64 { return s.ID }
func (s Subcategory) SortKey() int    { return s.Priority }

// Brand is a manufacturer shown on the storefront; AWSLink points at its logo.
type Brand struct {
	ID          int64  `json:"id,omitempty"`
	AWSLink     string `json:"aws_link"`
	DisplayName string `json:"display_name"`
	Priority    int    `json:"priority"`
	Brand       string `json:"brand"`
}

func (b Brand) EntityID() int64 { return b.ID }
func (b Brand) SortKey() int    { return b.Priority }
