package models

// Client is a customer logo shown on the storefront.
type Client struct {
	ID       int64  `json:"id,omitempty"`
	Link     string `json:"link"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

func (c Client) EntityID() int64 { return c.ID }
func (c Client) SortKey() int    { return c.Priority }
