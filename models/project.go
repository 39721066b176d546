package models

// Project represents a completed installation shown in the portfolio
type Project struct {
	ID         int64  `json:"id,omitempty"`
	MainTitle  string `json:"main_title"`
	Subheading string `json:"subheading"`
	Location   string `json:"location"`
	Summary    string `json:"summary"`
	ImageLink  string `json:"image_link"`
}

func (p Project) EntityID() int64 { return p.ID }

// Projects carry no priority; they are listed oldest first.
func (p Project) SortKey() int { return int(p.ID) }
