package model

import "regexp"

// SlugPattern is the accepted category slug form
var SlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type productCount struct {
	Products int `json:"products"`
}

// Category mirrors /admin/categories. Count is derived server side and read-only.
type Category struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Position    int           `json:"position"`
	IsActive    bool          `json:"isActive"`
	Count       *productCount `json:"_count,omitempty"`
}

// ProductCount is the number of products in the category, 0 when unknown
func (c Category) ProductCount() int {
	if c.Count == nil {
		return 0
	}
	return c.Count.Products
}

func (c Category) GetID() string    { return c.ID }
func (c Category) GetPosition() int { return c.Position }

// CategoryPatch is a partial update; nil fields are not sent
type CategoryPatch struct {
	Position *int  `json:"position,omitempty"`
	IsActive *bool `json:"isActive,omitempty"`
}
