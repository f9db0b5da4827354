package model

import "time"

// Product mirrors /admin/products. The API keeps the primary image in Image
// and the rest in Images; use AllImages/SetImages for the ordered view.
type Product struct {
	ID              string     `json:"id,omitempty"`
	SKU             string     `json:"sku"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           Money      `json:"price"`
	OldPrice        *Money     `json:"oldPrice"`
	DiscountPercent *int       `json:"discountPercent"`
	Stock           int        `json:"stock"`
	CategoryID      string     `json:"categoryId"`
	Category        *Category  `json:"category,omitempty"`
	Variants        []string   `json:"variants"`
	Tag             *string    `json:"tag"`
	Image           string     `json:"image"`
	Images          []string   `json:"images"`
	Ingredients     *string    `json:"ingredients"`
	Usage           *string    `json:"usage"`
	Safety          *string    `json:"safety"`
	IsFeatured      bool       `json:"isFeatured"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// MaxProductImages is the number of images a product form accepts
const MaxProductImages = 5

// AllImages returns the ordered image list; element 0 is the canonical display image
func (p Product) AllImages() []string {
	out := make([]string, 0, len(p.Images)+1)
	if p.Image != "" {
		out = append(out, p.Image)
	}
	for _, img := range p.Images {
		if img != "" {
			out = append(out, img)
		}
	}
	return out
}

// SetImages splits an ordered list back into the primary image and the rest
func (p *Product) SetImages(images []string) {
	p.Image = ""
	p.Images = []string{}
	if len(images) == 0 {
		return
	}
	p.Image = images[0]
	p.Images = append(p.Images, images[1:]...)
}

// StockLevel classifies stock for badges: "ok" above 10, "low" above 0, "out" otherwise
func (p Product) StockLevel() string {
	switch {
	case p.Stock > 10:
		return "ok"
	case p.Stock > 0:
		return "low"
	default:
		return "out"
	}
}

// ProductQuery holds the optional list parameters of GET /admin/products
type ProductQuery struct {
	Search     string
	CategoryID string
	Page       int
	Limit      int
}
