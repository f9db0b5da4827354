package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// LinkType is the wire tag of a banner link
type LinkType string

const (
	LinkNone     LinkType = "NONE"
	LinkCategory LinkType = "CATEGORY"
	LinkProduct  LinkType = "PRODUCT"
	LinkURL      LinkType = "URL"
)

var (
	ErrUnknownLinkType = errors.New("unknown banner link type")
	ErrEmptyLinkValue  = errors.New("banner link value is required")
)

// BannerLink is where a banner leads. Only the non-NONE variants carry a payload.
type BannerLink interface {
	Type() LinkType
	Value() string
	isBannerLink()
}

type NoLink struct{}

type CategoryLink struct{ CategoryID string }

type ProductLink struct{ ProductID string }

type URLLink struct{ URL string }

func (NoLink) Type() LinkType       { return LinkNone }
func (CategoryLink) Type() LinkType { return LinkCategory }
func (ProductLink) Type() LinkType  { return LinkProduct }
func (URLLink) Type() LinkType      { return LinkURL }

func (NoLink) Value() string         { return "" }
func (l CategoryLink) Value() string { return l.CategoryID }
func (l ProductLink) Value() string  { return l.ProductID }
func (l URLLink) Value() string      { return l.URL }

func (NoLink) isBannerLink()       {}
func (CategoryLink) isBannerLink() {}
func (ProductLink) isBannerLink()  {}
func (URLLink) isBannerLink()      {}

// ParseBannerLink builds the variant for a wire tag. An empty tag means NONE;
// NONE ignores value, every other tag requires one.
func ParseBannerLink(t LinkType, value string) (BannerLink, error) {
	value = strings.TrimSpace(value)
	switch LinkType(strings.ToUpper(string(t))) {
	case "", LinkNone:
		return NoLink{}, nil
	case LinkCategory:
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyLinkValue, LinkCategory)
		}
		return CategoryLink{CategoryID: value}, nil
	case LinkProduct:
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyLinkValue, LinkProduct)
		}
		return ProductLink{ProductID: value}, nil
	case LinkURL:
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyLinkValue, LinkURL)
		}
		return URLLink{URL: value}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLinkType, t)
	}
}

// Banner mirrors /admin/banners
type Banner struct {
	ID       string
	Title    string
	Subtitle *string
	Image    string
	Link     BannerLink
	Position int
	IsActive bool
	// Products is the ordered association list as delivered by the server
	Products []Product
}

// Persisted reports whether the server has assigned an id
func (b Banner) Persisted() bool {
	return b.ID != ""
}

func (b Banner) GetID() string    { return b.ID }
func (b Banner) GetPosition() int { return b.Position }

// LinkOrNone never returns nil
func (b Banner) LinkOrNone() BannerLink {
	if b.Link == nil {
		return NoLink{}
	}
	return b.Link
}

type bannerWire struct {
	ID           string            `json:"id,omitempty"`
	Title        string            `json:"title"`
	Subtitle     *string           `json:"subtitle"`
	Image        string            `json:"image"`
	LinkType     LinkType          `json:"linkType"`
	LinkValue    *string           `json:"linkValue"`
	LegacyLink   *string           `json:"link,omitempty"`
	Position     *int              `json:"position,omitempty"`
	DisplayOrder *int              `json:"displayOrder,omitempty"`
	IsActive     bool              `json:"isActive"`
	Products     []json.RawMessage `json:"products,omitempty"`
}

func (b Banner) MarshalJSON() ([]byte, error) {
	link := b.LinkOrNone()
	position := b.Position
	w := bannerWire{
		ID:       b.ID,
		Title:    b.Title,
		Subtitle: b.Subtitle,
		Image:    b.Image,
		LinkType: link.Type(),
		Position: &position,
		IsActive: b.IsActive,
	}
	if link.Type() != LinkNone {
		v := link.Value()
		w.LinkValue = &v
	}
	for _, p := range b.Products {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		w.Products = append(w.Products, raw)
	}
	return json.Marshal(w)
}

func (b *Banner) UnmarshalJSON(data []byte) error {
	var w bannerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	value := ""
	if w.LinkValue != nil {
		value = *w.LinkValue
	}
	if w.LinkType == "" && w.LegacyLink != nil && strings.TrimSpace(*w.LegacyLink) != "" {
		w.LinkType, value = LinkURL, *w.LegacyLink
	}
	// stored rows with a broken tag render as unlinked instead of failing the list
	link, err := ParseBannerLink(w.LinkType, value)
	if err != nil {
		link = NoLink{}
	}

	*b = Banner{
		ID:       w.ID,
		Title:    w.Title,
		Subtitle: w.Subtitle,
		Image:    w.Image,
		Link:     link,
		IsActive: w.IsActive,
	}
	switch {
	case w.Position != nil:
		b.Position = *w.Position
	case w.DisplayOrder != nil:
		b.Position = *w.DisplayOrder
	}

	for _, raw := range w.Products {
		p, err := decodeBannerProduct(raw)
		if err != nil {
			return fmt.Errorf("banner %s products: %w", w.ID, err)
		}
		b.Products = append(b.Products, p)
	}
	return nil
}

// decodeBannerProduct accepts a bare product or a join row {product: {...}}
func decodeBannerProduct(raw json.RawMessage) (Product, error) {
	var join struct {
		Product json.RawMessage `json:"product"`
	}
	if err := json.Unmarshal(raw, &join); err == nil {
		if inner := bytes.TrimSpace(join.Product); len(inner) > 0 && inner[0] == '{' {
			raw = inner
		}
	}
	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// BannerPatch is a partial update; nil fields are not sent
type BannerPatch struct {
	Position *int  `json:"position,omitempty"`
	IsActive *bool `json:"isActive,omitempty"`
}

// PlaceholderBannerImage replaces an empty image on save
const PlaceholderBannerImage = "https://via.placeholder.com/1200x400?text=Banner"
