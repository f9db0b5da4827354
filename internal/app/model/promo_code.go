package model

import "time"

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// PromoCode mirrors /admin/promo-codes
type PromoCode struct {
	ID             string       `json:"id,omitempty"`
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discountType"`
	DiscountValue  Money        `json:"discountValue"`
	MinOrderAmount *Money       `json:"minOrderAmount"`
	MaxUses        *int         `json:"maxUses"`
	UsedCount      int          `json:"usedCount,omitempty"`
	ExpiresAt      *time.Time   `json:"expiresAt"`
	IsActive       bool         `json:"isActive"`
}

// Expired reports whether the code is past its expiry at now
func (p PromoCode) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// Exhausted reports whether the usage limit is reached
func (p PromoCode) Exhausted() bool {
	return p.MaxUses != nil && p.UsedCount >= *p.MaxUses
}
