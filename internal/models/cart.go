package models

import "time"

// Cart statuses.
const (
	CartActive    = "active"
	CartAbandoned = "abandoned"
	CartConverted = "converted"
	CartExpired   = "expired"
)

// VariantSelection is one chosen option on a cart line ("Color" → "Arctic Blue").
// The price adjustment is folded into the line's unit price when the item is added.
type VariantSelection struct {
	Name            string  `json:"name"`
	Value           string  `json:"value"`
	PriceAdjustment float64 `json:"price_adjustment"`
}

// CartItem references exactly one of ProductID / BundleID.
// UnitPrice is a snapshot taken when the item was added and does not follow
// later price changes on the product.
type CartItem struct {
	ProductID  string             `json:"product_id,omitempty"`
	BundleID   string             `json:"bundle_id,omitempty"`
	Name       string             `json:"name"`
	SKU        string             `json:"sku"`
	UnitPrice  float64            `json:"unit_price"`
	Quantity   int                `json:"quantity"`
	TotalPrice float64            `json:"total_price"`
	ImageURL   string             `json:"image_url"`
	Variants   []VariantSelection `json:"variants,omitempty"`
}

// CartSummary is always recomputed from items + coupon + shipping + tax,
// never set directly.
type CartSummary struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Tax       float64 `json:"tax"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
}

// AppliedCoupon is the coupon snapshot carried by a cart.
type AppliedCoupon struct {
	Code      string    `json:"code"`
	Type      string    `json:"type"` // "percentage" | "fixed"
	Value     float64   `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Cart struct {
	UserID    string         `json:"user_id"`
	Items     []CartItem     `json:"items"`
	Summary   CartSummary    `json:"summary"`
	Coupon    *AppliedCoupon `json:"coupon,omitempty"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}
