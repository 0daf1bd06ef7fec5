package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentPartial  = "partial"
	PaymentRefunded = "refunded"
)

// Shipping statuses.
const (
	ShippingPending    = "pending"
	ShippingProcessing = "processing"
	ShippingShipped    = "shipped"
	ShippingDelivered  = "delivered"
)

type Address struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItem is a snapshot taken at order time, not a live reference.
type OrderItem struct {
	ProductID string             `json:"product_id,omitempty"`
	BundleID  string             `json:"bundle_id,omitempty"`
	Name      string             `json:"name"`
	SKU       string             `json:"sku"`
	UnitPrice float64            `json:"unit_price"`
	Quantity  int                `json:"quantity"`
	ImageURL  string             `json:"image_url"`
	Variants  []VariantSelection `json:"variants,omitempty"`
}

// OrderCoupon records the redemption on the order itself.
type OrderCoupon struct {
	Code     string  `json:"code"`
	Type     string  `json:"type"`
	Discount float64 `json:"discount"`
}

type Order struct {
	ID                gocql.UUID   `json:"id"`
	OrderNumber       string       `json:"order_number"`
	UserID            string       `json:"user_id"`
	Email             string       `json:"email"`
	Items             []OrderItem  `json:"items"`
	ShippingAddress   Address      `json:"shipping_address"`
	BillingAddress    Address      `json:"billing_address"`
	PaymentMethod     string       `json:"payment_method"` // "cod", "card", "wallet", "tabby", "tamara"
	PaymentStatus     string       `json:"payment_status"`
	TransactionID     string       `json:"transaction_id,omitempty"`
	Status            string       `json:"status"` // see internal/status
	ShippingStatus    string       `json:"shipping_status"`
	Subtotal          float64      `json:"subtotal"`
	Discount          float64      `json:"discount"`
	ShippingCost      float64      `json:"shipping_cost"`
	Tax               float64      `json:"tax"`
	Total             float64      `json:"total"`
	Currency          string       `json:"currency"`
	Coupon            *OrderCoupon `json:"coupon,omitempty"`
	IsGift            bool         `json:"is_gift"`
	GiftMessage       string       `json:"gift_message,omitempty"`
	TrackingNumber    string       `json:"tracking_number,omitempty"`
	Carrier           string       `json:"carrier,omitempty"`
	TrackingURL       string       `json:"tracking_url,omitempty"`
	EstimatedDelivery *time.Time   `json:"estimated_delivery,omitempty"`
	CancelReason      string       `json:"cancel_reason,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	ShippedAt         *time.Time   `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time   `json:"delivered_at,omitempty"`
}

// TrackingEvent is one entry of the customer-facing tracking timeline.
type TrackingEvent struct {
	Date     time.Time `json:"date"`
	Time     string    `json:"time"`
	Status   string    `json:"status"`
	Location string    `json:"location"`
}
