package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Coupon struct {
	ID                 gocql.UUID `json:"id"`
	Code               string     `json:"code"`
	Description        string     `json:"description"`
	Type               string     `json:"type"` // "percentage", "fixed"
	Value              float64    `json:"value"`
	MinPurchase        float64    `json:"min_purchase"`
	MaxDiscount        *float64   `json:"max_discount,omitempty"`
	UsageLimit         int        `json:"usage_limit"` // 0 = unlimited
	UsedCount          int        `json:"used_count"`
	PerUserLimit       int        `json:"per_user_limit"` // 0 = unlimited
	StartsAt           time.Time  `json:"starts_at"`
	ExpiresAt          time.Time  `json:"expires_at"`
	IsActive           bool       `json:"is_active"`
	FirstOrderOnly     bool       `json:"first_order_only"`
	ProductIDs         []string   `json:"product_ids,omitempty"`
	CategoryIDs        []string   `json:"category_ids,omitempty"`
	ExcludedProductIDs []string   `json:"excluded_product_ids,omitempty"`
	AllowedUserIDs     []string   `json:"allowed_user_ids,omitempty"`
	CreatedBy          string     `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type CouponUsage struct {
	ID       gocql.UUID `json:"id"`
	CouponID gocql.UUID `json:"coupon_id"`
	UserID   string     `json:"user_id"`
	OrderID  gocql.UUID `json:"order_id"`
	Discount float64    `json:"discount"`
	UsedAt   time.Time  `json:"used_at"`
}

type CouponValidation struct {
	IsValid      bool    `json:"is_valid"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Discount     float64 `json:"discount"`
	Type         string  `json:"type,omitempty"`
	Code         string  `json:"code,omitempty"`
}
