package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Bundle groups several products under one combined price (soda maker + cylinder + flavors).
type Bundle struct {
	ID            gocql.UUID   `json:"id"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	ProductIDs    []gocql.UUID `json:"product_ids"`
	Price         float64      `json:"price"`
	OriginalPrice float64      `json:"original_price"`
	Stock         int          `json:"stock"`
	SKU           string       `json:"sku"`
	ImageURLs     []string     `json:"image_urls"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
