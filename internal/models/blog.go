package models

import (
	"time"

	"github.com/gocql/gocql"
)

type BlogPost struct {
	ID          gocql.UUID `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Recipe is a drink recipe tied to the flavors we sell.
type Recipe struct {
	ID          gocql.UUID   `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Ingredients []string     `json:"ingredients"`
	Steps       []string     `json:"steps"`
	CoverImage  string       `json:"cover_image"`
	PrepMinutes int          `json:"prep_minutes"`
	Servings    int          `json:"servings"`
	ProductIDs  []gocql.UUID `json:"product_ids,omitempty"` // flavors used
	IsPublished bool         `json:"is_published"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
