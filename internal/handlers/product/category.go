package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"drinkmate_backend/internal/cache"
	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const categoryColumns = `category_id, name, slug, description, parent_id, image_url, sort_order,
	is_active, created_at, updated_at`

func scanCategory(scan func(...interface{}) error) (*models.Category, error) {
	var cat models.Category
	err := scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ParentID, &cat.ImageURL,
		&cat.SortOrder, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

//
// GET /api/categories
//
func GetCategories(c *gin.Context) {
	ctx := context.Background()

	if data, err := database.Redis.Get(ctx, "categories:all").Result(); err == nil {
		var categories []models.Category
		if json.Unmarshal([]byte(data), &categories) == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories, "cached": true})
			return
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	scanner := session.Query(`SELECT ` + categoryColumns + ` FROM categories`).Iter().Scanner()

	var categories []models.Category
	for scanner.Next() {
		cat, err := scanCategory(scanner.Scan)
		if err != nil {
			break
		}
		if cat.IsActive {
			categories = append(categories, *cat)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("❌ Category listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if jsonData, err := json.Marshal(categories); err == nil {
		database.Redis.Set(ctx, "categories:all", jsonData, cache.CategoryCacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

//
// GET /api/categories/:slug/products
//
func GetProductsByCategory(c *gin.Context) {
	slug := c.Param("slug")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	var categoryID gocql.UUID
	if err := session.Query(`SELECT category_id FROM categories_by_slug WHERE slug = ?`, slug).
		Scan(&categoryID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	scanner := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter().Scanner()

	var products []models.Product
	for scanner.Next() {
		p, err := scanProduct(scanner.Scan)
		if err != nil {
			break
		}
		if p.IsActive && p.CategoryID == categoryID {
			products = append(products, *p)
		}
	}
	if err := scanner.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "total": len(products)})
}

//
// POST /api/admin/categories
//
func CreateCategory(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		ParentID    *string `json:"parent_id"`
		ImageURL    string  `json:"image_url"`
		SortOrder   int     `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}

	var parentID *gocql.UUID
	if req.ParentID != nil {
		pid, err := gocql.ParseUUID(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid parent id"})
			return
		}
		parentID = &pid
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	now := time.Now()
	cat := models.Category{
		ID:          gocql.TimeUUID(),
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
		ParentID:    parentID,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Slug, cat.Description, cat.ParentID, cat.ImageURL,
		cat.SortOrder, cat.IsActive, cat.CreatedAt, cat.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Category insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create category"})
		return
	}

	if err := session.Query(`INSERT INTO categories_by_slug (slug, category_id) VALUES (?, ?)`,
		cat.Slug, cat.ID).Exec(); err != nil {
		log.Printf("⚠️ categories_by_slug insert failed: %v", err)
	}

	cache.InvalidatePrefix("categories:")
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Category created", "category": cat})
}

//
// PUT /api/admin/categories/:id
//
func UpdateCategory(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
		SortOrder   *int    `json:"sort_order"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	existing, err := scanCategory(session.Query(`SELECT `+categoryColumns+` FROM categories WHERE category_id = ?`, id).Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
		existing.Slug = Slugify(*req.Name)
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.ImageURL != nil {
		existing.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		existing.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedAt = time.Now()

	if err := session.Query(`UPDATE categories SET name = ?, slug = ?, description = ?, image_url = ?,
		sort_order = ?, is_active = ?, updated_at = ? WHERE category_id = ?`,
		existing.Name, existing.Slug, existing.Description, existing.ImageURL,
		existing.SortOrder, existing.IsActive, existing.UpdatedAt, id).Exec(); err != nil {
		log.Printf("❌ Category update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update category"})
		return
	}

	if req.Name != nil {
		if err := session.Query(`INSERT INTO categories_by_slug (slug, category_id) VALUES (?, ?)`,
			existing.Slug, existing.ID).Exec(); err != nil {
			log.Printf("⚠️ categories_by_slug insert failed: %v", err)
		}
	}

	cache.InvalidateCategory(id.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated", "category": existing})
}

//
// DELETE /api/admin/categories/:id: soft delete.
//
func DeleteCategory(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := session.Query(`UPDATE categories SET is_active = ?, updated_at = ? WHERE category_id = ?`,
		false, time.Now(), id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not delete category"})
		return
	}

	cache.InvalidateCategory(id.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}
