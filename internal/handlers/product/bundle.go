package product

import (
	"log"
	"net/http"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const bundleColumns = `bundle_id, name, slug, description, product_ids, price, original_price,
	stock, sku, image_urls, is_active, created_at, updated_at`

func scanBundle(scan func(...interface{}) error) (*models.Bundle, error) {
	var b models.Bundle
	err := scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.ProductIDs, &b.Price, &b.OriginalPrice,
		&b.Stock, &b.SKU, &b.ImageURLs, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

//
// GET /api/bundles
//
func GetBundles(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	scanner := session.Query(`SELECT ` + bundleColumns + ` FROM bundles`).Iter().Scanner()

	var bundles []models.Bundle
	for scanner.Next() {
		b, err := scanBundle(scanner.Scan)
		if err != nil {
			break
		}
		if b.IsActive {
			bundles = append(bundles, *b)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("❌ Bundle listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bundles": bundles, "total": len(bundles)})
}

//
// GET /api/bundles/:id
//
func GetBundleByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid bundle id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	b, err := scanBundle(session.Query(`SELECT `+bundleColumns+` FROM bundles WHERE bundle_id = ?`, id).Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bundle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bundle": b})
}

//
// POST /api/admin/bundles
//
func CreateBundle(c *gin.Context) {
	var req struct {
		Name          string   `json:"name" binding:"required"`
		Description   string   `json:"description"`
		ProductIDs    []string `json:"product_ids" binding:"required"`
		Price         float64  `json:"price" binding:"required"`
		OriginalPrice float64  `json:"original_price"`
		Stock         int      `json:"stock"`
		SKU           string   `json:"sku" binding:"required"`
		ImageURLs     []string `json:"image_urls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price must be positive"})
		return
	}
	if len(req.ProductIDs) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A bundle needs at least two products"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	productIDs := make([]gocql.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		pid, err := gocql.ParseUUID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id: " + raw})
			return
		}
		var name string
		if err := session.Query(`SELECT name FROM products WHERE product_id = ?`, pid).Scan(&name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown product: " + raw})
			return
		}
		productIDs = append(productIDs, pid)
	}

	now := time.Now()
	b := models.Bundle{
		ID:            gocql.TimeUUID(),
		Name:          req.Name,
		Slug:          Slugify(req.Name),
		Description:   req.Description,
		ProductIDs:    productIDs,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		SKU:           req.SKU,
		ImageURLs:     req.ImageURLs,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := session.Query(`INSERT INTO bundles (`+bundleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Slug, b.Description, b.ProductIDs, b.Price, b.OriginalPrice,
		b.Stock, b.SKU, b.ImageURLs, b.IsActive, b.CreatedAt, b.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Bundle insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create bundle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Bundle created", "bundle": b})
}

//
// PUT /api/admin/bundles/:id
//
func UpdateBundle(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid bundle id"})
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		Price         *float64 `json:"price"`
		OriginalPrice *float64 `json:"original_price"`
		Stock         *int     `json:"stock"`
		ImageURLs     []string `json:"image_urls"`
		IsActive      *bool    `json:"is_active"`
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

	existing, err := scanBundle(session.Query(`SELECT `+bundleColumns+` FROM bundles WHERE bundle_id = ?`, id).Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bundle not found"})
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
		existing.Slug = Slugify(*req.Name)
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		existing.OriginalPrice = *req.OriginalPrice
	}
	if req.Stock != nil {
		existing.Stock = *req.Stock
	}
	if req.ImageURLs != nil {
		existing.ImageURLs = req.ImageURLs
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedAt = time.Now()

	if err := session.Query(`UPDATE bundles SET name = ?, slug = ?, description = ?, price = ?,
		original_price = ?, stock = ?, image_urls = ?, is_active = ?, updated_at = ? WHERE bundle_id = ?`,
		existing.Name, existing.Slug, existing.Description, existing.Price,
		existing.OriginalPrice, existing.Stock, existing.ImageURLs, existing.IsActive,
		existing.UpdatedAt, id).Exec(); err != nil {
		log.Printf("❌ Bundle update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update bundle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bundle updated", "bundle": existing})
}

//
// DELETE /api/admin/bundles/:id: soft delete.
//
func DeleteBundle(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid bundle id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := session.Query(`UPDATE bundles SET is_active = ?, updated_at = ? WHERE bundle_id = ?`,
		false, time.Now(), id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not delete bundle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bundle deleted"})
}
