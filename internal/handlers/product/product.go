package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"drinkmate_backend/internal/cache"
	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const productColumns = `product_id, name, slug, description, price, compare_at_price, stock,
	low_stock_threshold, sku, weight, category_id, image_urls, tags, is_active, has_variants,
	created_at, updated_at`

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns "SodaStream Terra 1L" into "sodastream-terra-1l".
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

func scanProduct(scan func(...interface{}) error) (*models.Product, error) {
	var p models.Product
	err := scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice, &p.Stock,
		&p.LowStockThreshold, &p.SKU, &p.Weight, &p.CategoryID, &p.ImageURLs, &p.Tags,
		&p.IsActive, &p.HasVariants, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

//
// GET /api/products: active catalog, served from the Redis list cache.
//
func GetProducts(c *gin.Context) {
	ctx := context.Background()

	if data, err := database.Redis.Get(ctx, "products:all").Result(); err == nil {
		var products []models.Product
		if json.Unmarshal([]byte(data), &products) == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "total": len(products), "cached": true})
			return
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	scanner := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter().Scanner()

	var products []models.Product
	for scanner.Next() {
		p, err := scanProduct(scanner.Scan)
		if err != nil {
			break
		}
		if p.IsActive {
			products = append(products, *p)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("❌ Product listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if jsonData, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, "products:all", jsonData, cache.ProductCacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "total": len(products)})
}

//
// GET /api/products/:id
//
func GetProductByID(c *gin.Context) {
	p, err := cache.GetProductFromCache(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

//
// GET /api/products/search?q=...
//
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query required"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Printf("⚠️ Product search failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": true, "products": []interface{}{}, "total": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": results, "total": len(results)})
}

//
// POST /api/admin/products
//
func CreateProduct(c *gin.Context) {
	var req struct {
		Name              string   `json:"name" binding:"required"`
		Description       string   `json:"description"`
		Price             float64  `json:"price" binding:"required"`
		CompareAtPrice    *float64 `json:"compare_at_price"`
		Stock             int      `json:"stock"`
		LowStockThreshold int      `json:"low_stock_threshold"`
		SKU               string   `json:"sku" binding:"required"`
		Weight            float64  `json:"weight"`
		CategoryID        string   `json:"category_id" binding:"required"`
		ImageURLs         []string `json:"image_urls"`
		Tags              []string `json:"tags"`
		HasVariants       bool     `json:"has_variants"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price must be positive"})
		return
	}

	categoryID, err := gocql.ParseUUID(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if req.LowStockThreshold == 0 {
		req.LowStockThreshold = 5
	}

	now := time.Now()
	p := models.Product{
		ID:                gocql.TimeUUID(),
		Name:              req.Name,
		Slug:              Slugify(req.Name),
		Description:       req.Description,
		Price:             req.Price,
		CompareAtPrice:    req.CompareAtPrice,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		Weight:            req.Weight,
		CategoryID:        categoryID,
		ImageURLs:         req.ImageURLs,
		Tags:              req.Tags,
		IsActive:          true,
		HasVariants:       req.HasVariants,
		CreatedAt:         &now,
		UpdatedAt:         &now,
	}

	if err := session.Query(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.CompareAtPrice, p.Stock,
		p.LowStockThreshold, p.SKU, p.Weight, p.CategoryID, p.ImageURLs, p.Tags,
		p.IsActive, p.HasVariants, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Product insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create product"})
		return
	}

	go services.IndexProduct(p)
	cache.InvalidatePrefix("products:")

	log.Printf("✅ Product created: %s", p.Name)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created", "product": p})
}

//
// PUT /api/admin/products/:id
//
func UpdateProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	var req struct {
		Name           *string  `json:"name"`
		Description    *string  `json:"description"`
		Price          *float64 `json:"price"`
		CompareAtPrice *float64 `json:"compare_at_price"`
		SKU            *string  `json:"sku"`
		Weight         *float64 `json:"weight"`
		ImageURLs      []string `json:"image_urls"`
		Tags           []string `json:"tags"`
		IsActive       *bool    `json:"is_active"`
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

	existing, err := scanProduct(session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
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
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price must be positive"})
			return
		}
		existing.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		existing.CompareAtPrice = req.CompareAtPrice
	}
	if req.SKU != nil {
		existing.SKU = *req.SKU
	}
	if req.Weight != nil {
		existing.Weight = *req.Weight
	}
	if req.ImageURLs != nil {
		existing.ImageURLs = req.ImageURLs
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	now := time.Now()
	existing.UpdatedAt = &now

	if err := session.Query(`UPDATE products SET name = ?, slug = ?, description = ?, price = ?,
		compare_at_price = ?, sku = ?, weight = ?, image_urls = ?, tags = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		existing.Name, existing.Slug, existing.Description, existing.Price,
		existing.CompareAtPrice, existing.SKU, existing.Weight, existing.ImageURLs,
		existing.Tags, existing.IsActive, existing.UpdatedAt, id).Exec(); err != nil {
		log.Printf("❌ Product update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update product"})
		return
	}

	go services.IndexProduct(*existing)
	cache.InvalidateProduct(id.String())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated", "product": existing})
}

//
// DELETE /api/admin/products/:id: soft delete, the row stays for order history.
//
func DeleteProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := session.Query(`UPDATE products SET is_active = ?, updated_at = ? WHERE product_id = ?`,
		false, time.Now(), id).Exec(); err != nil {
		log.Printf("❌ Product deletion failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not delete product"})
		return
	}

	go services.DeleteFromIndex("products", id.String())
	cache.InvalidateProduct(id.String())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
