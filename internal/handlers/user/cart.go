package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string { return "cart:" + userID }

// loadCart reads the user's cart from Redis, starting a fresh one when the
// key is missing or the stored cart has expired.
func loadCart(userID string) *models.Cart {
	data, err := database.RedisClient.Get(context.Background(), cartKey(userID)).Result()
	if err == nil && data != "" {
		var cart models.Cart
		if json.Unmarshal([]byte(data), &cart) == nil {
			if !cart.ExpiresAt.IsZero() && time.Now().After(cart.ExpiresAt) {
				cart.Status = models.CartExpired
			}
			if cart.Status == models.CartActive {
				return &cart
			}
		}
	}

	now := time.Now()
	return &models.Cart{
		UserID:    userID,
		Items:     []models.CartItem{},
		Status:    models.CartActive,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(cartTTL),
	}
}

// saveCart recomputes the summary and persists the cart back to Redis.
// The summary is never written without going through pricing.Recompute.
func saveCart(cart *models.Cart) {
	pricing.Recompute(cart)
	jsonData, _ := json.Marshal(cart)
	database.RedisClient.Set(context.Background(), cartKey(cart.UserID), jsonData, cartTTL)
}

// variantKey distinguishes cart lines of the same product with different options.
func variantKey(variants []models.VariantSelection) string {
	key := ""
	for _, v := range variants {
		key += v.Name + "=" + v.Value + ";"
	}
	return key
}

// resolveSnapshot loads the live product or bundle and builds the price
// snapshot for a new cart line. Variant price adjustments are folded into
// the unit price here.
func resolveSnapshot(productID, bundleID string, variants []models.VariantSelection) (*models.CartItem, int, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, 0, fmt.Errorf("database connection error")
	}

	item := models.CartItem{Variants: variants}
	var stock int

	switch {
	case productID != "":
		pid, err := uuid.Parse(productID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid product id: %s", productID)
		}
		var (
			name, sku string
			price     float64
			imageURLs []string
			isActive  bool
		)
		err = session.Query(`SELECT name, sku, price, stock, image_urls, is_active FROM products WHERE product_id = ?`,
			gocql.UUID(pid)).Scan(&name, &sku, &price, &stock, &imageURLs, &isActive)
		if err != nil || !isActive {
			return nil, 0, fmt.Errorf("product not found: %s", productID)
		}
		item.ProductID = productID
		item.Name = name
		item.SKU = sku
		item.UnitPrice = price
		if len(imageURLs) > 0 {
			item.ImageURL = imageURLs[0]
		}

	case bundleID != "":
		bid, err := uuid.Parse(bundleID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid bundle id: %s", bundleID)
		}
		var (
			name, sku string
			price     float64
			imageURLs []string
			isActive  bool
		)
		err = session.Query(`SELECT name, sku, price, stock, image_urls, is_active FROM bundles WHERE bundle_id = ?`,
			gocql.UUID(bid)).Scan(&name, &sku, &price, &stock, &imageURLs, &isActive)
		if err != nil || !isActive {
			return nil, 0, fmt.Errorf("bundle not found: %s", bundleID)
		}
		item.BundleID = bundleID
		item.Name = name
		item.SKU = sku
		item.UnitPrice = price
		if len(imageURLs) > 0 {
			item.ImageURL = imageURLs[0]
		}

	default:
		return nil, 0, fmt.Errorf("either product_id or bundle_id is required")
	}

	for _, v := range variants {
		item.UnitPrice += v.PriceAdjustment
	}

	return &item, stock, nil
}

//
// GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	cart := loadCart(userID)
	pricing.Recompute(cart)

	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

//
// POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string                    `json:"product_id"`
		BundleID  string                    `json:"bundle_id"`
		Quantity  int                       `json:"quantity"`
		Variants  []models.VariantSelection `json:"variants"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be positive"})
		return
	}
	if input.ProductID != "" && input.BundleID != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Provide either product_id or bundle_id, not both"})
		return
	}

	snapshot, stock, err := resolveSnapshot(input.ProductID, input.BundleID, input.Variants)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart := loadCart(userID)

	// merge with an existing line of the same product + variant set
	found := false
	for i := range cart.Items {
		it := &cart.Items[i]
		if it.ProductID == snapshot.ProductID && it.BundleID == snapshot.BundleID &&
			variantKey(it.Variants) == variantKey(snapshot.Variants) {
			if it.Quantity+input.Quantity > stock {
				c.JSON(http.StatusBadRequest, gin.H{
					"success":   false,
					"message":   "Insufficient stock for " + snapshot.Name,
					"available": stock,
					"requested": it.Quantity + input.Quantity,
				})
				return
			}
			it.Quantity += input.Quantity
			found = true
			break
		}
	}
	if !found {
		if input.Quantity > stock {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":   false,
				"message":   "Insufficient stock for " + snapshot.Name,
				"available": stock,
				"requested": input.Quantity,
			})
			return
		}
		snapshot.Quantity = input.Quantity
		cart.Items = append(cart.Items, *snapshot)
	}

	saveCart(cart)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to cart", "cart": cart})
}

//
// PUT /api/cart/update
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"product_id"`
		BundleID  string `json:"bundle_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity cannot be negative"})
		return
	}

	cart := loadCart(userID)

	updated := false
	for i := range cart.Items {
		it := &cart.Items[i]
		if (input.ProductID != "" && it.ProductID == input.ProductID) ||
			(input.BundleID != "" && it.BundleID == input.BundleID) {
			if input.Quantity == 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				it.Quantity = input.Quantity
			}
			updated = true
			break
		}
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not in cart"})
		return
	}

	saveCart(cart)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "cart": cart})
}

//
// DELETE /api/cart/remove/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("productId")

	cart := loadCart(userID)

	newItems := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != id && item.BundleID != id {
			newItems = append(newItems, item)
		}
	}
	if len(newItems) == len(cart.Items) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not in cart"})
		return
	}
	cart.Items = newItems

	saveCart(cart)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart", "cart": cart})
}

//
// DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := database.RedisClient.Del(context.Background(), cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

//
// POST /api/cart/sync: replace the server cart with the client's local one
// (used after login to merge a guest cart). Prices are re-resolved server-side;
// client prices are never trusted.
//
func SyncCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Items []struct {
			ProductID string                    `json:"product_id"`
			BundleID  string                    `json:"bundle_id"`
			Quantity  int                       `json:"quantity"`
			Variants  []models.VariantSelection `json:"variants"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	cart := loadCart(userID)
	cart.Items = []models.CartItem{}

	for _, in := range input.Items {
		if in.Quantity <= 0 {
			continue
		}
		snapshot, stock, err := resolveSnapshot(in.ProductID, in.BundleID, in.Variants)
		if err != nil {
			// skip items that no longer resolve instead of failing the sync
			continue
		}
		qty := in.Quantity
		if qty > stock {
			qty = stock
		}
		if qty == 0 {
			continue
		}
		snapshot.Quantity = qty
		cart.Items = append(cart.Items, *snapshot)
	}

	saveCart(cart)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart synchronized", "cart": cart})
}
