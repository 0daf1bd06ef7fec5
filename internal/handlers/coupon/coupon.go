package coupon

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// LoadByCode fetches a coupon by its (upper-cased) code.
func LoadByCode(code string) (*models.Coupon, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var cp models.Coupon
	err = session.Query(`SELECT id, code, description, type, value, min_purchase, max_discount,
			usage_limit, used_count, per_user_limit, starts_at, expires_at, is_active,
			first_order_only, product_ids, category_ids, excluded_product_ids, allowed_user_ids
		FROM coupons WHERE code = ? LIMIT 1`, strings.ToUpper(code)).Scan(
		&cp.ID, &cp.Code, &cp.Description, &cp.Type, &cp.Value, &cp.MinPurchase, &cp.MaxDiscount,
		&cp.UsageLimit, &cp.UsedCount, &cp.PerUserLimit, &cp.StartsAt, &cp.ExpiresAt, &cp.IsActive,
		&cp.FirstOrderOnly, &cp.ProductIDs, &cp.CategoryIDs, &cp.ExcludedProductIDs, &cp.AllowedUserIDs)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// BuildUserContext loads the per-user counters the evaluator needs.
func BuildUserContext(cp models.Coupon, userID string) pricing.UserContext {
	userCtx := pricing.UserContext{UserID: userID}

	session, err := database.GetOrdersSession()
	if err != nil {
		return userCtx
	}

	if cp.PerUserLimit > 0 {
		var count int
		if err := session.Query(`SELECT COUNT(*) FROM coupon_usage WHERE coupon_id = ? AND user_id = ?`,
			cp.ID, userID).Scan(&count); err == nil {
			userCtx.UsageCount = count
		}
	}

	if cp.FirstOrderOnly {
		var count int
		if err := session.Query(`SELECT COUNT(*) FROM orders_by_user WHERE user_id = ?`, userID).Scan(&count); err == nil {
			userCtx.OrderCount = count
		}
	}

	return userCtx
}

// ResolveCategories fills in each product line's category so category-scoped
// coupons can be matched. The catalog is queried only when the coupon
// actually scopes by category.
func ResolveCategories(cp models.Coupon, refs []pricing.ItemRef) {
	if len(cp.CategoryIDs) == 0 {
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return
	}

	for i, ref := range refs {
		if ref.ProductID == "" {
			continue
		}
		pid, err := gocql.ParseUUID(ref.ProductID)
		if err != nil {
			continue
		}
		var categoryID gocql.UUID
		if err := session.Query(`SELECT category_id FROM products WHERE product_id = ?`, pid).
			Scan(&categoryID); err == nil {
			refs[i].CategoryID = categoryID.String()
		}
	}
}

// RecordRedemption bumps the usage counter and writes the usage row.
// Called exactly once per order that actually applies the coupon.
func RecordRedemption(cp models.Coupon, userID string, orderID gocql.UUID, discount float64) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return
	}

	if err := session.Query(`UPDATE coupons SET used_count = ?, updated_at = ? WHERE code = ?`,
		cp.UsedCount+1, time.Now(), cp.Code).Exec(); err != nil {
		log.Printf("⚠️ Coupon usage increment failed: %v", err)
	}

	if err := session.Query(`INSERT INTO coupon_usage (id, coupon_id, user_id, order_id, discount, used_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), cp.ID, userID, orderID, discount, time.Now()).Exec(); err != nil {
		log.Printf("⚠️ Coupon usage insert failed: %v", err)
	}
}

func cartItemRefs(items []models.CartItem) []pricing.ItemRef {
	refs := make([]pricing.ItemRef, len(items))
	for i, it := range items {
		refs[i] = pricing.ItemRef{ProductID: it.ProductID, BundleID: it.BundleID}
	}
	return refs
}

func cartSnapshot(userID string) *models.Cart {
	data, err := database.RedisClient.Get(context.Background(), "cart:"+userID).Result()
	if err != nil || data == "" {
		return nil
	}
	var cart models.Cart
	if json.Unmarshal([]byte(data), &cart) != nil {
		return nil
	}
	return &cart
}

//
// POST /api/coupons/validate: price a code against a cart total without
// redeeming it. Repeated calls never change the usage count.
//
func Validate(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Code      string  `json:"code" binding:"required"`
		CartTotal float64 `json:"cart_total"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Coupon code required"})
		return
	}
	if input.CartTotal < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cart total"})
		return
	}

	cp, err := LoadByCode(input.Code)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "validation": models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Invalid coupon code",
		}})
		return
	}

	userCtx := BuildUserContext(*cp, userID)
	ok, reason := pricing.ValidateCoupon(*cp, userCtx, input.CartTotal)
	if ok {
		// scoped coupons are matched against the caller's cart lines; a
		// missing cart degrades to a total-only validation
		if cart := cartSnapshot(userID); cart != nil && len(cart.Items) > 0 {
			refs := cartItemRefs(cart.Items)
			ResolveCategories(*cp, refs)
			ok, reason = pricing.CouponApplies(*cp, refs)
		}
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "validation": models.CouponValidation{
			IsValid:      false,
			ErrorMessage: reason,
		}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "validation": models.CouponValidation{
		IsValid:  true,
		Discount: pricing.CouponDiscount(*cp, input.CartTotal),
		Type:     cp.Type,
		Code:     cp.Code,
	}})
}

//
// POST /api/admin/coupons
//
func Create(c *gin.Context) {
	var req struct {
		Code           string    `json:"code" binding:"required"`
		Description    string    `json:"description"`
		Type           string    `json:"type" binding:"required"` // "percentage", "fixed"
		Value          float64   `json:"value" binding:"required"`
		MinPurchase    float64   `json:"min_purchase"`
		MaxDiscount    *float64  `json:"max_discount"`
		UsageLimit     int       `json:"usage_limit"`
		PerUserLimit   int       `json:"per_user_limit"`
		FirstOrderOnly bool      `json:"first_order_only"`
		ProductIDs     []string  `json:"product_ids"`
		CategoryIDs    []string  `json:"category_ids"`
		ExcludedIDs    []string  `json:"excluded_product_ids"`
		AllowedUserIDs []string  `json:"allowed_user_ids"`
		StartsAt       time.Time `json:"starts_at"`
		ExpiresAt      time.Time `json:"expires_at" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}

	if req.Type != "percentage" && req.Type != "fixed" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid coupon type"})
		return
	}
	if req.Type == "percentage" && (req.Value <= 0 || req.Value > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Percentage must be between 1 and 100"})
		return
	}
	if req.Type == "fixed" && req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Fixed amount must be positive"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var existing string
	if err := session.Query(`SELECT code FROM coupons WHERE code = ? LIMIT 1`, code).Scan(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "This coupon code already exists"})
		return
	}

	userID := c.GetString("user_id")
	now := time.Now()
	if req.StartsAt.IsZero() {
		req.StartsAt = now
	}

	cp := models.Coupon{
		ID:                 gocql.TimeUUID(),
		Code:               code,
		Description:        req.Description,
		Type:               req.Type,
		Value:              req.Value,
		MinPurchase:        req.MinPurchase,
		MaxDiscount:        req.MaxDiscount,
		UsageLimit:         req.UsageLimit,
		UsedCount:          0,
		PerUserLimit:       req.PerUserLimit,
		StartsAt:           req.StartsAt,
		ExpiresAt:          req.ExpiresAt,
		IsActive:           true,
		FirstOrderOnly:     req.FirstOrderOnly,
		ProductIDs:         req.ProductIDs,
		CategoryIDs:        req.CategoryIDs,
		ExcludedProductIDs: req.ExcludedIDs,
		AllowedUserIDs:     req.AllowedUserIDs,
		CreatedBy:          userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	insertQuery := `
		INSERT INTO coupons (
			id, code, description, type, value, min_purchase, max_discount, usage_limit,
			used_count, per_user_limit, starts_at, expires_at, is_active, first_order_only,
			product_ids, category_ids, excluded_product_ids, allowed_user_ids,
			created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if err := session.Query(insertQuery,
		cp.ID, cp.Code, cp.Description, cp.Type, cp.Value, cp.MinPurchase, cp.MaxDiscount,
		cp.UsageLimit, cp.UsedCount, cp.PerUserLimit, cp.StartsAt, cp.ExpiresAt, cp.IsActive,
		cp.FirstOrderOnly, cp.ProductIDs, cp.CategoryIDs, cp.ExcludedProductIDs,
		cp.AllowedUserIDs, cp.CreatedBy, cp.CreatedAt, cp.UpdatedAt,
	).Exec(); err != nil {
		log.Printf("❌ Coupon creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create coupon"})
		return
	}

	log.Printf("✅ Coupon created: %s", cp.Code)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Coupon created", "coupon": cp})
}

//
// GET /api/admin/coupons
//
func GetAll(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	query := `SELECT id, code, description, type, value, min_purchase, max_discount, usage_limit,
			used_count, per_user_limit, starts_at, expires_at, is_active, first_order_only,
			created_by, created_at, updated_at FROM coupons`

	iter := session.Query(query).Iter()
	defer iter.Close()

	var coupons []models.Coupon
	var cp models.Coupon

	for iter.Scan(&cp.ID, &cp.Code, &cp.Description, &cp.Type, &cp.Value, &cp.MinPurchase,
		&cp.MaxDiscount, &cp.UsageLimit, &cp.UsedCount, &cp.PerUserLimit, &cp.StartsAt,
		&cp.ExpiresAt, &cp.IsActive, &cp.FirstOrderOnly, &cp.CreatedBy, &cp.CreatedAt, &cp.UpdatedAt) {
		coupons = append(coupons, cp)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Coupon listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "coupons": coupons, "total": len(coupons)})
}

//
// PUT /api/admin/coupons/:code
//
func Update(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	var req struct {
		IsActive    *bool      `json:"is_active"`
		UsageLimit  *int       `json:"usage_limit"`
		MinPurchase *float64   `json:"min_purchase"`
		ExpiresAt   *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	updates := []string{}
	values := []interface{}{}

	if req.IsActive != nil {
		updates = append(updates, "is_active = ?")
		values = append(values, *req.IsActive)
	}
	if req.UsageLimit != nil {
		updates = append(updates, "usage_limit = ?")
		values = append(values, *req.UsageLimit)
	}
	if req.MinPurchase != nil {
		updates = append(updates, "min_purchase = ?")
		values = append(values, *req.MinPurchase)
	}
	if req.ExpiresAt != nil {
		updates = append(updates, "expires_at = ?")
		values = append(values, *req.ExpiresAt)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No updates provided"})
		return
	}

	updates = append(updates, "updated_at = ?")
	values = append(values, time.Now())
	values = append(values, code)

	query := fmt.Sprintf("UPDATE coupons SET %s WHERE code = ?", strings.Join(updates, ", "))

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if _, err := LoadByCode(code); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Coupon not found"})
		return
	}

	if err := session.Query(query, values...).Exec(); err != nil {
		log.Printf("❌ Coupon update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon updated"})
}

//
// DELETE /api/admin/coupons/:code
//
func Delete(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := session.Query(`DELETE FROM coupons WHERE code = ?`, code).Exec(); err != nil {
		log.Printf("❌ Coupon deletion failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not delete coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deleted"})
}
