package user

import (
	"net/http"
	"strings"

	"drinkmate_backend/internal/handlers/coupon"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/pricing"

	"github.com/gin-gonic/gin"
)

//
// POST /api/cart/coupon: validate a code against the current cart and
// attach its snapshot. Usage count is NOT touched here; redemption happens
// at checkout.
//
func ApplyCoupon(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Coupon code required"})
		return
	}

	cart := loadCart(userID)
	pricing.Recompute(cart)

	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	cp, err := coupon.LoadByCode(strings.ToUpper(strings.TrimSpace(input.Code)))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid coupon code"})
		return
	}

	userCtx := coupon.BuildUserContext(*cp, userID)
	ok, reason := pricing.ValidateCoupon(*cp, userCtx, cart.Summary.Subtotal)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": reason})
		return
	}

	refs := make([]pricing.ItemRef, len(cart.Items))
	for i, it := range cart.Items {
		refs[i] = pricing.ItemRef{ProductID: it.ProductID, BundleID: it.BundleID}
	}
	coupon.ResolveCategories(*cp, refs)
	if ok, reason := pricing.CouponApplies(*cp, refs); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": reason})
		return
	}

	cart.Coupon = &models.AppliedCoupon{
		Code:      cp.Code,
		Type:      cp.Type,
		Value:     cp.Value,
		ExpiresAt: cp.ExpiresAt,
	}

	saveCart(cart)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon applied", "cart": cart})
}

//
// DELETE /api/cart/coupon
//
func RemoveCoupon(c *gin.Context) {
	userID := c.GetString("user_id")

	cart := loadCart(userID)
	if cart.Coupon == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No coupon applied"})
		return
	}
	cart.Coupon = nil

	saveCart(cart)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon removed", "cart": cart})
}
