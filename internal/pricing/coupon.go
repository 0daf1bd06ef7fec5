package pricing

import (
	"fmt"
	"time"

	"drinkmate_backend/internal/models"
)

// UserContext carries what the coupon checks need to know about the caller.
// The handlers load these counts; the evaluator stays free of database access.
type UserContext struct {
	UserID     string
	UsageCount int // times this user already redeemed this coupon
	OrderCount int // lifetime orders, for first-order-only coupons
}

// ValidateCoupon runs the eligibility checks in a fixed order and reports the
// first failure as a human-readable reason. It never mutates the coupon;
// usage counting happens only when an order actually redeems it.
func ValidateCoupon(coupon models.Coupon, user UserContext, cartTotal float64) (bool, string) {
	if !coupon.IsActive {
		return false, "This coupon is no longer active"
	}

	now := time.Now()
	if now.Before(coupon.StartsAt) {
		return false, "This coupon is not valid yet"
	}
	if now.After(coupon.ExpiresAt) {
		return false, "This coupon has expired"
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return false, "This coupon has reached its usage limit"
	}

	if cartTotal < coupon.MinPurchase {
		return false, fmt.Sprintf("Minimum purchase of %.2f %s required", coupon.MinPurchase, Currency)
	}

	if len(coupon.AllowedUserIDs) > 0 {
		allowed := false
		for _, id := range coupon.AllowedUserIDs {
			if id == user.UserID {
				allowed = true
				break
			}
		}
		if !allowed {
			return false, "This coupon is not available for your account"
		}
	}

	if coupon.PerUserLimit > 0 && user.UsageCount >= coupon.PerUserLimit {
		return false, "You have already used this coupon the maximum number of times"
	}

	if coupon.FirstOrderOnly && user.OrderCount > 0 {
		return false, "This coupon is only valid on your first order"
	}

	return true, ""
}

// ItemRef is the slice of a cart or order line the scoping checks need.
// CategoryID may stay empty when the coupon does not scope by category.
type ItemRef struct {
	ProductID  string
	BundleID   string
	CategoryID string
}

// CouponApplies checks a scoped coupon against the lines being purchased.
// A coupon without product or category lists is storewide; otherwise at
// least one non-excluded line must fall inside the scope.
func CouponApplies(coupon models.Coupon, items []ItemRef) (bool, string) {
	if len(coupon.ProductIDs) == 0 && len(coupon.CategoryIDs) == 0 && len(coupon.ExcludedProductIDs) == 0 {
		return true, ""
	}

	excluded := make(map[string]bool, len(coupon.ExcludedProductIDs))
	for _, id := range coupon.ExcludedProductIDs {
		excluded[id] = true
	}
	inProducts := make(map[string]bool, len(coupon.ProductIDs))
	for _, id := range coupon.ProductIDs {
		inProducts[id] = true
	}
	inCategories := make(map[string]bool, len(coupon.CategoryIDs))
	for _, id := range coupon.CategoryIDs {
		inCategories[id] = true
	}

	for _, item := range items {
		lineID := item.ProductID
		if lineID == "" {
			lineID = item.BundleID
		}
		if excluded[lineID] {
			continue
		}
		if len(inProducts) == 0 && len(inCategories) == 0 {
			return true, ""
		}
		if inProducts[lineID] || (item.CategoryID != "" && inCategories[item.CategoryID]) {
			return true, ""
		}
	}
	return false, "This coupon does not apply to the items in your cart"
}

// CouponDiscount computes the discount amount for an eligible coupon.
// The result is never negative and never exceeds cartTotal; percentage
// coupons additionally respect MaxDiscount when set.
func CouponDiscount(coupon models.Coupon, cartTotal float64) float64 {
	var discount float64
	switch coupon.Type {
	case "percentage":
		discount = cartTotal * coupon.Value / 100
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	case "fixed":
		discount = coupon.Value
	}
	if discount > cartTotal {
		discount = cartTotal
	}
	if discount < 0 {
		discount = 0
	}
	return round2(discount)
}
