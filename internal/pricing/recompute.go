package pricing

import (
	"time"

	"drinkmate_backend/internal/models"
)

// Recompute refreshes the cart summary from its items and applied coupon.
// The summary is never set directly anywhere else; every cart mutation calls
// this before the cart is persisted. Calling it twice on an unchanged cart
// yields the same summary.
func Recompute(cart *models.Cart) {
	var itemCount int
	var subtotal float64

	for i := range cart.Items {
		it := &cart.Items[i]
		it.TotalPrice = round2(it.UnitPrice * float64(it.Quantity))
		itemCount += it.Quantity
		subtotal += it.TotalPrice
	}
	subtotal = round2(subtotal)

	var discount float64
	if cart.Coupon != nil {
		discount = snapshotDiscount(cart.Coupon, subtotal)
	}

	shipping := ShippingCost(subtotal)
	tax := TaxAmount(subtotal, discount)

	cart.Summary = models.CartSummary{
		ItemCount: itemCount,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Discount:  discount,
		Total:     OrderTotal(subtotal, discount, shipping, tax),
		Currency:  Currency,
	}
	cart.UpdatedAt = time.Now()
}

// snapshotDiscount prices the coupon snapshot the cart carries. An expired
// snapshot contributes nothing; full eligibility is re-checked at checkout.
func snapshotDiscount(coupon *models.AppliedCoupon, subtotal float64) float64 {
	if !coupon.ExpiresAt.IsZero() && time.Now().After(coupon.ExpiresAt) {
		return 0
	}

	var discount float64
	switch coupon.Type {
	case "percentage":
		discount = subtotal * coupon.Value / 100
	case "fixed":
		discount = coupon.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return round2(discount)
}
