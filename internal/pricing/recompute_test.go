package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkmate_backend/internal/models"
)

func TestRecomputeSingleItemBelowFreeShipping(t *testing.T) {
	cart := &models.Cart{
		UserID: "u1",
		Items: []models.CartItem{
			{ProductID: "p1", UnitPrice: 50, Quantity: 3},
		},
	}

	Recompute(cart)

	assert.Equal(t, 3, cart.Summary.ItemCount)
	assert.Equal(t, 150.0, cart.Summary.Subtotal)
	assert.Equal(t, 50.0, cart.Summary.Shipping)
	assert.Equal(t, 22.5, cart.Summary.Tax)
	assert.Equal(t, 0.0, cart.Summary.Discount)
	assert.Equal(t, 222.5, cart.Summary.Total)
	assert.Equal(t, "SAR", cart.Summary.Currency)
	assert.Equal(t, 150.0, cart.Items[0].TotalPrice)
}

func TestRecomputeInvariants(t *testing.T) {
	carts := []*models.Cart{
		{Items: nil},
		{Items: []models.CartItem{{ProductID: "p1", UnitPrice: 19.99, Quantity: 2}}},
		{
			Items: []models.CartItem{
				{ProductID: "p1", UnitPrice: 249, Quantity: 2},
				{BundleID: "b1", UnitPrice: 399, Quantity: 1},
			},
			Coupon: &models.AppliedCoupon{Code: "SODA10", Type: "percentage", Value: 10, ExpiresAt: time.Now().Add(time.Hour)},
		},
		{
			Items:  []models.CartItem{{ProductID: "p2", UnitPrice: 30, Quantity: 1}},
			Coupon: &models.AppliedCoupon{Code: "BIG", Type: "fixed", Value: 500, ExpiresAt: time.Now().Add(time.Hour)},
		},
		{
			Items:  []models.CartItem{{ProductID: "p3", UnitPrice: 1000, Quantity: 1}},
			Coupon: &models.AppliedCoupon{Code: "CAP", Type: "percentage", Value: 50, ExpiresAt: time.Now().Add(time.Hour)},
		},
	}

	for _, cart := range carts {
		Recompute(cart)
		s := cart.Summary

		assert.InDelta(t, s.Subtotal+s.Shipping+s.Tax-s.Discount, s.Total, 0.001)
		assert.LessOrEqual(t, s.Discount, s.Subtotal)
		assert.GreaterOrEqual(t, s.Total, 0.0)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{ProductID: "p1", UnitPrice: 129.5, Quantity: 2},
			{ProductID: "p2", UnitPrice: 24.75, Quantity: 4},
		},
		Coupon: &models.AppliedCoupon{Code: "SODA10", Type: "percentage", Value: 10, ExpiresAt: time.Now().Add(time.Hour)},
	}

	Recompute(cart)
	first := cart.Summary
	Recompute(cart)

	assert.Equal(t, first, cart.Summary)
}

func TestRecomputeExpiredCouponSnapshot(t *testing.T) {
	cart := &models.Cart{
		Items:  []models.CartItem{{ProductID: "p1", UnitPrice: 100, Quantity: 1}},
		Coupon: &models.AppliedCoupon{Code: "OLD", Type: "fixed", Value: 20, ExpiresAt: time.Now().Add(-time.Hour)},
	}

	Recompute(cart)

	assert.Equal(t, 0.0, cart.Summary.Discount)
}

func TestOrderTotalFixedPoint(t *testing.T) {
	// subtotal 1000, 10% coupon with no cap, free shipping, 15% VAT on 900
	subtotal := 1000.0
	coupon := models.Coupon{Type: "percentage", Value: 10, IsActive: true}

	discount := CouponDiscount(coupon, subtotal)
	require.Equal(t, 100.0, discount)

	shipping := ShippingCost(subtotal)
	require.Equal(t, 0.0, shipping)

	tax := TaxAmount(subtotal, discount)
	require.Equal(t, 135.0, tax)

	assert.Equal(t, 1035.0, OrderTotal(subtotal, discount, shipping, tax))
}
