package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drinkmate_backend/internal/models"
)

func activeCoupon() models.Coupon {
	return models.Coupon{
		Code:      "SODA10",
		Type:      "percentage",
		Value:     10,
		IsActive:  true,
		StartsAt:  time.Now().Add(-24 * time.Hour),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func TestValidateCoupon(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.Coupon)
		user      UserContext
		cartTotal float64
		wantOK    bool
		wantMsg   string
	}{
		{
			name:      "valid",
			mutate:    func(c *models.Coupon) {},
			cartTotal: 100,
			wantOK:    true,
		},
		{
			name:      "inactive",
			mutate:    func(c *models.Coupon) { c.IsActive = false },
			cartTotal: 100,
			wantMsg:   "This coupon is no longer active",
		},
		{
			name:      "not started",
			mutate:    func(c *models.Coupon) { c.StartsAt = time.Now().Add(time.Hour) },
			cartTotal: 100,
			wantMsg:   "This coupon is not valid yet",
		},
		{
			name:      "expired",
			mutate:    func(c *models.Coupon) { c.ExpiresAt = time.Now().Add(-time.Hour) },
			cartTotal: 100,
			wantMsg:   "This coupon has expired",
		},
		{
			name: "usage limit reached",
			mutate: func(c *models.Coupon) {
				c.UsageLimit = 5
				c.UsedCount = 5
			},
			cartTotal: 100,
			wantMsg:   "This coupon has reached its usage limit",
		},
		{
			name:      "below minimum purchase",
			mutate:    func(c *models.Coupon) { c.MinPurchase = 200 },
			cartTotal: 100,
			wantMsg:   "Minimum purchase of 200.00 SAR required",
		},
		{
			name:      "not in allowed list",
			mutate:    func(c *models.Coupon) { c.AllowedUserIDs = []string{"vip-1"} },
			user:      UserContext{UserID: "u1"},
			cartTotal: 100,
			wantMsg:   "This coupon is not available for your account",
		},
		{
			name:      "per-user limit reached",
			mutate:    func(c *models.Coupon) { c.PerUserLimit = 1 },
			user:      UserContext{UserID: "u1", UsageCount: 1},
			cartTotal: 100,
			wantMsg:   "You have already used this coupon the maximum number of times",
		},
		{
			name:      "first order only",
			mutate:    func(c *models.Coupon) { c.FirstOrderOnly = true },
			user:      UserContext{UserID: "u1", OrderCount: 3},
			cartTotal: 100,
			wantMsg:   "This coupon is only valid on your first order",
		},
		{
			name: "inactive wins over expired",
			mutate: func(c *models.Coupon) {
				c.IsActive = false
				c.ExpiresAt = time.Now().Add(-time.Hour)
			},
			cartTotal: 100,
			wantMsg:   "This coupon is no longer active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := activeCoupon()
			tt.mutate(&coupon)

			ok, msg := ValidateCoupon(coupon, tt.user, tt.cartTotal)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidateCouponDoesNotMutate(t *testing.T) {
	coupon := activeCoupon()
	coupon.UsedCount = 2

	ValidateCoupon(coupon, UserContext{UserID: "u1"}, 100)
	ValidateCoupon(coupon, UserContext{UserID: "u1"}, 100)

	assert.Equal(t, 2, coupon.UsedCount)
}

func TestCouponApplies(t *testing.T) {
	noMatch := "This coupon does not apply to the items in your cart"

	tests := []struct {
		name    string
		mutate  func(*models.Coupon)
		items   []ItemRef
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "storewide",
			mutate: func(c *models.Coupon) {},
			items:  []ItemRef{{ProductID: "p1"}},
			wantOK: true,
		},
		{
			name:   "product scope match",
			mutate: func(c *models.Coupon) { c.ProductIDs = []string{"p1", "p2"} },
			items:  []ItemRef{{ProductID: "p2"}},
			wantOK: true,
		},
		{
			name:    "product scope miss",
			mutate:  func(c *models.Coupon) { c.ProductIDs = []string{"p1"} },
			items:   []ItemRef{{ProductID: "p9"}},
			wantMsg: noMatch,
		},
		{
			name:   "category scope match",
			mutate: func(c *models.Coupon) { c.CategoryIDs = []string{"cat-cylinders"} },
			items:  []ItemRef{{ProductID: "p1", CategoryID: "cat-cylinders"}},
			wantOK: true,
		},
		{
			name:    "category scope miss",
			mutate:  func(c *models.Coupon) { c.CategoryIDs = []string{"cat-cylinders"} },
			items:   []ItemRef{{ProductID: "p1", CategoryID: "cat-flavors"}},
			wantMsg: noMatch,
		},
		{
			name: "excluded line does not satisfy the scope",
			mutate: func(c *models.Coupon) {
				c.ProductIDs = []string{"p1"}
				c.ExcludedProductIDs = []string{"p1"}
			},
			items:   []ItemRef{{ProductID: "p1"}},
			wantMsg: noMatch,
		},
		{
			name:    "every line excluded",
			mutate:  func(c *models.Coupon) { c.ExcludedProductIDs = []string{"p1", "p2"} },
			items:   []ItemRef{{ProductID: "p1"}, {ProductID: "p2"}},
			wantMsg: noMatch,
		},
		{
			name:   "exclusion only, one line survives",
			mutate: func(c *models.Coupon) { c.ExcludedProductIDs = []string{"p1"} },
			items:  []ItemRef{{ProductID: "p1"}, {ProductID: "p2"}},
			wantOK: true,
		},
		{
			name:   "bundle line matched by id",
			mutate: func(c *models.Coupon) { c.ProductIDs = []string{"b1"} },
			items:  []ItemRef{{BundleID: "b1"}},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := activeCoupon()
			tt.mutate(&coupon)

			ok, msg := CouponApplies(coupon, tt.items)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestCouponDiscount(t *testing.T) {
	cap := 30.0

	tests := []struct {
		name      string
		coupon    models.Coupon
		cartTotal float64
		want      float64
	}{
		{"percentage", models.Coupon{Type: "percentage", Value: 10}, 200, 20},
		{"percentage capped", models.Coupon{Type: "percentage", Value: 50, MaxDiscount: &cap}, 200, 30},
		{"fixed", models.Coupon{Type: "fixed", Value: 25}, 200, 25},
		{"fixed above total", models.Coupon{Type: "fixed", Value: 500}, 200, 200},
		{"zero cart", models.Coupon{Type: "percentage", Value: 10}, 0, 0},
		{"unknown type", models.Coupon{Type: "free_shipping", Value: 10}, 200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CouponDiscount(tt.coupon, tt.cartTotal)

			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, tt.cartTotal)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}
