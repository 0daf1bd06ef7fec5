package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkmate_backend/internal/models"
)

func TestRestorePlan(t *testing.T) {
	productID := "11111111-1111-1111-1111-111111111111"
	bundleID := "22222222-2222-2222-2222-222222222222"

	items := []models.OrderItem{
		{ProductID: productID, Name: "CO2 Cylinder 60L", Quantity: 2},
		{BundleID: bundleID, Name: "Starter Pack", Quantity: 3},
	}

	plan := restorePlan(items)
	require.Len(t, plan, 2)

	assert.Equal(t, "products", plan[0].table)
	assert.Equal(t, "product_id", plan[0].keyColumn)
	assert.Equal(t, productID, plan[0].id.String())
	assert.Equal(t, 2, plan[0].quantity)

	assert.Equal(t, "bundles", plan[1].table)
	assert.Equal(t, "bundle_id", plan[1].keyColumn)
	assert.Equal(t, bundleID, plan[1].id.String())
	assert.Equal(t, 3, plan[1].quantity)
}

func TestRestorePlanSkipsMalformedIDs(t *testing.T) {
	plan := restorePlan([]models.OrderItem{
		{ProductID: "not-a-uuid", Name: "Ghost", Quantity: 1},
	})
	assert.Empty(t, plan)
}

func TestLineTarget(t *testing.T) {
	table, keyColumn, rawID := lineTarget(models.OrderItem{ProductID: "p1"})
	assert.Equal(t, []string{"products", "product_id", "p1"}, []string{table, keyColumn, rawID})

	// a line carrying both ids is a bundle; the product id is informational
	table, keyColumn, rawID = lineTarget(models.OrderItem{ProductID: "p1", BundleID: "b1"})
	assert.Equal(t, []string{"bundles", "bundle_id", "b1"}, []string{table, keyColumn, rawID})
}
