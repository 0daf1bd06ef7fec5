package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkmate_backend/internal/models"
)

func baseOrder(st string) models.Order {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return models.Order{
		OrderNumber: "DM-250601-AB12CD",
		Status:      st,
		CreatedAt:   created,
		UpdatedAt:   created,
		ShippingAddress: models.Address{
			City: "Riyadh",
		},
	}
}

func assertAscending(t *testing.T, history []models.TrackingEvent) {
	t.Helper()
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Date.Before(history[i-1].Date),
			"entry %d (%s) is before entry %d (%s)", i, history[i].Status, i-1, history[i-1].Status)
	}
}

func TestTrackingHistoryPending(t *testing.T) {
	history := BuildTrackingHistory(baseOrder(Pending))

	require.Len(t, history, 1)
	assert.Equal(t, "Order placed", history[0].Status)
}

func TestTrackingHistoryProcessing(t *testing.T) {
	history := BuildTrackingHistory(baseOrder(Processing))

	require.Len(t, history, 2)
	assert.Equal(t, "Processing", history[1].Status)
	assertAscending(t, history)
}

func TestTrackingHistoryShipped(t *testing.T) {
	order := baseOrder(Shipped)
	shippedAt := order.CreatedAt.AddDate(0, 0, 2)
	order.ShippedAt = &shippedAt
	order.Carrier = "SMSA"

	history := BuildTrackingHistory(order)

	require.Len(t, history, 4)
	assert.Equal(t, "Order placed", history[0].Status)
	assert.Equal(t, "Processing", history[1].Status)
	assert.Equal(t, "Shipped", history[2].Status)
	assert.Equal(t, "In transit", history[3].Status)
	assert.Equal(t, shippedAt, history[2].Date)
	assert.Equal(t, "SMSA", history[2].Location)
	assertAscending(t, history)
}

func TestTrackingHistoryDelivered(t *testing.T) {
	order := baseOrder(Delivered)
	shippedAt := order.CreatedAt.AddDate(0, 0, 2)
	deliveredAt := order.CreatedAt.AddDate(0, 0, 5)
	order.ShippedAt = &shippedAt
	order.DeliveredAt = &deliveredAt

	history := BuildTrackingHistory(order)

	require.Len(t, history, 5)
	assert.Equal(t, "Delivered", history[4].Status)
	assert.Equal(t, deliveredAt, history[4].Date)
	assert.Equal(t, "Riyadh", history[4].Location)
	assertAscending(t, history)
}

func TestTrackingHistoryDeliveredQuickly(t *testing.T) {
	// delivered the day after shipping; the synthetic in-transit point must
	// still land between shipped and delivered
	order := baseOrder(Delivered)
	shippedAt := order.CreatedAt.AddDate(0, 0, 2)
	deliveredAt := shippedAt.Add(20 * time.Hour)
	order.ShippedAt = &shippedAt
	order.DeliveredAt = &deliveredAt

	history := BuildTrackingHistory(order)

	require.Len(t, history, 5)
	assertAscending(t, history)
}

func TestTrackingHistoryCancelled(t *testing.T) {
	order := baseOrder(Cancelled)
	order.UpdatedAt = order.CreatedAt.Add(2 * time.Hour)

	history := BuildTrackingHistory(order)

	require.Len(t, history, 2)
	assert.Equal(t, "Order cancelled", history[1].Status)
	assertAscending(t, history)
}
