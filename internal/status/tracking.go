package status

import (
	"time"

	"drinkmate_backend/internal/models"
)

// BuildTrackingHistory reconstructs a presentable timeline from the order's
// current status and timestamps. Only the current-status field is durably
// stored, so intermediate dates are derived from fixed offsets; this is a
// presentation convenience, not an audit trail.
//
// pending → 1 entry, processing/confirmed → 2, shipped → 4 (placed,
// processing, shipped, in transit), delivered → 5. Dates are always ascending.
func BuildTrackingHistory(order models.Order) []models.TrackingEvent {
	placed := event(order.CreatedAt, "Order placed", "Drinkmate fulfillment center")
	history := []models.TrackingEvent{placed}

	if order.Status == Cancelled {
		return append(history, event(order.UpdatedAt, "Order cancelled", "Drinkmate fulfillment center"))
	}
	if order.Status == Pending {
		return history
	}

	history = append(history, event(order.CreatedAt.AddDate(0, 0, 1), "Processing", "Drinkmate fulfillment center"))
	if order.Status == Processing || order.Status == Confirmed {
		return history
	}

	shippedAt := order.CreatedAt.AddDate(0, 0, 2)
	if order.ShippedAt != nil {
		shippedAt = *order.ShippedAt
	}
	history = append(history, event(shippedAt, "Shipped", carrierOrDefault(order)))

	inTransit := shippedAt.AddDate(0, 0, 1)
	if order.Status == Delivered && order.DeliveredAt != nil {
		// keep the synthetic in-transit point between shipped and delivered
		inTransit = shippedAt.Add(order.DeliveredAt.Sub(shippedAt) / 2)
	}
	history = append(history, event(inTransit, "In transit", "On the way"))

	if order.Status == Delivered {
		deliveredAt := inTransit.AddDate(0, 0, 1)
		if order.DeliveredAt != nil {
			deliveredAt = *order.DeliveredAt
		}
		history = append(history, event(deliveredAt, "Delivered", order.ShippingAddress.City))
	}

	return history
}

func event(at time.Time, label, location string) models.TrackingEvent {
	return models.TrackingEvent{
		Date:     at,
		Time:     at.Format("15:04"),
		Status:   label,
		Location: location,
	}
}

func carrierOrDefault(order models.Order) string {
	if order.Carrier != "" {
		return order.Carrier
	}
	return "Carrier facility"
}
