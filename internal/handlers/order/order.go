package order

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

//
// GET /api/orders: the authenticated user's orders, newest first.
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := loadOrdersForUser(userID)
	if err != nil {
		log.Printf("❌ Order listing failed for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "total": len(orders)})
}

//
// GET /api/orders/:id: visible to the owner and to admins.
//
func GetOrderByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	o, err := LoadByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if o.UserID != c.GetString("user_id") && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": o})
}

//
// POST /api/orders/:id/cancel: only while the order is still cancellable.
// Stock goes back to the shelf when the cancellation sticks.
//
func CancelOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	c.ShouldBindJSON(&input)

	o, err := LoadByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if o.UserID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		return
	}

	if !status.Cancellable(o.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Order can no longer be cancelled",
			"status":  o.Status,
		})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = "Cancelled by customer"
	}

	if err := setOrderFields(session, o.ID, "status = ?, cancel_reason = ?", status.Cancelled, reason); err != nil {
		log.Printf("❌ Order cancellation failed for %s: %v", o.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not cancel order"})
		return
	}

	releaseStock(*o)

	o.Status = status.Cancelled
	o.CancelReason = reason
	o.UpdatedAt = time.Now()

	log.Printf("✅ Order cancelled: %s", o.OrderNumber)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled", "order": o})
}

//
// GET /api/track/:orderNumber?email=...: public tracking. The e-mail must
// match the one on the order; no account required.
//
func TrackOrder(c *gin.Context) {
	orderNumber := strings.ToUpper(strings.TrimSpace(c.Param("orderNumber")))
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))

	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "E-mail is required"})
		return
	}

	o, err := LoadByNumber(orderNumber)
	if err != nil || !strings.EqualFold(o.Email, email) {
		// same answer for unknown number and wrong e-mail
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tracking": gin.H{
			"order_number":       o.OrderNumber,
			"status":             o.Status,
			"carrier":            o.Carrier,
			"tracking_number":    o.TrackingNumber,
			"tracking_url":       o.TrackingURL,
			"estimated_delivery": o.EstimatedDelivery,
			"history":            status.BuildTrackingHistory(*o),
		},
	})
}
