package order

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/status"
	"drinkmate_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

//
// GET /api/admin/orders?status=&payment_status=&limit=
//
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	statusFilter := c.Query("status")
	paymentFilter := c.Query("payment_status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	scanner := session.Query(`SELECT ` + orderColumns + ` FROM orders`).Iter().Scanner()

	var orders []models.Order
	for scanner.Next() {
		o, err := scanOrder(scanner.Scan)
		if err != nil {
			break
		}
		if statusFilter != "" && o.Status != statusFilter {
			continue
		}
		if paymentFilter != "" && o.PaymentStatus != paymentFilter {
			continue
		}
		orders = append(orders, *o)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("❌ Admin order listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > limit {
		orders = orders[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "total": len(orders)})
}

//
// PUT /api/admin/orders/:id/status: every status change goes through the
// transition table; skipping states or leaving a terminal state is refused.
//
func UpdateOrderStatus(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status required"})
		return
	}

	o, err := LoadByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if err := status.Transition(o.Status, input.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": err.Error(),
			"current": o.Status,
		})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	now := time.Now()
	assignments := "status = ?"
	values := []interface{}{input.Status}

	switch input.Status {
	case status.Shipped:
		assignments += ", shipping_status = ?, shipped_at = ?"
		values = append(values, models.ShippingShipped, now)
		if o.TrackingNumber == "" {
			assignments += ", tracking_number = ?"
			values = append(values, utils.GenerateTrackingNumber())
		}
	case status.Delivered:
		assignments += ", shipping_status = ?, delivered_at = ?"
		values = append(values, models.ShippingDelivered, now)
	case status.Cancelled:
		assignments += ", cancel_reason = ?"
		values = append(values, "Cancelled by admin")
	}

	if err := setOrderFields(session, o.ID, assignments, values...); err != nil {
		log.Printf("❌ Status update failed for %s: %v", o.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update status"})
		return
	}

	if input.Status == status.Cancelled {
		releaseStock(*o)
	}

	log.Printf("✅ Order %s: %s -> %s", o.OrderNumber, o.Status, input.Status)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated", "status": input.Status})
}

//
// PUT /api/admin/orders/:id/shipping: carrier details for the tracking page.
//
func UpdateShipping(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var input struct {
		TrackingNumber    string     `json:"tracking_number"`
		Carrier           string     `json:"carrier"`
		TrackingURL       string     `json:"tracking_url"`
		EstimatedDelivery *time.Time `json:"estimated_delivery"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	o, err := LoadByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if input.TrackingNumber == "" {
		input.TrackingNumber = utils.GenerateTrackingNumber()
	}

	if err := setOrderFields(session, o.ID,
		"tracking_number = ?, carrier = ?, tracking_url = ?, estimated_delivery = ?",
		input.TrackingNumber, input.Carrier, input.TrackingURL, input.EstimatedDelivery); err != nil {
		log.Printf("❌ Shipping update failed for %s: %v", o.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update shipping"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Shipping updated",
		"tracking_number": input.TrackingNumber,
	})
}

//
// GET /api/admin/orders/stats
//
func GetOrderStats(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT status, payment_status, total, created_at FROM orders`).Iter()

	var (
		byStatus     = map[string]int{}
		totalOrders  int
		totalRevenue float64
		todayOrders  int
	)
	today := time.Now().Truncate(24 * time.Hour)

	var (
		st, ps    string
		total     float64
		createdAt time.Time
	)
	for iter.Scan(&st, &ps, &total, &createdAt) {
		totalOrders++
		byStatus[st]++
		if ps == models.PaymentPaid && st != status.Cancelled {
			totalRevenue += total
		}
		if createdAt.After(today) {
			todayOrders++
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"total_orders":  totalOrders,
			"today_orders":  todayOrders,
			"total_revenue": totalRevenue,
			"by_status":     byStatus,
		},
	})
}
