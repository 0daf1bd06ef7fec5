package product

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"drinkmate_backend/internal/cache"
	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

//
// PUT /api/admin/inventory/:id: manual restock or correction. Sale and
// return movements are written by the order flow, not here.
//
func UpdateStock(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	var input struct {
		Quantity int    `json:"quantity" binding:"required"`
		Type     string `json:"type" binding:"required"` // "restock", "adjustment"
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}
	if input.Type != "restock" && input.Type != "adjustment" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Type must be restock or adjustment"})
		return
	}
	if input.Type == "restock" && input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Restock quantity must be positive"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	var prevStock, threshold int
	var name string
	if err := session.Query(`SELECT name, stock, low_stock_threshold FROM products WHERE product_id = ?`, id).
		Scan(&name, &prevStock, &threshold); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	newStock := prevStock + input.Quantity
	if newStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Adjustment would make stock negative",
			"current": prevStock,
		})
		return
	}

	if err := session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ?`,
		newStock, time.Now(), id).Exec(); err != nil {
		log.Printf("❌ Stock update failed for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update stock"})
		return
	}

	movement := models.StockMovement{
		ID:        gocql.TimeUUID(),
		ProductID: id,
		Type:      input.Type,
		Quantity:  input.Quantity,
		PrevStock: prevStock,
		NewStock:  newStock,
		Reason:    input.Reason,
		UserID:    c.GetString("user_id"),
		CreatedAt: time.Now(),
	}
	if err := session.Query(`INSERT INTO stock_movements
		(id, product_id, type, quantity, prev_stock, new_stock, reason, order_id, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity, movement.PrevStock,
		movement.NewStock, movement.Reason, nil, movement.UserID, movement.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Stock movement insert failed: %v", err)
	}

	checkStockAlert(session, id, name, newStock, threshold)
	cache.InvalidateProduct(id.String())

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Stock updated",
		"stock":    newStock,
		"movement": movement,
	})
}

// checkStockAlert opens an alert when the level crosses the threshold and
// resolves open ones once it recovers.
func checkStockAlert(session *gocql.Session, productID gocql.UUID, name string, stock, threshold int) {
	if stock > threshold {
		now := time.Now()
		iter := session.Query(`SELECT id FROM stock_alerts WHERE product_id = ?`, productID).Iter()
		var alertID gocql.UUID
		for iter.Scan(&alertID) {
			if err := session.Query(`UPDATE stock_alerts SET is_resolved = ?, resolved_at = ?
				WHERE product_id = ? AND id = ?`, true, now, productID, alertID).Exec(); err != nil {
				log.Printf("⚠️ Stock alert resolution failed: %v", err)
			}
		}
		iter.Close()
		return
	}

	alertType := "low_stock"
	if stock == 0 {
		alertType = "out_of_stock"
	}

	if err := session.Query(`INSERT INTO stock_alerts
		(id, product_id, product_name, current_stock, threshold_stock, alert_type, is_resolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), productID, name, stock, threshold, alertType, false, time.Now()).Exec(); err != nil {
		log.Printf("⚠️ Stock alert insert failed: %v", err)
	}
}

//
// GET /api/admin/inventory/movements?product_id=&limit=
//
func GetStockMovements(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	productFilter := c.Query("product_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	iter := session.Query(`SELECT id, product_id, type, quantity, prev_stock, new_stock, reason, order_id, user_id, created_at
		FROM stock_movements`).Iter()

	var movements []models.StockMovement
	var m models.StockMovement
	for iter.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PrevStock, &m.NewStock,
		&m.Reason, &m.OrderID, &m.UserID, &m.CreatedAt) {
		if productFilter != "" && m.ProductID.String() != productFilter {
			continue
		}
		movements = append(movements, m)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	sort.Slice(movements, func(i, j int) bool {
		return movements[i].CreatedAt.After(movements[j].CreatedAt)
	})
	if len(movements) > limit {
		movements = movements[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "movements": movements, "total": len(movements)})
}

//
// GET /api/admin/inventory/alerts
//
func GetStockAlerts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT id, product_id, product_name, current_stock, threshold_stock, alert_type, is_resolved, created_at, resolved_at
		FROM stock_alerts`).Iter()

	var alerts []models.StockAlert
	var a models.StockAlert
	for iter.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.CurrentStock, &a.ThresholdStock,
		&a.AlertType, &a.IsResolved, &a.CreatedAt, &a.ResolvedAt) {
		if !a.IsResolved {
			alerts = append(alerts, a)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": alerts, "total": len(alerts)})
}

//
// GET /api/admin/inventory/stats
//
func GetInventoryStats(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT stock, low_stock_threshold, price, is_active FROM products`).Iter()

	var stats models.InventoryStats
	var (
		stock, threshold int
		price            float64
		isActive         bool
	)
	for iter.Scan(&stock, &threshold, &price, &isActive) {
		if !isActive {
			continue
		}
		stats.TotalProducts++
		stats.TotalValue += price * float64(stock)
		switch {
		case stock == 0:
			stats.OutOfStockProducts++
		case stock <= threshold:
			stats.LowStockProducts++
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
