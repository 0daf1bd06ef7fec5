package order

import (
	"fmt"
	"log"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const casRetries = 5

// stockAdjustment remembers one applied decrement so it can be compensated
// if a later item in the same checkout fails.
type stockAdjustment struct {
	table     string // "products" or "bundles"
	keyColumn string
	id        gocql.UUID
	quantity  int
	prevStock int
}

// decrementStock conditionally takes qty units off a row using a
// compare-and-set update, retrying on contention. Returns the stock level
// seen before the decrement.
func decrementStock(session *gocql.Session, table, keyColumn string, id gocql.UUID, qty int) (int, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var current int
		if err := session.Query(
			fmt.Sprintf(`SELECT stock FROM %s WHERE %s = ?`, table, keyColumn), id).Scan(&current); err != nil {
			return 0, err
		}
		if current < qty {
			return current, fmt.Errorf("insufficient stock")
		}

		applied, err := session.Query(
			fmt.Sprintf(`UPDATE %s SET stock = ? WHERE %s = ? IF stock = ?`, table, keyColumn),
			current-qty, id, current).ScanCAS(&current)
		if err != nil {
			return 0, err
		}
		if applied {
			return current, nil
		}
		// someone else moved the stock between read and write, retry
	}
	return 0, fmt.Errorf("stock update contention")
}

// restoreStock adds qty units back with the same compare-and-set loop.
func restoreStock(session *gocql.Session, table, keyColumn string, id gocql.UUID, qty int) (int, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var current int
		if err := session.Query(
			fmt.Sprintf(`SELECT stock FROM %s WHERE %s = ?`, table, keyColumn), id).Scan(&current); err != nil {
			return 0, err
		}

		applied, err := session.Query(
			fmt.Sprintf(`UPDATE %s SET stock = ? WHERE %s = ? IF stock = ?`, table, keyColumn),
			current+qty, id, current).ScanCAS(&current)
		if err != nil {
			return 0, err
		}
		if applied {
			return current + qty, nil
		}
	}
	return 0, fmt.Errorf("stock update contention")
}

// lineTarget names the row a line's stock lives on.
func lineTarget(item models.OrderItem) (table, keyColumn, rawID string) {
	if item.BundleID != "" {
		return "bundles", "bundle_id", item.BundleID
	}
	return "products", "product_id", item.ProductID
}

// restorePlan maps order lines onto the per-row additions that undo their
// decrements, one adjustment per line carrying the line's full quantity.
// Lines with malformed ids are dropped.
func restorePlan(items []models.OrderItem) []stockAdjustment {
	plan := make([]stockAdjustment, 0, len(items))
	for _, item := range items {
		table, keyColumn, rawID := lineTarget(item)
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		plan = append(plan, stockAdjustment{
			table:     table,
			keyColumn: keyColumn,
			id:        gocql.UUID(parsed),
			quantity:  item.Quantity,
		})
	}
	return plan
}

// reserveStock decrements every line of the order. Either all lines are
// decremented, or the already-applied ones are rolled back and an error
// names the offending item.
func reserveStock(items []models.OrderItem) ([]stockAdjustment, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	var applied []stockAdjustment

	rollback := func() {
		for _, adj := range applied {
			if _, err := restoreStock(session, adj.table, adj.keyColumn, adj.id, adj.quantity); err != nil {
				log.Printf("❌ Stock compensation failed for %s %s: %v", adj.table, adj.id, err)
			}
		}
	}

	for _, item := range items {
		table, keyColumn, rawID := lineTarget(item)

		parsed, err := uuid.Parse(rawID)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("invalid item id: %s", rawID)
		}
		id := gocql.UUID(parsed)

		prev, err := decrementStock(session, table, keyColumn, id, item.Quantity)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("%s: %s", item.Name, err)
		}

		applied = append(applied, stockAdjustment{
			table:     table,
			keyColumn: keyColumn,
			id:        id,
			quantity:  item.Quantity,
			prevStock: prev,
		})
	}

	return applied, nil
}

// releaseStock puts every line of a cancelled order back and logs the
// return movements.
func releaseStock(o models.Order) {
	session, err := database.GetCatalogSession()
	if err != nil {
		log.Printf("❌ Stock release skipped for order %s: %v", o.OrderNumber, err)
		return
	}

	for _, adj := range restorePlan(o.Items) {
		newStock, err := restoreStock(session, adj.table, adj.keyColumn, adj.id, adj.quantity)
		if err != nil {
			log.Printf("❌ Stock release failed for %s %s: %v", adj.table, adj.id, err)
			continue
		}

		recordMovement(session, models.StockMovement{
			ID:        gocql.TimeUUID(),
			ProductID: adj.id,
			Type:      "return",
			Quantity:  adj.quantity,
			PrevStock: newStock - adj.quantity,
			NewStock:  newStock,
			Reason:    "Order " + o.OrderNumber + " cancelled",
			OrderID:   &o.ID,
			UserID:    o.UserID,
			CreatedAt: time.Now(),
		})
	}
}

func recordMovement(session *gocql.Session, m models.StockMovement) {
	if err := session.Query(`INSERT INTO stock_movements
		(id, product_id, type, quantity, prev_stock, new_stock, reason, order_id, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.PrevStock, m.NewStock,
		m.Reason, m.OrderID, m.UserID, m.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Stock movement insert failed: %v", err)
	}
}
