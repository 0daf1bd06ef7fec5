package order

import (
	"encoding/json"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"

	"github.com/gocql/gocql"
)

// Orders live in three tables: `orders` holds the full row keyed by id,
// `orders_by_user` and `orders_by_number` are lookup tables pointing back
// to it. Item lists, addresses and the coupon snapshot are stored as JSON
// text columns.

const orderColumns = `id, order_number, user_id, email, items, shipping_address, billing_address,
	payment_method, payment_status, transaction_id, status, shipping_status,
	subtotal, discount, shipping_cost, tax, total, currency, coupon,
	is_gift, gift_message, tracking_number, carrier, tracking_url, estimated_delivery,
	cancel_reason, created_at, updated_at, shipped_at, delivered_at`

func insertOrder(session *gocql.Session, o models.Order) error {
	itemsJSON, _ := json.Marshal(o.Items)
	shippingJSON, _ := json.Marshal(o.ShippingAddress)
	billingJSON, _ := json.Marshal(o.BillingAddress)

	couponJSON := ""
	if o.Coupon != nil {
		b, _ := json.Marshal(o.Coupon)
		couponJSON = string(b)
	}

	if err := session.Query(`INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.OrderNumber, o.UserID, o.Email, string(itemsJSON), string(shippingJSON), string(billingJSON),
		o.PaymentMethod, o.PaymentStatus, o.TransactionID, o.Status, o.ShippingStatus,
		o.Subtotal, o.Discount, o.ShippingCost, o.Tax, o.Total, o.Currency, couponJSON,
		o.IsGift, o.GiftMessage, o.TrackingNumber, o.Carrier, o.TrackingURL, o.EstimatedDelivery,
		o.CancelReason, o.CreatedAt, o.UpdatedAt, o.ShippedAt, o.DeliveredAt,
	).Exec(); err != nil {
		return err
	}

	if err := session.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id) VALUES (?, ?, ?)`,
		o.UserID, o.CreatedAt, o.ID).Exec(); err != nil {
		return err
	}

	return session.Query(`INSERT INTO orders_by_number (order_number, order_id) VALUES (?, ?)`,
		o.OrderNumber, o.ID).Exec()
}

func scanOrder(scan func(...interface{}) error) (*models.Order, error) {
	var (
		o                                    models.Order
		itemsJSON, shippingJSON, billingJSON string
		couponJSON                           string
	)

	err := scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Email, &itemsJSON, &shippingJSON, &billingJSON,
		&o.PaymentMethod, &o.PaymentStatus, &o.TransactionID, &o.Status, &o.ShippingStatus,
		&o.Subtotal, &o.Discount, &o.ShippingCost, &o.Tax, &o.Total, &o.Currency, &couponJSON,
		&o.IsGift, &o.GiftMessage, &o.TrackingNumber, &o.Carrier, &o.TrackingURL, &o.EstimatedDelivery,
		&o.CancelReason, &o.CreatedAt, &o.UpdatedAt, &o.ShippedAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(itemsJSON), &o.Items)
	json.Unmarshal([]byte(shippingJSON), &o.ShippingAddress)
	json.Unmarshal([]byte(billingJSON), &o.BillingAddress)
	if couponJSON != "" {
		var cp models.OrderCoupon
		if json.Unmarshal([]byte(couponJSON), &cp) == nil {
			o.Coupon = &cp
		}
	}

	return &o, nil
}

// LoadByID fetches one order with its JSON columns decoded.
func LoadByID(id gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	q := session.Query(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return scanOrder(q.Scan)
}

// LoadByNumber resolves a customer-facing order number to the full order.
func LoadByNumber(orderNumber string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var orderID gocql.UUID
	if err := session.Query(`SELECT order_id FROM orders_by_number WHERE order_number = ?`,
		orderNumber).Scan(&orderID); err != nil {
		return nil, err
	}
	return LoadByID(orderID)
}

func loadOrdersForUser(userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ids))
	for _, oid := range ids {
		o, err := LoadByID(oid)
		if err != nil {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func setOrderFields(session *gocql.Session, id gocql.UUID, assignments string, values ...interface{}) error {
	values = append(values, time.Now(), id)
	return session.Query(`UPDATE orders SET `+assignments+`, updated_at = ? WHERE id = ?`, values...).Exec()
}
