package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/handlers/coupon"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/pricing"
	"drinkmate_backend/internal/status"
	"drinkmate_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

//
// POST /api/orders: checkout. Assembles the order from the Redis cart:
// items are re-priced from the live catalog, the coupon is fully re-validated,
// stock is taken off every line (all lines or none), and the cart is cleared
// only after the order row is written.
//
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	var input struct {
		ShippingAddress models.Address  `json:"shipping_address" binding:"required"`
		BillingAddress  *models.Address `json:"billing_address"`
		PaymentMethod   string          `json:"payment_method" binding:"required"`
		IsGift          bool            `json:"is_gift"`
		GiftMessage     string          `json:"gift_message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}

	switch input.PaymentMethod {
	case "cod", "card", "wallet", "tabby", "tamara":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unsupported payment method"})
		return
	}
	if input.ShippingAddress.FullName == "" || input.ShippingAddress.Line1 == "" || input.ShippingAddress.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Incomplete shipping address"})
		return
	}

	cart := loadUserCart(userID)
	if cart == nil || len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	// items are re-priced from the catalog here, not taken from the cart snapshot
	items, badItem, err := resolveOrderItems(cart.Items)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error(), "item": badItem})
		return
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	subtotal = pricing.Round2(subtotal)

	var (
		appliedCoupon *models.OrderCoupon
		couponRow     *models.Coupon
		discount      float64
	)
	if cart.Coupon != nil {
		cp, err := coupon.LoadByCode(cart.Coupon.Code)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Applied coupon no longer exists"})
			return
		}
		userCtx := coupon.BuildUserContext(*cp, userID)
		if ok, reason := pricing.ValidateCoupon(*cp, userCtx, subtotal); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Coupon no longer valid: " + reason})
			return
		}

		refs := make([]pricing.ItemRef, len(items))
		for i, it := range items {
			refs[i] = pricing.ItemRef{ProductID: it.ProductID, BundleID: it.BundleID}
		}
		coupon.ResolveCategories(*cp, refs)
		if ok, reason := pricing.CouponApplies(*cp, refs); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Coupon no longer valid: " + reason})
			return
		}
		discount = pricing.CouponDiscount(*cp, subtotal)
		couponRow = cp
		appliedCoupon = &models.OrderCoupon{Code: cp.Code, Type: cp.Type, Discount: discount}
	}

	shipping := pricing.ShippingCost(subtotal)
	tax := pricing.TaxAmount(subtotal, discount)
	total := pricing.OrderTotal(subtotal, discount, shipping, tax)

	adjustments, err := reserveStock(items)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Stock changed during checkout: " + err.Error()})
		return
	}

	now := time.Now()
	billing := input.ShippingAddress
	if input.BillingAddress != nil {
		billing = *input.BillingAddress
	}

	o := models.Order{
		ID:              gocql.TimeUUID(),
		OrderNumber:     utils.GenerateOrderNumber(now),
		UserID:          userID,
		Email:           email,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billing,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		Status:          status.Pending,
		ShippingStatus:  models.ShippingPending,
		Subtotal:        subtotal,
		Discount:        discount,
		ShippingCost:    shipping,
		Tax:             tax,
		Total:           total,
		Currency:        pricing.Currency,
		Coupon:          appliedCoupon,
		IsGift:          input.IsGift,
		GiftMessage:     input.GiftMessage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var clientSecret string
	switch input.PaymentMethod {
	case "card":
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(total * 100)),
			Currency: stripe.String("sar"),
		}
		params.AddMetadata("order_id", o.ID.String())
		params.AddMetadata("order_number", o.OrderNumber)

		pi, err := paymentintent.New(params)
		if err != nil {
			log.Printf("❌ PaymentIntent creation failed: %v", err)
			releaseStock(o)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment could not be initiated"})
			return
		}
		o.TransactionID = pi.ID
		clientSecret = pi.ClientSecret

	case "wallet":
		// wallet balance is captured synchronously, the order starts paid
		o.PaymentStatus = models.PaymentPaid
		o.Status = status.Processing
		o.TransactionID = utils.GenerateTransactionID()
	}

	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		releaseStock(o)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := insertOrder(ordersSession, o); err != nil {
		log.Printf("❌ Order insert failed: %v", err)
		releaseStock(o)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create order"})
		return
	}

	logSaleMovements(o, adjustments)

	if couponRow != nil {
		coupon.RecordRedemption(*couponRow, userID, o.ID, discount)
	}

	database.RedisClient.Del(context.Background(), "cart:"+userID)

	go func(ord models.Order) {
		if err := utils.SendOrderConfirmation(ord); err != nil {
			log.Printf("⚠️ Confirmation e-mail failed for %s: %v", ord.OrderNumber, err)
		}
	}(o)

	log.Printf("✅ Order created: %s (%s, %.2f %s)", o.OrderNumber, o.PaymentMethod, o.Total, o.Currency)

	resp := gin.H{"success": true, "message": "Order created", "order": o}
	if clientSecret != "" {
		resp["client_secret"] = clientSecret
	}
	c.JSON(http.StatusCreated, resp)
}

func errItemUnavailable(name string) error {
	return fmt.Errorf("item no longer available: %s", name)
}

func loadUserCart(userID string) *models.Cart {
	data, err := database.RedisClient.Get(context.Background(), "cart:"+userID).Result()
	if err != nil || data == "" {
		return nil
	}
	var cart models.Cart
	if json.Unmarshal([]byte(data), &cart) != nil {
		return nil
	}
	return &cart
}

// resolveOrderItems turns cart lines into order item snapshots priced from
// the live catalog. The second return value names the item that failed.
func resolveOrderItems(cartItems []models.CartItem) ([]models.OrderItem, string, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, "", err
	}

	items := make([]models.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		table, keyColumn, rawID := "products", "product_id", ci.ProductID
		if ci.BundleID != "" {
			table, keyColumn, rawID = "bundles", "bundle_id", ci.BundleID
		}

		parsed, err := uuid.Parse(rawID)
		if err != nil {
			return nil, ci.Name, errItemUnavailable(ci.Name)
		}

		var (
			name, sku string
			price     float64
			imageURLs []string
			isActive  bool
		)
		err = session.Query(`SELECT name, sku, price, image_urls, is_active FROM `+table+` WHERE `+keyColumn+` = ?`,
			gocql.UUID(parsed)).Scan(&name, &sku, &price, &imageURLs, &isActive)
		if err != nil || !isActive {
			return nil, ci.Name, errItemUnavailable(ci.Name)
		}

		for _, v := range ci.Variants {
			price += v.PriceAdjustment
		}

		item := models.OrderItem{
			ProductID: ci.ProductID,
			BundleID:  ci.BundleID,
			Name:      name,
			SKU:       sku,
			UnitPrice: price,
			Quantity:  ci.Quantity,
			Variants:  ci.Variants,
		}
		if len(imageURLs) > 0 {
			item.ImageURL = imageURLs[0]
		}
		items = append(items, item)
	}

	return items, "", nil
}

func logSaleMovements(o models.Order, adjustments []stockAdjustment) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return
	}
	for _, adj := range adjustments {
		recordMovement(session, models.StockMovement{
			ID:        gocql.TimeUUID(),
			ProductID: adj.id,
			Type:      "sale",
			Quantity:  adj.quantity,
			PrevStock: adj.prevStock,
			NewStock:  adj.prevStock - adj.quantity,
			Reason:    "Order " + o.OrderNumber,
			OrderID:   &o.ID,
			UserID:    o.UserID,
			CreatedAt: time.Now(),
		})
	}
}
