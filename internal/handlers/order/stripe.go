package order

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"
)

//
// POST /api/webhooks/stripe: marks card orders as paid when the
// PaymentIntent succeeds. Replayed events are acknowledged without a second
// update.
//
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unreadable payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("⚠️ Stripe signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event data"})
			return
		}
		handlePaymentSucceeded(c, pi)

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid event data"})
			return
		}
		log.Printf("⚠️ Payment failed for order %s", pi.Metadata["order_number"])
		c.JSON(http.StatusOK, gin.H{"success": true})

	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func handlePaymentSucceeded(c *gin.Context, pi stripe.PaymentIntent) {
	orderID, err := gocql.ParseUUID(pi.Metadata["order_id"])
	if err != nil {
		log.Printf("⚠️ Stripe event %s without order_id metadata", pi.ID)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	o, err := LoadByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if o.PaymentStatus == models.PaymentPaid {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	assignments := "payment_status = ?, transaction_id = ?"
	values := []interface{}{models.PaymentPaid, pi.ID}
	if status.CanTransition(o.Status, status.Processing) {
		assignments += ", status = ?"
		values = append(values, status.Processing)
	}

	if err := setOrderFields(session, o.ID, assignments, values...); err != nil {
		log.Printf("❌ Payment confirmation failed for %s: %v", o.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update order"})
		return
	}

	log.Printf("✅ Payment confirmed: %s (%s)", o.OrderNumber, pi.ID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
