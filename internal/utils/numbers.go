package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateOrderNumber builds a customer-facing order number, e.g. DM-250601-3FA9C2.
// The suffix is upper case so the stored number survives the case
// normalization tracking lookups apply to user input.
func GenerateOrderNumber(at time.Time) string {
	b := make([]byte, 3)
	rand.Read(b)
	return fmt.Sprintf("DM-%s-%s", at.Format("060102"), strings.ToUpper(hex.EncodeToString(b)))
}

// GenerateTrackingNumber builds a shipment tracking number, e.g. DMTRK-8A04F21B9C.
func GenerateTrackingNumber() string {
	b := make([]byte, 5)
	rand.Read(b)
	return "DMTRK-" + strings.ToUpper(hex.EncodeToString(b))
}

// GenerateTransactionID builds a synthetic transaction id for pre-confirmed
// payment methods that never touch a gateway.
func GenerateTransactionID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "txn_" + hex.EncodeToString(b)
}
