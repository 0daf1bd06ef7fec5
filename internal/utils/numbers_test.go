package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	n := GenerateOrderNumber(at)
	assert.Regexp(t, regexp.MustCompile(`^DM-250601-[0-9A-F]{6}$`), n)

	// tracking upper-cases the number it receives before the exact-match
	// lookup, so the stored form must already be upper case
	assert.Equal(t, strings.ToUpper(n), n)

	// two calls for the same instant must still differ
	assert.NotEqual(t, n, GenerateOrderNumber(at))
}

func TestGenerateTrackingNumber(t *testing.T) {
	n := GenerateTrackingNumber()
	assert.Regexp(t, regexp.MustCompile(`^DMTRK-[0-9A-F]{10}$`), n)
}

func TestGenerateTransactionID(t *testing.T) {
	id := GenerateTransactionID()
	assert.Regexp(t, regexp.MustCompile(`^txn_[0-9a-f]{16}$`), id)
	assert.NotEqual(t, id, GenerateTransactionID())
}
