package pricing

// Storefront pricing rules. Amounts are in SAR.
const (
	Currency              = "SAR"
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 50.0
	TaxRate               = 0.15 // VAT, applied on subtotal minus discount
)

// ShippingCost returns the flat fee, waived above the free-shipping threshold.
func ShippingCost(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// TaxAmount computes VAT on the discounted subtotal.
func TaxAmount(subtotal, discount float64) float64 {
	taxable := subtotal - discount
	if taxable < 0 {
		taxable = 0
	}
	return round2(taxable * TaxRate)
}

// OrderTotal is the single place the order equation lives:
// total = subtotal - discount + shipping + tax.
func OrderTotal(subtotal, discount, shipping, tax float64) float64 {
	return round2(subtotal - discount + shipping + tax)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// Round2 rounds a monetary amount to cents.
func Round2(v float64) float64 { return round2(v) }
