// Package pricing computes order totals from line items and discounts.
//
// The same functions back the derived fields returned by the API and the
// per-item preview shown by the client, so both sides agree to the cent.
// All arithmetic is decimal; rounding happens only in FormatMoney.
package pricing

import (
	"math"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Breakdown is the result of pricing an order
type Breakdown struct {
	Subtotal decimal.Decimal
	// Effective holds the discounted price of each item, by position.
	Effective []decimal.Decimal
	// PreOrderDiscount is the sum of Effective before the order-level discount.
	PreOrderDiscount decimal.Decimal
	DiscountTotal    decimal.Decimal
	Total            decimal.Decimal
}

// Compute prices items under an order-level discount percent.
// Discounts outside [0,100] are not rejected here. NaN and infinite inputs
// count as zero.
func Compute(orderDiscountPercent float64, items []models.OrderItem) Breakdown {
	b := Breakdown{
		Subtotal:         decimal.Zero,
		Effective:        make([]decimal.Decimal, len(items)),
		PreOrderDiscount: decimal.Zero,
	}

	for i, item := range items {
		b.Subtotal = b.Subtotal.Add(lineGross(item))
		b.Effective[i] = effective(item)
		b.PreOrderDiscount = b.PreOrderDiscount.Add(b.Effective[i])
	}

	b.Total = b.PreOrderDiscount.Mul(remaining(fromFloat(orderDiscountPercent)))
	b.DiscountTotal = b.Subtotal.Sub(b.Total)
	return b
}

// EffectivePrice is quantity × unit_price × (1 − discount_percent/100)
func EffectivePrice(item models.OrderItem) float64 {
	return effective(item).InexactFloat64()
}

// Apply fills the derived fields of order from its items and discount.
// DiscountTotal is derived from the float Subtotal and Total so that
// Subtotal - Total == DiscountTotal holds on the wire.
func Apply(order *models.Order) Breakdown {
	b := Compute(order.OrderDiscountPercent, order.Items)
	order.Subtotal = b.Subtotal.InexactFloat64()
	order.Total = b.Total.InexactFloat64()
	order.DiscountTotal = order.Subtotal - order.Total
	return b
}

// FormatMoney renders an amount with two decimal places, for display only
func FormatMoney(amount float64) string {
	return fromFloat(amount).StringFixed(2)
}

func lineGross(item models.OrderItem) decimal.Decimal {
	return decimal.NewFromInt(int64(item.Quantity)).Mul(fromFloat(item.UnitPrice))
}

func effective(item models.OrderItem) decimal.Decimal {
	return lineGross(item).Mul(remaining(fromFloat(item.DiscountPercent)))
}

// remaining is the fraction left after taking percent off
func remaining(percent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(percent.Div(hundred))
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
