// Package pricing computes order totals from lines and rate records.
package pricing

import (
	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Total is the rounded line amount.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).Round(2)
}

type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// ComputeTotals sums the lines, applies the additive discount percentage to
// the subtotal and the additive tax percentage to the discounted amount.
// Rates are percentages; empty rate sets mean zero.
func ComputeTotals(lines []Line, discountRates, taxRates []decimal.Decimal, shipping decimal.Decimal) (Totals, error) {
	if shipping.IsNegative() {
		return Totals{}, apperror.Validation("shipping cost cannot be negative")
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			return Totals{}, apperror.Validation("line quantity must be positive")
		}
		if l.UnitPrice.IsNegative() {
			return Totals{}, apperror.Validation("line price cannot be negative")
		}
		subtotal = subtotal.Add(l.Total())
	}

	discountRate, err := sumRates("discount", discountRates)
	if err != nil {
		return Totals{}, err
	}
	if discountRate.GreaterThan(hundred) {
		return Totals{}, apperror.Validation("combined discount %s%% exceeds 100%%", discountRate.String())
	}
	taxRate, err := sumRates("tax", taxRates)
	if err != nil {
		return Totals{}, err
	}

	discountAmount := subtotal.Mul(discountRate).Div(hundred).Round(2)
	taxAmount := subtotal.Sub(discountAmount).Mul(taxRate).Div(hundred).Round(2)
	shipping = shipping.Round(2)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		ShippingCost:   shipping,
		GrandTotal:     subtotal.Sub(discountAmount).Add(taxAmount).Add(shipping),
	}, nil
}

func sumRates(name string, rates []decimal.Decimal) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, r := range rates {
		if r.IsNegative() {
			return decimal.Zero, apperror.Validation("%s rate cannot be negative", name)
		}
		sum = sum.Add(r)
	}
	return sum, nil
}
