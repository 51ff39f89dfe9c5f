package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are whole rupees.

func LineTotal(price int64, qty int) int64 {
	if qty <= 0 {
		return 0
	}
	return price * int64(qty)
}

type PricedLine interface {
	UnitPrice() int64
	Units() int
}

func CartTotal[L PricedLine](lines []L) int64 {
	var total int64
	for _, l := range lines {
		total += LineTotal(l.UnitPrice(), l.Units())
	}
	return total
}

// DiscountPercent is the rounded percentage off the list price, or 0 when
// there is no list price above the selling price.
func DiscountPercent(mrp *int64, price int64) int {
	if mrp == nil || *mrp <= 0 || *mrp <= price {
		return 0
	}
	off := decimal.NewFromInt(*mrp - price).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(*mrp)).
		Round(0)
	return int(off.IntPart())
}

func Savings(mrp *int64, price int64, qty int) int64 {
	if mrp == nil || *mrp <= price {
		return 0
	}
	return LineTotal(*mrp-price, qty)
}

func FormatAmount(amount int64) string {
	if amount < 0 {
		return fmt.Sprintf("-₹%d", -amount)
	}
	return fmt.Sprintf("₹%d", amount)
}
