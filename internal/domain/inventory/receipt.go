package inventory

import "github.com/shopspring/decimal"

// LineTotal = cantidad × precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Profit = total de venta - total de costo.
func Profit(quantity int, unitCost, unitPrice decimal.Decimal) decimal.Decimal {
	return LineTotal(quantity, unitPrice).Sub(LineTotal(quantity, unitCost))
}
