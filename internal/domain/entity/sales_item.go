package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/domain/inventory"
)

// SalesItem es un movimiento de venta inmutable. ItemName, CostPrice y SellingPrice
// son copias tomadas al momento de la venta.
type SalesItem struct {
	ID           int64
	ItemID       int64
	ItemName     string
	Quantity     int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
}

// TotalCost cantidad × costo unitario.
func (s *SalesItem) TotalCost() decimal.Decimal {
	return inventory.LineTotal(s.Quantity, s.CostPrice)
}

// TotalSelling cantidad × precio unitario.
func (s *SalesItem) TotalSelling() decimal.Decimal {
	return inventory.LineTotal(s.Quantity, s.SellingPrice)
}

// TotalProfit venta - costo.
func (s *SalesItem) TotalProfit() decimal.Decimal {
	return inventory.Profit(s.Quantity, s.CostPrice, s.SellingPrice)
}

// ReceiptTotal suma los totales de venta de un recibo.
func ReceiptTotal(items []*SalesItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalSelling())
	}
	return total
}
