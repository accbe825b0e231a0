package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport fila agregada por (fecha, nombre, marca). Solo lectura.
type SalesReport struct {
	SaleDate     time.Time
	ItemName     string
	ItemBrand    string
	Quantity     int
	TotalCost    decimal.Decimal
	TotalRevenue decimal.Decimal
	TotalProfit  decimal.Decimal
}
