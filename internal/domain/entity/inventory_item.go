package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/domain/inventory"
)

// InventoryItem representa un producto en existencia. (Name, Brand) es única;
// Barcode es única cuando está presente. Quantity solo cambia vía movimientos
// (entradas y ventas) o edición directa.
type InventoryItem struct {
	ID           int64
	Name         string          // nombre genérico
	Brand        string          // marca comercial
	Quantity     int             // existencias; nunca negativa por invariante
	CostPrice    decimal.Decimal // precio de costo
	SellingPrice decimal.Decimal // precio de venta
	ExpiryDate   *string         // YYYY-MM-DD, opcional
	Barcode      *string         // opcional
	CreatedAt    time.Time       // asignado al insertar, inmutable
}

// DaysToExpiry días hasta el vencimiento; -1 si no tiene fecha o no es válida.
func (i *InventoryItem) DaysToExpiry(now time.Time) int {
	if i.ExpiryDate == nil {
		return -1
	}
	return inventory.DaysToExpiry(*i.ExpiryDate, now)
}

// IsExpired es verdadero si vence hoy, ya venció o la fecha no es válida.
func (i *InventoryItem) IsExpired(now time.Time) bool {
	return i.DaysToExpiry(now) <= 0
}
