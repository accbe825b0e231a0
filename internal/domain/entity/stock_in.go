package entity

import "time"

// Columnas por las que se permite buscar entradas de stock.
const (
	StockInColumnInvoiceNo = "invoice_no"
	StockInColumnBatchNo   = "batch_no"
)

// StockIn es una entrada de mercancía inmutable. Eliminarla revierte su efecto sobre la existencia.
type StockIn struct {
	ID         int64
	ItemID     int64
	Quantity   int
	InvoiceNo  string
	BatchNo    string
	ExpiryDate string // YYYY-MM-DD del lote recibido
	CreatedAt  time.Time
}
