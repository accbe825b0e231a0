package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items. ID opcional: si viene se respeta.
type CreateItemRequest struct {
	ID           int64           `json:"id,omitempty" validate:"gte=0"`
	Name         string          `json:"name" validate:"required,max=200"`
	Brand        string          `json:"brand" validate:"required,max=200"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ExpiryDate   *string         `json:"expiry_date,omitempty"`
	Barcode      *string         `json:"barcode,omitempty" validate:"omitempty,min=1,max=64"`
}

// BulkCreateItemsRequest body para POST /api/items/bulk (todo o nada).
type BulkCreateItemsRequest struct {
	Items []CreateItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateItemRequest body para PUT /api/items/:id: reemplazo completo de los campos mutables.
type UpdateItemRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Brand        string          `json:"brand" validate:"required,max=200"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ExpiryDate   *string         `json:"expiry_date,omitempty"`
	Barcode      *string         `json:"barcode,omitempty" validate:"omitempty,min=1,max=64"`
}

// UpdateBarcodeRequest body para PUT /api/items/:id/barcode.
type UpdateBarcodeRequest struct {
	Barcode string `json:"barcode" validate:"required,max=64"`
}

// ItemResponse representación de un item de inventario.
type ItemResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ExpiryDate   *string         `json:"expiry_date,omitempty"`
	Barcode      *string         `json:"barcode,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ItemListResponse listado de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// ExpiryResponse estado de vencimiento de un item a la fecha de consulta.
type ExpiryResponse struct {
	ItemID       int64   `json:"item_id"`
	ExpiryDate   *string `json:"expiry_date,omitempty"`
	DaysToExpiry int     `json:"days_to_expiry"`
	Expired      bool    `json:"expired"`
}

// StockInRequest body para POST /api/stock-ins.
type StockInRequest struct {
	ItemID     int64  `json:"item_id" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	InvoiceNo  string `json:"invoice_no" validate:"max=64"`
	BatchNo    string `json:"batch_no" validate:"max=64"`
	ExpiryDate string `json:"expiry_date" validate:"required,len=10"`
}

// StockInBatchRequest body para POST /api/stock-ins/batch.
type StockInBatchRequest struct {
	Items []StockInRequest `json:"items" validate:"required,min=1,dive"`
}

// StockInResponse representación de una entrada de stock.
type StockInResponse struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	Quantity   int       `json:"quantity"`
	InvoiceNo  string    `json:"invoice_no"`
	BatchNo    string    `json:"batch_no"`
	ExpiryDate string    `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaleRequest body para POST /api/sales. Sin precios se usan los del item.
type SaleRequest struct {
	ItemID    int64            `json:"item_id" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// SaleBatchRequest body para POST /api/sales/batch.
type SaleBatchRequest struct {
	Items []SaleRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleResponse representación de un movimiento de venta.
type SaleResponse struct {
	ID           int64           `json:"id"`
	ItemID       int64           `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalSelling decimal.Decimal `json:"total_selling"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SaleListResponse listado de ventas con el total del recibo.
type SaleListResponse struct {
	Items        []SaleResponse  `json:"items"`
	Total        int             `json:"total"`
	ReceiptTotal decimal.Decimal `json:"receipt_total"`
}
