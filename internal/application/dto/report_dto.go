package dto

import "github.com/shopspring/decimal"

// SalesReportQuery parámetros de GET /api/reports/sales.
type SalesReportQuery struct {
	Start  string `query:"start" validate:"required,len=10"`
	End    string `query:"end" validate:"required,len=10"`
	Name   string `query:"name"`
	Brand  string `query:"brand"`
	Format string `query:"format" validate:"omitempty,oneof=json pdf"`
}

// SalesReportRow fila agregada del reporte de ventas.
type SalesReportRow struct {
	SaleDate     string          `json:"sale_date"`
	ItemName     string          `json:"item_name"`
	ItemBrand    string          `json:"item_brand"`
	Quantity     int             `json:"quantity"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

// SalesReportResponse reporte completo con totales generales.
type SalesReportResponse struct {
	Start        string           `json:"start"`
	End          string           `json:"end"`
	Rows         []SalesReportRow `json:"rows"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	TotalProfit  decimal.Decimal  `json:"total_profit"`
}
