package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen del día y del mes en curso más alertas de inventario.
type DashboardSummaryDTO struct {
	DateLabel     string           `json:"date_label"`
	TodaySales    decimal.Decimal  `json:"today_sales"`
	TodayMargin   decimal.Decimal  `json:"today_margin"`
	MonthlySales  decimal.Decimal  `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal  `json:"monthly_margin"`
	TopItems      []TopItemDTO     `json:"top_items"`
	ExpiringSoon  []ExpiryAlertDTO `json:"expiring_soon"`
	Expired       []ExpiryAlertDTO `json:"expired"`
	LowStock      []LowStockDTO    `json:"low_stock"`
}

// TopItemDTO item más vendido del mes.
type TopItemDTO struct {
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ExpiryAlertDTO item vencido o próximo a vencer.
type ExpiryAlertDTO struct {
	ItemID       int64  `json:"item_id"`
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	ExpiryDate   string `json:"expiry_date"`
	DaysToExpiry int    `json:"days_to_expiry"`
	Quantity     int    `json:"quantity"`
}

// LowStockDTO item con existencia igual o menor al umbral.
type LowStockDTO struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Quantity int    `json:"quantity"`
}
