package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
)

// Los precios se guardan como TEXT para conservar el valor decimal exacto.

type itemModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Name         string          `gorm:"not null;uniqueIndex:uq_inventory_item_name_brand"`
	Brand        string          `gorm:"not null;uniqueIndex:uq_inventory_item_name_brand"`
	Quantity     int             `gorm:"not null"`
	CostPrice    decimal.Decimal `gorm:"type:text;not null"`
	SellingPrice decimal.Decimal `gorm:"type:text;not null"`
	ExpiryDate   *string
	Barcode      *string `gorm:"uniqueIndex:uq_inventory_item_barcode"`
	CreatedAt    time.Time
}

type stockInModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	ItemID     int64  `gorm:"not null;index:idx_stock_in_item"`
	Quantity   int    `gorm:"not null"`
	InvoiceNo  string `gorm:"not null"`
	BatchNo    string `gorm:"not null"`
	ExpiryDate string `gorm:"not null"`
	CreatedAt  time.Time
}

type salesItemModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	ItemID       int64           `gorm:"not null;index:idx_sales_item_item"`
	ItemName     string          `gorm:"not null"`
	Quantity     int             `gorm:"not null"`
	CostPrice    decimal.Decimal `gorm:"type:text;not null"`
	SellingPrice decimal.Decimal `gorm:"type:text;not null"`
	CreatedAt    time.Time       `gorm:"index:idx_sales_item_created_at"`
}

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"not null;uniqueIndex:uq_user_username"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func itemToModel(it *entity.InventoryItem) *itemModel {
	return &itemModel{
		ID:           it.ID,
		Name:         it.Name,
		Brand:        it.Brand,
		Quantity:     it.Quantity,
		CostPrice:    it.CostPrice,
		SellingPrice: it.SellingPrice,
		ExpiryDate:   it.ExpiryDate,
		Barcode:      it.Barcode,
		CreatedAt:    it.CreatedAt,
	}
}

func (m *itemModel) toEntity() *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           m.ID,
		Name:         m.Name,
		Brand:        m.Brand,
		Quantity:     m.Quantity,
		CostPrice:    m.CostPrice,
		SellingPrice: m.SellingPrice,
		ExpiryDate:   m.ExpiryDate,
		Barcode:      m.Barcode,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (m *stockInModel) toEntity() *entity.StockIn {
	return &entity.StockIn{
		ID:         m.ID,
		ItemID:     m.ItemID,
		Quantity:   m.Quantity,
		InvoiceNo:  m.InvoiceNo,
		BatchNo:    m.BatchNo,
		ExpiryDate: m.ExpiryDate,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func (m *salesItemModel) toEntity() *entity.SalesItem {
	return &entity.SalesItem{
		ID:           m.ID,
		ItemID:       m.ItemID,
		ItemName:     m.ItemName,
		Quantity:     m.Quantity,
		CostPrice:    m.CostPrice,
		SellingPrice: m.SellingPrice,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
