package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/pkg/config"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	tables := config.DefaultTables()
	tables.StockIns = "entradas"
	require.NoError(t, Migrate(db, tables))
	return NewStore(db, tables)
}

func newItem(name, brand string, qty int) *entity.InventoryItem {
	return &entity.InventoryItem{
		Name:         name,
		Brand:        brand,
		Quantity:     qty,
		CostPrice:    decimal.RequireFromString("1.20"),
		SellingPrice: decimal.RequireFromString("2.05"),
	}
}

func TestItemRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	items := s.Items()

	item := newItem("Paracetamol", "Genfar", 10)
	exp := "2030-12-31"
	item.ExpiryDate = &exp
	require.NoError(t, items.Create(ctx, item))
	assert.NotZero(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", got.Name)
	assert.True(t, got.SellingPrice.Equal(decimal.RequireFromString("2.05")))
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, exp, *got.ExpiryDate)
	assert.Nil(t, got.Barcode)

	assert.ErrorIs(t, items.Create(ctx, newItem("Paracetamol", "Genfar", 1)), domain.ErrDuplicate)

	withID := newItem("Ibuprofeno", "MK", 3)
	withID.ID = 77
	require.NoError(t, items.Create(ctx, withID))
	assert.Equal(t, int64(77), withID.ID)

	require.NoError(t, items.UpdateBarcode(ctx, item.ID, "7701"))
	byCode, err := items.GetByBarcode(ctx, "7701")
	require.NoError(t, err)
	assert.Equal(t, item.ID, byCode.ID)
	assert.ErrorIs(t, items.UpdateBarcode(ctx, withID.ID, "7701"), domain.ErrDuplicate)

	found, err := items.Search(ctx, "PARA")
	require.NoError(t, err)
	require.Len(t, found, 1)

	got.Name = "Paracetamol 500"
	got.Quantity = 4
	require.NoError(t, items.Update(ctx, got))
	again, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500", again.Name)
	assert.Equal(t, 4, again.Quantity)

	missing := newItem("X", "Y", 0)
	missing.ID = 9999
	assert.ErrorIs(t, items.Update(ctx, missing), domain.ErrNotFound)
	assert.ErrorIs(t, items.UpdateQuantity(ctx, 9999, 1), domain.ErrNotFound)

	require.NoError(t, items.Delete(ctx, item.ID))
	_, err = items.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_LedgerAtomicity(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	item := newItem("Amoxicilina", "MK", 5)
	require.NoError(t, s.Items().Create(ctx, item))

	ledger := inventory.NewMovementUseCase(s, nil)

	stockInID, err := ledger.ApplyStockIn(ctx, inventory.StockInInput{
		ItemID: item.ID, Quantity: 10, InvoiceNo: "FAC-9", BatchNo: "B-1", ExpiryDate: "2031-01-01",
	})
	require.NoError(t, err)

	_, err = ledger.ApplySaleBatch(ctx, []inventory.SaleInput{
		{ItemID: item.ID, Quantity: 10},
		{ItemID: item.ID, Quantity: 10},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := s.Items().GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity, "el lote fallido no deja rastro")

	sales, err := s.Sales().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)

	byBatch, err := s.StockIns().Search(ctx, entity.StockInColumnBatchNo, "b-")
	require.NoError(t, err)
	require.Len(t, byBatch, 1)
	assert.Equal(t, stockInID, byBatch[0].ID)

	_, err = s.StockIns().Search(ctx, "expiry_date", "2031")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, ledger.ReverseStockIn(ctx, stockInID))
	assert.ErrorIs(t, ledger.ReverseStockIn(ctx, stockInID), domain.ErrNotFound)
	got, err = s.Items().GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}

func TestSalesReport(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	para := newItem("Paracetamol", "Genfar", 0)
	gone := newItem("Descontinuado", "Genfar", 0)
	require.NoError(t, s.Items().Create(ctx, para))
	require.NoError(t, s.Items().Create(ctx, gone))

	day := time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC)
	for _, sale := range []*entity.SalesItem{
		{ItemID: para.ID, ItemName: para.Name, Quantity: 2, CostPrice: para.CostPrice, SellingPrice: para.SellingPrice, CreatedAt: day},
		{ItemID: para.ID, ItemName: para.Name, Quantity: 1, CostPrice: para.CostPrice, SellingPrice: decimal.RequireFromString("3.00"), CreatedAt: day.Add(time.Hour)},
		{ItemID: gone.ID, ItemName: gone.Name, Quantity: 9, CostPrice: gone.CostPrice, SellingPrice: gone.SellingPrice, CreatedAt: day},
	} {
		require.NoError(t, s.Sales().Create(ctx, sale))
	}
	require.NoError(t, s.Items().Delete(ctx, gone.ID))

	rows, err := s.Reports().Get(ctx, repository.SalesReportFilter{StartDate: "2024-05-01", EndDate: "2024-05-31"})
	require.NoError(t, err)
	require.Len(t, rows, 2, "las ventas de items eliminados no aparecen")

	assert.Equal(t, "2024-05-11", rows[0].SaleDate.Format("2006-01-02"))
	assert.Equal(t, 1, rows[0].Quantity)
	assert.Equal(t, "2024-05-10", rows[1].SaleDate.Format("2006-01-02"))
	assert.Equal(t, 2, rows[1].Quantity)
	assert.True(t, rows[1].TotalRevenue.Equal(decimal.RequireFromString("4.10")))
	assert.True(t, rows[1].TotalProfit.Equal(decimal.RequireFromString("1.70")))

	rows, err = s.Reports().Get(ctx, repository.SalesReportFilter{StartDate: "2024-05-01", EndDate: "2024-05-31", ItemBrand: "mk"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// El rango se filtra en SQL por día UTC, con límites inclusivos.
	rows, err = s.Reports().Get(ctx, repository.SalesReportFilter{StartDate: "2024-05-10", EndDate: "2024-05-10"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Quantity)

	rows, err = s.Reports().Get(ctx, repository.SalesReportFilter{StartDate: "2024-05-11", EndDate: "2024-05-11"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Quantity)

	rows, err = s.Reports().Get(ctx, repository.SalesReportFilter{StartDate: "2024-05-12", EndDate: "2024-06-30"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	users := setupStore(t).Users()

	u := &entity.User{Username: "admin", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, u))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{Username: "admin", PasswordHash: "x"}), domain.ErrDuplicate)

	u.PasswordHash = "nuevo"
	require.NoError(t, users.Update(ctx, u))
	got, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "nuevo", got.PasswordHash)

	require.NoError(t, users.Delete(ctx, u.ID))
	_, err = users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_RunErrorKinds(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	ledger := inventory.NewMovementUseCase(s, nil)
	in := inventory.StockInInput{ItemID: 999, Quantity: 5, InvoiceNo: "F-1", BatchNo: "L-1", ExpiryDate: "2030-01-31"}

	// El error del ledger pasa sin envolver.
	_, err := ledger.ApplyStockIn(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)

	// Con la conexión cerrada el begin falla y se reporta como ErrStorage.
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = ledger.ApplyStockIn(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
