package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain"
)

func TestApplySaleBatch_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	a := seedItem(t, store, "Paracetamol", 10)
	b := seedItem(t, store, "Ibuprofeno", 2)
	c := seedItem(t, store, "Naproxeno", 10)

	ids, err := uc.ApplySaleBatch(ctx, []inventory.SaleInput{
		{ItemID: a.ID, Quantity: 3},
		{ItemID: b.ID, Quantity: 5},
		{ItemID: c.ID, Quantity: 1},
	})
	require.Error(t, err)
	assert.Nil(t, ids)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, b.ID, stockErr.ItemID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	assert.Equal(t, 10, quantityOf(t, store, a.ID))
	assert.Equal(t, 2, quantityOf(t, store, b.ID))
	assert.Equal(t, 10, quantityOf(t, store, c.ID))
	sales, err := store.Sales().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestApplySaleBatch_SeesEarlierSalesInSameBatch(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	a := seedItem(t, store, "Paracetamol", 5)

	_, err := uc.ApplySaleBatch(ctx, []inventory.SaleInput{
		{ItemID: a.ID, Quantity: 3},
		{ItemID: a.ID, Quantity: 3},
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, quantityOf(t, store, a.ID))
}

func TestApplySaleBatch_Success(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	a := seedItem(t, store, "Paracetamol", 10)
	b := seedItem(t, store, "Ibuprofeno", 10)

	ids, err := uc.ApplySaleBatch(ctx, []inventory.SaleInput{
		{ItemID: a.ID, Quantity: 1},
		{ItemID: b.ID, Quantity: 2},
		{ItemID: a.ID, Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	third, err := store.Sales().GetByID(ctx, ids[2])
	require.NoError(t, err)
	assert.Equal(t, a.ID, third.ItemID)
	assert.Equal(t, 3, third.Quantity)

	assert.Equal(t, 6, quantityOf(t, store, a.ID))
	assert.Equal(t, 8, quantityOf(t, store, b.ID))
}

func TestApplyStockInBatch_RollsBackOnMissingItem(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	a := seedItem(t, store, "Paracetamol", 1)

	ids, err := uc.ApplyStockInBatch(ctx, []inventory.StockInInput{
		{ItemID: a.ID, Quantity: 10, InvoiceNo: "F-9", ExpiryDate: "2030-05-01"},
		{ItemID: 999, Quantity: 10, InvoiceNo: "F-9", ExpiryDate: "2030-05-01"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, ids)
	assert.Equal(t, 1, quantityOf(t, store, a.ID))

	stockIns, err := store.StockIns().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stockIns)
}

func TestApplyStockInBatch_InvalidEntryAbortsBatch(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	a := seedItem(t, store, "Paracetamol", 1)

	_, err := uc.ApplyStockInBatch(ctx, []inventory.StockInInput{
		{ItemID: a.ID, Quantity: 4, ExpiryDate: "2030-05-01"},
		{ItemID: a.ID, Quantity: 4, ExpiryDate: "2030-13-01"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, quantityOf(t, store, a.ID))
}

func TestApplyStockInBatch_Success(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	a := seedItem(t, store, "Paracetamol", 1)
	b := seedItem(t, store, "Ibuprofeno", 0)

	ids, err := uc.ApplyStockInBatch(ctx, []inventory.StockInInput{
		{ItemID: a.ID, Quantity: 4, InvoiceNo: "F-1", BatchNo: "B-1", ExpiryDate: "2030-05-01"},
		{ItemID: b.ID, Quantity: 6, InvoiceNo: "F-1", BatchNo: "B-2", ExpiryDate: "2030-06-01"},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, 5, quantityOf(t, store, a.ID))
	assert.Equal(t, 6, quantityOf(t, store, b.ID))

	byItem, err := store.StockIns().ListByItem(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, byItem, 1)
	assert.Equal(t, ids[1], byItem[0].ID)
}

func TestBatches_EmptyInput(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t)

	ids, err := uc.ApplySaleBatch(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = uc.ApplyStockInBatch(ctx, []inventory.StockInInput{})
	require.NoError(t, err)
	assert.Empty(t, ids)
}
