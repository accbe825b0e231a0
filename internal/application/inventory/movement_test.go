package inventory_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/internal/infrastructure/memory"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newLedger(t *testing.T) (*inventory.MovementUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return inventory.NewMovementUseCase(store, nil), store
}

func seedItem(t *testing.T, store *memory.Store, name string, qty int) *entity.InventoryItem {
	t.Helper()
	item := &entity.InventoryItem{
		Name:         name,
		Brand:        "Genfar",
		Quantity:     qty,
		CostPrice:    decimal.RequireFromString("1.20"),
		SellingPrice: decimal.RequireFromString("2.00"),
	}
	require.NoError(t, store.Items().Create(context.Background(), item))
	return item
}

func quantityOf(t *testing.T, store *memory.Store, id int64) int {
	t.Helper()
	item, err := store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	return item.Quantity
}

func TestLedger_EndToEnd(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	item := seedItem(t, store, "Paracetamol", 100)

	stockInID, err := uc.ApplyStockIn(ctx, inventory.StockInInput{
		ItemID: item.ID, Quantity: 100, InvoiceNo: "12345", BatchNo: "L-01", ExpiryDate: "2030-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 200, quantityOf(t, store, item.ID))

	saleID, err := uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, 150, quantityOf(t, store, item.ID))

	sale, err := store.Sales().GetByID(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, 50, sale.Quantity)
	assert.Equal(t, "Paracetamol", sale.ItemName)
	assert.True(t, sale.CostPrice.Equal(item.CostPrice), "sin precio explícito se usa el costo del item")
	assert.True(t, sale.SellingPrice.Equal(item.SellingPrice))

	require.NoError(t, uc.ReverseStockIn(ctx, stockInID))
	assert.Equal(t, 50, quantityOf(t, store, item.ID))

	_, err = store.StockIns().GetByID(ctx, stockInID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplySale_UsesExplicitPrices(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	item := seedItem(t, store, "Ibuprofeno", 10)

	id, err := uc.ApplySale(ctx, inventory.SaleInput{
		ItemID: item.ID, Quantity: 2, UnitCost: dec("0.80"), UnitPrice: dec("1.50"),
	})
	require.NoError(t, err)

	sale, err := store.Sales().GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, sale.CostPrice.Equal(*dec("0.80")))
	assert.True(t, sale.SellingPrice.Equal(*dec("1.50")))
	assert.True(t, sale.TotalProfit().Equal(*dec("1.40")))
}

func TestApplySale_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	item := seedItem(t, store, "Amoxicilina", 5)

	_, err := uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: 6})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, item.ID, stockErr.ItemID)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	assert.Equal(t, 5, quantityOf(t, store, item.ID))
	sales, err := store.Sales().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestApplySale_ExactStockAllowed(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	item := seedItem(t, store, "Loratadina", 5)

	_, err := uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, quantityOf(t, store, item.ID))
}

func TestMovements_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newLedger(t)

	_, err := uc.ApplyStockIn(ctx, inventory.StockInInput{ItemID: 99, Quantity: 1, ExpiryDate: "2030-01-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ApplySale(ctx, inventory.SaleInput{ItemID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.ReverseStockIn(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovements_InvalidInput(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	item := seedItem(t, store, "Omeprazol", 10)

	cases := []struct {
		name string
		run  func() error
	}{
		{"stock-in cantidad cero", func() error {
			_, err := uc.ApplyStockIn(ctx, inventory.StockInInput{ItemID: item.ID, Quantity: 0, ExpiryDate: "2030-01-01"})
			return err
		}},
		{"stock-in fecha inválida", func() error {
			_, err := uc.ApplyStockIn(ctx, inventory.StockInInput{ItemID: item.ID, Quantity: 1, ExpiryDate: "2021-02-29"})
			return err
		}},
		{"venta cantidad negativa", func() error {
			_, err := uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: -1})
			return err
		}},
		{"venta precio negativo", func() error {
			_, err := uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: 1, UnitPrice: dec("-1")})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 10, quantityOf(t, store, item.ID))
}

func TestReverseStockIn_CanDriveBalanceNegative(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	item := seedItem(t, store, "Metformina", 0)

	stockInID, err := uc.ApplyStockIn(ctx, inventory.StockInInput{ItemID: item.ID, Quantity: 10, ExpiryDate: "2030-01-01"})
	require.NoError(t, err)
	_, err = uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: 8})
	require.NoError(t, err)

	require.NoError(t, uc.ReverseStockIn(ctx, stockInID))
	assert.Equal(t, -8, quantityOf(t, store, item.ID))
}

// failingRunner envuelve el Store y hace fallar UpdateQuantity dentro de la transacción.
type failingRunner struct {
	store *memory.Store
	err   error
}

type failingItemRepo struct {
	repository.InventoryItemRepository
	err error
}

func (r failingItemRepo) UpdateQuantity(context.Context, int64, int) error { return r.err }

func (f failingRunner) Run(ctx context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockInRepository,
	repository.SalesItemRepository,
) error) error {
	return f.store.Run(ctx, func(
		items repository.InventoryItemRepository,
		stockIns repository.StockInRepository,
		sales repository.SalesItemRepository,
	) error {
		return fn(failingItemRepo{InventoryItemRepository: items, err: f.err}, stockIns, sales)
	})
}

func TestMovements_BalanceWriteFailureDiscardsMovement(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	item := seedItem(t, store, "Losartan", 10)
	boom := domain.StorageError("update quantity", errors.New("disk full"))
	uc := inventory.NewMovementUseCase(failingRunner{store: store, err: boom}, nil)

	_, err := uc.ApplyStockIn(ctx, inventory.StockInInput{ItemID: item.ID, Quantity: 5, ExpiryDate: "2030-01-01"})
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrStorage)

	stockIns, err := store.StockIns().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stockIns)
	sales, err := store.Sales().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Equal(t, 10, quantityOf(t, store, item.ID))
}

func TestLedger_InvariantHoldsForEveryPrefix(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	const initial = 20
	item := seedItem(t, store, "Salbutamol", initial)

	rng := rand.New(rand.NewSource(7))
	var committedStockIns []int64
	stockInQty := map[int64]int{}
	sumIn, sumSold, sumReversed := 0, 0, 0

	for step := 0; step < 200; step++ {
		qty := rng.Intn(15) + 1
		switch op := rng.Intn(3); {
		case op == 0:
			id, err := uc.ApplyStockIn(ctx, inventory.StockInInput{
				ItemID: item.ID, Quantity: qty, InvoiceNo: "F-1", ExpiryDate: "2031-03-15",
			})
			require.NoError(t, err)
			committedStockIns = append(committedStockIns, id)
			stockInQty[id] = qty
			sumIn += qty
		case op == 1:
			before := quantityOf(t, store, item.ID)
			_, err := uc.ApplySale(ctx, inventory.SaleInput{ItemID: item.ID, Quantity: qty})
			if qty > before {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
			} else {
				require.NoError(t, err)
				sumSold += qty
			}
		case op == 2 && len(committedStockIns) > 0:
			idx := rng.Intn(len(committedStockIns))
			id := committedStockIns[idx]
			committedStockIns = append(committedStockIns[:idx], committedStockIns[idx+1:]...)
			require.NoError(t, uc.ReverseStockIn(ctx, id))
			sumReversed += stockInQty[id]
		}
		assert.Equal(t, initial+sumIn-sumSold-sumReversed, quantityOf(t, store, item.ID), "paso %d", step)
	}
}

func TestApplyStockIn_StampsCreatedAt(t *testing.T) {
	ctx := context.Background()
	uc, store := newLedger(t)
	item := seedItem(t, store, "Cetirizina", 1)

	before := time.Now().UTC().Add(-time.Second)
	id, err := uc.ApplyStockIn(ctx, inventory.StockInInput{ItemID: item.ID, Quantity: 1, ExpiryDate: "2030-01-01"})
	require.NoError(t, err)

	s, err := store.StockIns().GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, s.CreatedAt.After(before))
	assert.Equal(t, "2030-01-01", s.ExpiryDate)
}
