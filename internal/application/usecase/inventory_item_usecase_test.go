package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func newItemUseCase(t *testing.T) (*InventoryItemUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewInventoryItemUseCase(store.Items(), store), store
}

func itemReq(name, brand string) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Name:         name,
		Brand:        brand,
		Quantity:     10,
		CostPrice:    decimal.RequireFromString("1.50"),
		SellingPrice: decimal.RequireFromString("2.75"),
		ExpiryDate:   strPtr("2030-06-30"),
	}
}

func TestInventoryItem_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)

	created, err := uc.Create(ctx, itemReq("Paracetamol", "Genfar"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", got.Name)
	assert.Equal(t, 10, got.Quantity)
	assert.True(t, got.SellingPrice.Equal(decimal.RequireFromString("2.75")))
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, "2030-06-30", *got.ExpiryDate)
}

func TestInventoryItem_CreateHonorsID(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)

	req := itemReq("Ibuprofeno", "MK")
	req.ID = 500
	created, err := uc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(500), created.ID)

	dup := itemReq("Otro", "MK")
	dup.ID = 500
	_, err = uc.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInventoryItem_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)

	cases := map[string]func(r *dto.CreateItemRequest){
		"precio negativo":   func(r *dto.CreateItemRequest) { r.CostPrice = decimal.RequireFromString("-1") },
		"fecha inválida":    func(r *dto.CreateItemRequest) { r.ExpiryDate = strPtr("2023-02-29") },
		"sin nombre":        func(r *dto.CreateItemRequest) { r.Name = "  " },
		"cantidad negativa": func(r *dto.CreateItemRequest) { r.Quantity = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := itemReq("Paracetamol", "Genfar")
			mutate(&req)
			_, err := uc.Create(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestInventoryItem_DuplicateNameBrand(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)

	_, err := uc.Create(ctx, itemReq("Paracetamol", "Genfar"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, itemReq("Paracetamol", "Genfar"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, itemReq("Paracetamol", "MK"))
	assert.NoError(t, err)
}

func TestInventoryItem_CreateBulkAllOrNothing(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)

	ids, err := uc.CreateBulk(ctx, []dto.CreateItemRequest{
		itemReq("Paracetamol", "Genfar"),
		itemReq("Ibuprofeno", "MK"),
	})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = uc.CreateBulk(ctx, []dto.CreateItemRequest{
		itemReq("Loratadina", "Genfar"),
		itemReq("Paracetamol", "Genfar"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total, "el lote fallido no deja items a medias")
}

func TestInventoryItem_SearchAndBarcode(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)

	a, err := uc.Create(ctx, itemReq("Paracetamol", "Genfar"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, itemReq("Ibuprofeno", "MK"))
	require.NoError(t, err)

	found, err := uc.List(ctx, "paraceta")
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, a.ID, found.Items[0].ID)

	require.NoError(t, uc.UpdateBarcode(ctx, a.ID, "7702057000012"))
	byCode, err := uc.GetByBarcode(ctx, "7702057000012")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byCode.ID)

	assert.ErrorIs(t, uc.UpdateBarcode(ctx, 9999, "123"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.UpdateBarcode(ctx, a.ID, " "), domain.ErrInvalidInput)
}

func TestInventoryItem_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)

	created, err := uc.Create(ctx, itemReq("Paracetamol", "Genfar"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{
		Name:         "Paracetamol 500mg",
		Brand:        "Genfar",
		Quantity:     7,
		CostPrice:    decimal.RequireFromString("1.60"),
		SellingPrice: decimal.RequireFromString("3.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", updated.Name)
	assert.Equal(t, 7, updated.Quantity)
	assert.Nil(t, updated.ExpiryDate)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = uc.Update(ctx, 9999, dto.UpdateItemRequest{Name: "x", Brand: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryItem_Expiry(t *testing.T) {
	ctx := context.Background()
	uc, _ := newItemUseCase(t)
	uc.now = func() time.Time { return time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC) }

	req := itemReq("Amoxicilina", "MK")
	req.ExpiryDate = strPtr("2024-01-31")
	item, err := uc.Create(ctx, req)
	require.NoError(t, err)

	exp, err := uc.Expiry(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, exp.DaysToExpiry)
	assert.False(t, exp.Expired)

	noDate := itemReq("Suero", "Baxter")
	noDate.ExpiryDate = nil
	item2, err := uc.Create(ctx, noDate)
	require.NoError(t, err)
	exp, err = uc.Expiry(ctx, item2.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, exp.DaysToExpiry)
	assert.True(t, exp.Expired)
}
