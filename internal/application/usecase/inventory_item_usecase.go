package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	domaininv "github.com/jhoicas/epharma-api/internal/domain/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

// InventoryItemUseCase casos de uso CRUD para items. Quantity cambia normalmente vía movimientos;
// aquí solo se admite como valor inicial o edición directa.
type InventoryItemUseCase struct {
	repo     repository.InventoryItemRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewInventoryItemUseCase construye el caso de uso.
func NewInventoryItemUseCase(repo repository.InventoryItemRepository, txRunner inventory.TxRunner) *InventoryItemUseCase {
	return &InventoryItemUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

// Create crea un item. domain.ErrDuplicate si (name, brand) o barcode ya existen.
func (uc *InventoryItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item, err := itemFromCreate(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// CreateBulk inserta varios items en una sola transacción; cualquier fallo revierte todos.
func (uc *InventoryItemUseCase) CreateBulk(ctx context.Context, in []dto.CreateItemRequest) ([]int64, error) {
	items := make([]*entity.InventoryItem, 0, len(in))
	for _, req := range in {
		item, err := itemFromCreate(req)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	ids := make([]int64, 0, len(items))
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockInRepository,
		_ repository.SalesItemRepository,
	) error {
		for _, item := range items {
			if err := itemRepo.Create(ctx, item); err != nil {
				return err
			}
			ids = append(ids, item.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetByID obtiene un item por ID.
func (uc *InventoryItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByBarcode obtiene un item por código de barras.
func (uc *InventoryItemUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista todos los items; con query no vacía filtra por nombre.
func (uc *InventoryItemUseCase) List(ctx context.Context, query string) (*dto.ItemListResponse, error) {
	var (
		list []*entity.InventoryItem
		err  error
	)
	if q := strings.TrimSpace(query); q != "" {
		list, err = uc.repo.Search(ctx, q)
	} else {
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: out, Total: len(out)}, nil
}

// Update reemplaza los campos mutables. domain.ErrNotFound si el id no existe.
func (uc *InventoryItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := itemFromCreate(dto.CreateItemRequest{
		ID:           id,
		Name:         in.Name,
		Brand:        in.Brand,
		Quantity:     in.Quantity,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		ExpiryDate:   in.ExpiryDate,
		Barcode:      in.Barcode,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// UpdateBarcode asigna el código de barras de un item existente.
func (uc *InventoryItemUseCase) UpdateBarcode(ctx context.Context, id int64, barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.UpdateBarcode(ctx, id, barcode)
}

// Delete elimina el item. Los movimientos históricos que lo referencian se conservan.
func (uc *InventoryItemUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// Expiry calcula el estado de vencimiento del item a la fecha actual.
func (uc *InventoryItemUseCase) Expiry(ctx context.Context, id int64) (*dto.ExpiryResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &dto.ExpiryResponse{
		ItemID:       item.ID,
		ExpiryDate:   item.ExpiryDate,
		DaysToExpiry: item.DaysToExpiry(now),
		Expired:      item.IsExpired(now),
	}, nil
}

func itemFromCreate(in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	brand := strings.TrimSpace(in.Brand)
	if name == "" || brand == "" || in.ID < 0 || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.InventoryItem{
		ID:           in.ID,
		Name:         name,
		Brand:        brand,
		Quantity:     in.Quantity,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
	}
	if in.ExpiryDate != nil && strings.TrimSpace(*in.ExpiryDate) != "" {
		exp := strings.TrimSpace(*in.ExpiryDate)
		if !domaininv.ValidateExpiryDate(exp) {
			return nil, domain.ErrInvalidInput
		}
		item.ExpiryDate = &exp
	}
	if in.Barcode != nil && strings.TrimSpace(*in.Barcode) != "" {
		bc := strings.TrimSpace(*in.Barcode)
		item.Barcode = &bc
	}
	return item, nil
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
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
