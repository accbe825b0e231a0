package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre entradas y ventas.
type MovementQueryUseCase struct {
	stockInRepo repository.StockInRepository
	salesRepo   repository.SalesItemRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(stockInRepo repository.StockInRepository, salesRepo repository.SalesItemRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{stockInRepo: stockInRepo, salesRepo: salesRepo}
}

// GetStockIn obtiene una entrada por ID.
func (uc *MovementQueryUseCase) GetStockIn(ctx context.Context, id int64) (*dto.StockInResponse, error) {
	s, err := uc.stockInRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStockInResponse(s), nil
}

// ListStockIns lista entradas; con column y query busca por invoice_no o batch_no.
func (uc *MovementQueryUseCase) ListStockIns(ctx context.Context, column, query string) ([]dto.StockInResponse, error) {
	var (
		list []*entity.StockIn
		err  error
	)
	if column != "" || query != "" {
		if column != entity.StockInColumnInvoiceNo && column != entity.StockInColumnBatchNo {
			return nil, domain.ErrInvalidInput
		}
		list, err = uc.stockInRepo.Search(ctx, column, strings.TrimSpace(query))
	} else {
		list, err = uc.stockInRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return toStockInResponses(list), nil
}

// ListStockInsByItem lista las entradas de un item, más recientes primero.
func (uc *MovementQueryUseCase) ListStockInsByItem(ctx context.Context, itemID int64) ([]dto.StockInResponse, error) {
	list, err := uc.stockInRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toStockInResponses(list), nil
}

// GetSale obtiene una venta por ID.
func (uc *MovementQueryUseCase) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	s, err := uc.salesRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(s)
	return &out, nil
}

// ListSales lista ventas (filtradas por nombre si query no es vacía) con el total del recibo.
func (uc *MovementQueryUseCase) ListSales(ctx context.Context, query string) (*dto.SaleListResponse, error) {
	var (
		list []*entity.SalesItem
		err  error
	)
	if q := strings.TrimSpace(query); q != "" {
		list, err = uc.salesRepo.Search(ctx, q)
	} else {
		list, err = uc.salesRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items:        out,
		Total:        len(out),
		ReceiptTotal: entity.ReceiptTotal(list),
	}, nil
}

func toStockInResponses(list []*entity.StockIn) []dto.StockInResponse {
	out := make([]dto.StockInResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStockInResponse(s))
	}
	return out
}

func toStockInResponse(s *entity.StockIn) *dto.StockInResponse {
	return &dto.StockInResponse{
		ID:         s.ID,
		ItemID:     s.ItemID,
		Quantity:   s.Quantity,
		InvoiceNo:  s.InvoiceNo,
		BatchNo:    s.BatchNo,
		ExpiryDate: s.ExpiryDate,
		CreatedAt:  s.CreatedAt,
	}
}

func toSaleResponse(s *entity.SalesItem) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID,
		ItemID:       s.ItemID,
		ItemName:     s.ItemName,
		Quantity:     s.Quantity,
		CostPrice:    s.CostPrice,
		SellingPrice: s.SellingPrice,
		TotalCost:    s.TotalCost(),
		TotalSelling: s.TotalSelling(),
		TotalProfit:  s.TotalProfit(),
		CreatedAt:    s.CreatedAt,
	}
}
