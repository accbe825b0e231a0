package repository

import (
	"context"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
)

// StockInRepository define el puerto de persistencia para entradas de stock.
type StockInRepository interface {
	Create(ctx context.Context, stockIn *entity.StockIn) error
	GetByID(ctx context.Context, id int64) (*entity.StockIn, error)
	List(ctx context.Context) ([]*entity.StockIn, error)
	ListByItem(ctx context.Context, itemID int64) ([]*entity.StockIn, error)
	// Search busca por coincidencia parcial en invoice_no o batch_no.
	Search(ctx context.Context, column, query string) ([]*entity.StockIn, error)
	Delete(ctx context.Context, id int64) error
}
