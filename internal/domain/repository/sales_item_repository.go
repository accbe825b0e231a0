package repository

import (
	"context"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
)

// SalesItemRepository define el puerto de persistencia para movimientos de venta.
type SalesItemRepository interface {
	Create(ctx context.Context, item *entity.SalesItem) error
	GetByID(ctx context.Context, id int64) (*entity.SalesItem, error)
	List(ctx context.Context) ([]*entity.SalesItem, error)
	Search(ctx context.Context, itemName string) ([]*entity.SalesItem, error)
}
