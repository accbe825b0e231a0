package inventory

import (
	"context"

	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y el error se propaga sin cambios; si no, Commit.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		stockInRepo repository.StockInRepository,
		salesRepo repository.SalesItemRepository,
	) error) error
}
