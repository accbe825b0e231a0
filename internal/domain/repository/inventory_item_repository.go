package repository

import (
	"context"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem (DIP).
// GetByID, GetByBarcode, Update, UpdateQuantity y UpdateBarcode devuelven domain.ErrNotFound
// si no existe la fila; Create y Update devuelven domain.ErrDuplicate si (name, brand) o barcode chocan.
type InventoryItemRepository interface {
	// Create inserta el item. Si ID es 0 lo asigna el motor; si no, se respeta.
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	Search(ctx context.Context, name string) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	UpdateBarcode(ctx context.Context, id int64, barcode string) error
	// Delete elimina sin verificar movimientos que lo referencian.
	Delete(ctx context.Context, id int64) error
}
