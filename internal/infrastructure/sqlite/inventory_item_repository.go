package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementa InventoryItemRepository con GORM (usable con db o tx).
type InventoryItemRepo struct {
	db    *gorm.DB
	table string
}

// NewInventoryItemRepository construye el adaptador.
func NewInventoryItemRepository(db *gorm.DB, table string) *InventoryItemRepo {
	return &InventoryItemRepo{db: db, table: table}
}

func (r *InventoryItemRepo) q(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Create inserta el item; si ID viene informado se respeta.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	m := itemToModel(item)
	if err := r.q(ctx).Create(m).Error; err != nil {
		return mapError("insert inventory item", err)
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// GetByID obtiene un item por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	var m itemModel
	if err := r.q(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, mapError("get inventory item", err)
	}
	return m.toEntity(), nil
}

// GetByBarcode obtiene un item por código de barras.
func (r *InventoryItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.InventoryItem, error) {
	var m itemModel
	if err := r.q(ctx).Where("barcode = ?", barcode).Take(&m).Error; err != nil {
		return nil, mapError("get inventory item by barcode", err)
	}
	return m.toEntity(), nil
}

// List lista todos los items ordenados por ID.
func (r *InventoryItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.find(r.q(ctx).Order("id"), "list inventory items")
}

// Search lista los items cuyo nombre contiene name.
func (r *InventoryItemRepo) Search(ctx context.Context, name string) ([]*entity.InventoryItem, error) {
	return r.find(r.q(ctx).Where(`name LIKE ? ESCAPE '\'`, likePattern(name)).Order("id"), "search inventory items")
}

func (r *InventoryItemRepo) find(q *gorm.DB, op string) ([]*entity.InventoryItem, error) {
	var models []itemModel
	if err := q.Find(&models).Error; err != nil {
		return nil, mapError(op, err)
	}
	list := make([]*entity.InventoryItem, 0, len(models))
	for i := range models {
		list = append(list, models[i].toEntity())
	}
	return list, nil
}

// Update reemplaza los campos mutables; CreatedAt se conserva.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	res := r.q(ctx).Where("id = ?", item.ID).Updates(map[string]any{
		"name":          item.Name,
		"brand":         item.Brand,
		"quantity":      item.Quantity,
		"cost_price":    item.CostPrice,
		"selling_price": item.SellingPrice,
		"expiry_date":   item.ExpiryDate,
		"barcode":       item.Barcode,
	})
	return r.affected(res, "update inventory item")
}

// UpdateQuantity fija la existencia del item.
func (r *InventoryItemRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return r.affected(r.q(ctx).Where("id = ?", id).Update("quantity", quantity), "update inventory quantity")
}

// UpdateBarcode asigna el código de barras.
func (r *InventoryItemRepo) UpdateBarcode(ctx context.Context, id int64, barcode string) error {
	return r.affected(r.q(ctx).Where("id = ?", id).Update("barcode", barcode), "update inventory barcode")
}

// Delete elimina el item sin tocar sus movimientos.
func (r *InventoryItemRepo) Delete(ctx context.Context, id int64) error {
	return mapError("delete inventory item", r.q(ctx).Where("id = ?", id).Delete(&itemModel{}).Error)
}

func (r *InventoryItemRepo) affected(res *gorm.DB, op string) error {
	if res.Error != nil {
		return mapError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
