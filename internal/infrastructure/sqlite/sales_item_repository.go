package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.SalesItemRepository = (*SalesItemRepo)(nil)

// SalesItemRepo implementa SalesItemRepository con GORM.
type SalesItemRepo struct {
	db    *gorm.DB
	table string
}

// NewSalesItemRepository construye el adaptador.
func NewSalesItemRepository(db *gorm.DB, table string) *SalesItemRepo {
	return &SalesItemRepo{db: db, table: table}
}

func (r *SalesItemRepo) q(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Create inserta la venta y asigna su ID.
func (r *SalesItemRepo) Create(ctx context.Context, s *entity.SalesItem) error {
	m := &salesItemModel{
		ItemID:       s.ItemID,
		ItemName:     s.ItemName,
		Quantity:     s.Quantity,
		CostPrice:    s.CostPrice,
		SellingPrice: s.SellingPrice,
		CreatedAt:    s.CreatedAt,
	}
	if err := r.q(ctx).Create(m).Error; err != nil {
		return mapError("create sales item", err)
	}
	s.ID = m.ID
	s.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SalesItemRepo) GetByID(ctx context.Context, id int64) (*entity.SalesItem, error) {
	var m salesItemModel
	if err := r.q(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, mapError("get sales item", err)
	}
	return m.toEntity(), nil
}

// List lista las ventas por ID.
func (r *SalesItemRepo) List(ctx context.Context) ([]*entity.SalesItem, error) {
	return r.find(r.q(ctx), "list sales items")
}

// Search lista las ventas cuyo nombre de item contiene itemName.
func (r *SalesItemRepo) Search(ctx context.Context, itemName string) ([]*entity.SalesItem, error) {
	return r.find(r.q(ctx).Where(`item_name LIKE ? ESCAPE '\'`, likePattern(itemName)), "search sales items")
}

func (r *SalesItemRepo) find(q *gorm.DB, op string) ([]*entity.SalesItem, error) {
	var models []salesItemModel
	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, mapError(op, err)
	}
	list := make([]*entity.SalesItem, 0, len(models))
	for i := range models {
		list = append(list, models[i].toEntity())
	}
	return list, nil
}
