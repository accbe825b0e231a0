package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo implementa StockInRepository con GORM.
type StockInRepo struct {
	db    *gorm.DB
	table string
}

// NewStockInRepository construye el adaptador.
func NewStockInRepository(db *gorm.DB, table string) *StockInRepo {
	return &StockInRepo{db: db, table: table}
}

func (r *StockInRepo) q(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Create inserta la entrada y asigna su ID.
func (r *StockInRepo) Create(ctx context.Context, s *entity.StockIn) error {
	m := &stockInModel{
		ItemID:     s.ItemID,
		Quantity:   s.Quantity,
		InvoiceNo:  s.InvoiceNo,
		BatchNo:    s.BatchNo,
		ExpiryDate: s.ExpiryDate,
		CreatedAt:  s.CreatedAt,
	}
	if err := r.q(ctx).Create(m).Error; err != nil {
		return mapError("create stock in", err)
	}
	s.ID = m.ID
	s.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *StockInRepo) GetByID(ctx context.Context, id int64) (*entity.StockIn, error) {
	var m stockInModel
	if err := r.q(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, mapError("get stock in", err)
	}
	return m.toEntity(), nil
}

// List lista las entradas, más recientes primero.
func (r *StockInRepo) List(ctx context.Context) ([]*entity.StockIn, error) {
	return r.find(r.q(ctx), "list stock ins")
}

// ListByItem lista las entradas de un item, más recientes primero.
func (r *StockInRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.StockIn, error) {
	return r.find(r.q(ctx).Where("item_id = ?", itemID), "list stock ins by item")
}

// Search busca por coincidencia parcial en invoice_no o batch_no.
func (r *StockInRepo) Search(ctx context.Context, column, query string) ([]*entity.StockIn, error) {
	switch column {
	case entity.StockInColumnInvoiceNo, entity.StockInColumnBatchNo:
	default:
		return nil, domain.ErrInvalidInput
	}
	return r.find(r.q(ctx).Where(column+` LIKE ? ESCAPE '\'`, likePattern(query)), "search stock ins")
}

// Delete elimina la entrada. domain.ErrNotFound si no existe.
func (r *StockInRepo) Delete(ctx context.Context, id int64) error {
	res := r.q(ctx).Where("id = ?", id).Delete(&stockInModel{})
	if res.Error != nil {
		return mapError("delete stock in", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockInRepo) find(q *gorm.DB, op string) ([]*entity.StockIn, error) {
	var models []stockInModel
	if err := q.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, mapError(op, err)
	}
	list := make([]*entity.StockIn, 0, len(models))
	for i := range models {
		list = append(list, models[i].toEntity())
	}
	return list, nil
}
