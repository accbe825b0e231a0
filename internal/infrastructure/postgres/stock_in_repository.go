package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

const stockInColumns = `id, item_id, quantity, invoice_no, batch_no, expiry_date, created_at`

// StockInRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockInRepo struct {
	q     Querier
	table string
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier, table string) *StockInRepo {
	return &StockInRepo{q: q, table: table}
}

// Create persiste una entrada y asigna su ID.
func (r *StockInRepo) Create(ctx context.Context, s *entity.StockIn) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (item_id, quantity, invoice_no, batch_no, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING id, created_at`, r.table)
	err := r.q.QueryRow(ctx, query,
		s.ItemID, s.Quantity, s.InvoiceNo, s.BatchNo, s.ExpiryDate, nullTime(s.CreatedAt),
	).Scan(&s.ID, &s.CreatedAt)
	return mapError("create stock in", err)
}

// GetByID obtiene una entrada por ID.
func (r *StockInRepo) GetByID(ctx context.Context, id int64) (*entity.StockIn, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, stockInColumns, r.table)
	var s entity.StockIn
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ItemID, &s.Quantity, &s.InvoiceNo, &s.BatchNo, &s.ExpiryDate, &s.CreatedAt,
	)
	if err != nil {
		return nil, mapError("get stock in", err)
	}
	return &s, nil
}

// List lista todas las entradas, más recientes primero.
func (r *StockInRepo) List(ctx context.Context) ([]*entity.StockIn, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC, id DESC`, stockInColumns, r.table)
	return r.many(ctx, "list stock ins", query)
}

// ListByItem lista las entradas de un item, más recientes primero.
func (r *StockInRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.StockIn, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE item_id = $1 ORDER BY created_at DESC, id DESC`, stockInColumns, r.table)
	return r.many(ctx, "list stock ins by item", query, itemID)
}

// Search busca por coincidencia parcial en invoice_no o batch_no. Otra columna es domain.ErrInvalidInput.
func (r *StockInRepo) Search(ctx context.Context, column, q string) ([]*entity.StockIn, error) {
	switch column {
	case entity.StockInColumnInvoiceNo, entity.StockInColumnBatchNo:
	default:
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ILIKE $1 ORDER BY created_at DESC, id DESC`,
		stockInColumns, r.table, column)
	return r.many(ctx, "search stock ins", query, likePattern(q))
}

// Delete elimina la entrada. domain.ErrNotFound si no existe.
func (r *StockInRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return mapError("delete stock in", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockInRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.StockIn, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.StockIn
	for rows.Next() {
		var s entity.StockIn
		if err := rows.Scan(&s.ID, &s.ItemID, &s.Quantity, &s.InvoiceNo, &s.BatchNo, &s.ExpiryDate, &s.CreatedAt); err != nil {
			return nil, mapError(op, err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return list, nil
}
