package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.SalesItemRepository = (*SalesItemRepo)(nil)

const salesColumns = `id, item_id, item_name, quantity, cost_price, selling_price, created_at`

// SalesItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type SalesItemRepo struct {
	q     Querier
	table string
}

// NewSalesItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesItemRepository(q Querier, table string) *SalesItemRepo {
	return &SalesItemRepo{q: q, table: table}
}

// Create persiste una venta y asigna su ID.
func (r *SalesItemRepo) Create(ctx context.Context, s *entity.SalesItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (item_id, item_name, quantity, cost_price, selling_price, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING id, created_at`, r.table)
	err := r.q.QueryRow(ctx, query,
		s.ItemID, s.ItemName, s.Quantity, s.CostPrice, s.SellingPrice, nullTime(s.CreatedAt),
	).Scan(&s.ID, &s.CreatedAt)
	return mapError("create sales item", err)
}

// GetByID obtiene una venta por ID.
func (r *SalesItemRepo) GetByID(ctx context.Context, id int64) (*entity.SalesItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, salesColumns, r.table)
	var s entity.SalesItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ItemID, &s.ItemName, &s.Quantity, &s.CostPrice, &s.SellingPrice, &s.CreatedAt,
	)
	if err != nil {
		return nil, mapError("get sales item", err)
	}
	return &s, nil
}

// List lista todas las ventas por ID.
func (r *SalesItemRepo) List(ctx context.Context) ([]*entity.SalesItem, error) {
	return r.many(ctx, "list sales items", fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, salesColumns, r.table))
}

// Search lista las ventas cuyo nombre de item contiene itemName.
func (r *SalesItemRepo) Search(ctx context.Context, itemName string) ([]*entity.SalesItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE item_name ILIKE $1 ORDER BY id`, salesColumns, r.table)
	return r.many(ctx, "search sales items", query, likePattern(itemName))
}

func (r *SalesItemRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.SalesItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.SalesItem
	for rows.Next() {
		var s entity.SalesItem
		if err := rows.Scan(&s.ID, &s.ItemID, &s.ItemName, &s.Quantity, &s.CostPrice, &s.SellingPrice, &s.CreatedAt); err != nil {
			return nil, mapError(op, err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return list, nil
}

// nullTime devuelve nil para el instante cero, así el motor aplica su default.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
