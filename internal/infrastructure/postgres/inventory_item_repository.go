package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, name, brand, quantity, cost_price, selling_price, expiry_date, barcode, created_at`

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q     Querier
	table string
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier, table string) *InventoryItemRepo {
	return &InventoryItemRepo{q: q, table: table}
}

// Create persiste un item. Si trae ID se respeta y se avanza la secuencia para no chocar luego.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	var err error
	if item.ID != 0 {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, name, brand, quantity, cost_price, selling_price, expiry_date, barcode)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at`, r.table)
		err = r.q.QueryRow(ctx, query,
			item.ID, item.Name, item.Brand, item.Quantity, item.CostPrice, item.SellingPrice,
			item.ExpiryDate, item.Barcode,
		).Scan(&item.CreatedAt)
		if err == nil {
			_, err = r.q.Exec(ctx, fmt.Sprintf(
				`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT MAX(id) FROM %[1]s))`, r.table))
		}
	} else {
		query := fmt.Sprintf(`
			INSERT INTO %s (name, brand, quantity, cost_price, selling_price, expiry_date, barcode)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`, r.table)
		err = r.q.QueryRow(ctx, query,
			item.Name, item.Brand, item.Quantity, item.CostPrice, item.SellingPrice,
			item.ExpiryDate, item.Barcode,
		).Scan(&item.ID, &item.CreatedAt)
	}
	return mapError("insert inventory item", err)
}

// GetByID obtiene un item por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, itemColumns, r.table)
	return r.one(ctx, "get inventory item", query, id)
}

// GetByBarcode obtiene un item por código de barras.
func (r *InventoryItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE barcode = $1`, itemColumns, r.table)
	return r.one(ctx, "get inventory item by barcode", query, barcode)
}

// List lista todos los items ordenados por ID.
func (r *InventoryItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, itemColumns, r.table)
	return r.many(ctx, "list inventory items", query)
}

// Search lista los items cuyo nombre contiene name (sin distinguir mayúsculas).
func (r *InventoryItemRepo) Search(ctx context.Context, name string) ([]*entity.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE name ILIKE $1 ORDER BY id`, itemColumns, r.table)
	return r.many(ctx, "search inventory items", query, likePattern(name))
}

// Update reemplaza los campos mutables. CreatedAt no se toca.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, brand = $3, quantity = $4, cost_price = $5, selling_price = $6,
			expiry_date = $7, barcode = $8
		WHERE id = $1`, r.table)
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Brand, item.Quantity, item.CostPrice, item.SellingPrice,
		item.ExpiryDate, item.Barcode,
	)
	if err != nil {
		return mapError("update inventory item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la existencia (usado por el motor de movimientos).
func (r *InventoryItemRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	cmd, err := r.q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET quantity = $2 WHERE id = $1`, r.table), id, quantity)
	if err != nil {
		return mapError("update inventory quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateBarcode asigna el código de barras.
func (r *InventoryItemRepo) UpdateBarcode(ctx context.Context, id int64, barcode string) error {
	cmd, err := r.q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET barcode = $2 WHERE id = $1`, r.table), id, barcode)
	if err != nil {
		return mapError("update inventory barcode", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el item; las entradas y ventas que lo referencian se conservan.
func (r *InventoryItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	return mapError("delete inventory item", err)
}

func (r *InventoryItemRepo) one(ctx context.Context, op, query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Brand, &it.Quantity, &it.CostPrice, &it.SellingPrice,
		&it.ExpiryDate, &it.Barcode, &it.CreatedAt,
	)
	if err != nil {
		return nil, mapError(op, err)
	}
	return &it, nil
}

func (r *InventoryItemRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Brand, &it.Quantity, &it.CostPrice, &it.SellingPrice,
			&it.ExpiryDate, &it.Barcode, &it.CreatedAt,
		); err != nil {
			return nil, mapError(op, err)
		}
		list = append(list, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return list, nil
}

