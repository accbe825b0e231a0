package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/pkg/config"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	tables config.TablesConfig
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, tables config.TablesConfig) *TxRunner {
	return &TxRunner{pool: pool, tables: tables}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	stockInRepo repository.StockInRepository,
	salesRepo repository.SalesItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.StorageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewInventoryItemRepository(tx, r.tables.InventoryItems)
	stockInRepo := NewStockInRepository(tx, r.tables.StockIns)
	salesRepo := NewSalesItemRepository(tx, r.tables.SalesItems)

	if err := fn(itemRepo, stockInRepo, salesRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.StorageError("commit transaction", err)
	}
	return nil
}
