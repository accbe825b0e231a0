// Package storage elige el motor de persistencia según la configuración y expone
// los repositorios y el TxRunner del ledger sobre ese motor.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/internal/infrastructure/memory"
	"github.com/jhoicas/epharma-api/internal/infrastructure/postgres"
	"github.com/jhoicas/epharma-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/epharma-api/pkg/config"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// Backend agrupa los puertos de persistencia de un motor ya abierto y migrado.
type Backend struct {
	Driver   string
	TxRunner inventory.TxRunner
	Items    repository.InventoryItemRepository
	StockIns repository.StockInRepository
	Sales    repository.SalesItemRepository
	Users    repository.UserRepository
	Reports  repository.SalesReportRepository

	close func()
}

// Close libera conexiones del motor. Seguro de llamar más de una vez.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
		b.close = nil
	}
}

// Open abre el motor configurado en cfg.Store.Driver y aplica su esquema.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.Tables.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("almacén en memoria: los datos se pierden al detener el proceso")
		return &Backend{
			Driver:   config.DriverMemory,
			TxRunner: store,
			Items:    store.Items(),
			StockIns: store.StockIns(),
			Sales:    store.Sales(),
			Users:    store.Users(),
			Reports:  store.Reports(),
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath, cfg.App.Env == "development")
		if err != nil {
			return nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if err := sqlite.Migrate(db, cfg.Tables); err != nil {
			closeDB()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		store := sqlite.NewStore(db, cfg.Tables)
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("almacén SQLite listo")
		return &Backend{
			Driver:   config.DriverSQLite,
			TxRunner: store,
			Items:    store.Items(),
			StockIns: store.StockIns(),
			Sales:    store.Sales(),
			Users:    store.Users(),
			Reports:  store.Reports(),
			close:    closeDB,
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(cfg.DB.ConnectionString(), cfg.Tables); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("almacén PostgreSQL listo")
		return &Backend{
			Driver:   config.DriverPostgres,
			TxRunner: postgres.NewTxRunner(pool, cfg.Tables),
			Items:    postgres.NewInventoryItemRepository(pool, cfg.Tables.InventoryItems),
			StockIns: postgres.NewStockInRepository(pool, cfg.Tables.StockIns),
			Sales:    postgres.NewSalesItemRepository(pool, cfg.Tables.SalesItems),
			Users:    postgres.NewUserRepository(pool, cfg.Tables.Users),
			Reports:  postgres.NewSalesReportRepository(pool, cfg.Tables),
			close:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver no soportado %q", cfg.Store.Driver)
}
