// Package sqlite implementa los puertos de persistencia sobre SQLite con GORM.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appinventory "github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/pkg/config"
)

var _ appinventory.TxRunner = (*Store)(nil)

// Open abre (o crea) la base SQLite en path. ":memory:" crea una base volátil.
// Se limita a una conexión: SQLite admite un solo escritor y cada conexión a
// ":memory:" vería una base distinta.
func Open(path string, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if !debug {
		level = gormlogger.Silent
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate crea o ajusta las tablas del ledger con los nombres configurados.
func Migrate(db *gorm.DB, tables config.TablesConfig) error {
	if err := tables.Validate(); err != nil {
		return err
	}
	steps := []struct {
		table string
		model any
	}{
		{tables.InventoryItems, &itemModel{}},
		{tables.StockIns, &stockInModel{}},
		{tables.SalesItems, &salesItemModel{}},
		{tables.Users, &userModel{}},
	}
	for _, s := range steps {
		if err := db.Table(s.table).AutoMigrate(s.model); err != nil {
			return fmt.Errorf("automigrate %s: %w", s.table, err)
		}
	}
	return nil
}

// Store agrupa los repositorios SQLite y ejecuta transacciones.
type Store struct {
	db     *gorm.DB
	tables config.TablesConfig
}

// NewStore construye el store sobre una conexión ya migrada.
func NewStore(db *gorm.DB, tables config.TablesConfig) *Store {
	return &Store{db: db, tables: tables}
}

// Run ejecuta fn en una transacción GORM; si fn devuelve error se hace Rollback.
// El error de fn se devuelve tal cual; fallos de begin o commit se reportan como ErrStorage.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	stockInRepo repository.StockInRepository,
	salesRepo repository.SalesItemRepository,
) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(
			NewInventoryItemRepository(tx, s.tables.InventoryItems),
			NewStockInRepository(tx, s.tables.StockIns),
			NewSalesItemRepository(tx, s.tables.SalesItems),
		)
		return fnErr
	})
	if err == nil || (fnErr != nil && errors.Is(err, fnErr)) {
		return err
	}
	return domain.StorageError("transaction", err)
}

// Items repositorio de items fuera de transacción.
func (s *Store) Items() *InventoryItemRepo {
	return NewInventoryItemRepository(s.db, s.tables.InventoryItems)
}

// StockIns repositorio de entradas.
func (s *Store) StockIns() *StockInRepo { return NewStockInRepository(s.db, s.tables.StockIns) }

// Sales repositorio de ventas.
func (s *Store) Sales() *SalesItemRepo { return NewSalesItemRepository(s.db, s.tables.SalesItems) }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return NewUserRepository(s.db, s.tables.Users) }

// Reports repositorio del reporte de ventas.
func (s *Store) Reports() *SalesReportRepo { return NewSalesReportRepository(s.db, s.tables) }

// mapError traduce errores de GORM/SQLite a errores de dominio.
func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return domain.ErrDuplicate
	default:
		return domain.StorageError(op, err)
	}
}

// likePattern escapa comodines para LIKE ... ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
