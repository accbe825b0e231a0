package storage_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/infrastructure/storage"
	"github.com/jhoicas/epharma-api/pkg/config"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: "test", Name: "epharma"},
		Store:  config.StoreConfig{Driver: driver, SQLitePath: ":memory:"},
		Tables: config.DefaultTables(),
	}
}

func TestOpen_MotoresLocales(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			backend, err := storage.Open(ctx, testConfig(driver), logger.Nop())
			require.NoError(t, err)
			defer backend.Close()
			assert.Equal(t, driver, backend.Driver)

			item := &entity.InventoryItem{
				Name:         "Acetaminofén",
				Brand:        "Genfar",
				Quantity:     2,
				CostPrice:    decimal.NewFromInt(100),
				SellingPrice: decimal.NewFromInt(150),
			}
			require.NoError(t, backend.Items.Create(ctx, item))

			// El TxRunner y los repositorios comparten el mismo motor.
			movements := inventory.NewMovementUseCase(backend.TxRunner, logger.Nop())
			_, err = movements.ApplyStockIn(ctx, inventory.StockInInput{
				ItemID: item.ID, Quantity: 3, ExpiryDate: "2030-01-31",
			})
			require.NoError(t, err)

			got, err := backend.Items.GetByID(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, 5, got.Quantity)

			list, err := backend.StockIns.ListByItem(ctx, item.ID)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestOpen_TablasPersonalizadas(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	cfg.Tables = config.TablesConfig{
		InventoryItems: "farmacia_items",
		SalesItems:     "farmacia_ventas",
		StockIns:       "farmacia_entradas",
		Users:          "farmacia_usuarios",
	}
	backend, err := storage.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Items.List(context.Background())
	assert.NoError(t, err)
}

func TestOpen_Errores(t *testing.T) {
	_, err := storage.Open(context.Background(), testConfig("oracle"), logger.Nop())
	assert.Error(t, err)

	cfg := testConfig(config.DriverMemory)
	cfg.Tables.Users = "users; DROP TABLE x"
	_, err = storage.Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
