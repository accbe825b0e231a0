package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "epharma.db", cfg.Store.SQLitePath)
	assert.Equal(t, DefaultTables(), cfg.Tables)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TABLE_SALES_ITEMS", "ventas")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "p@ss")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "ventas", cfg.Tables.SalesItems)
	assert.Equal(t, "postgres://postgres:p%40ss@db:5432/epharma?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestTablesConfig_Validate(t *testing.T) {
	ok := DefaultTables()
	assert.NoError(t, ok.Validate())

	bad := DefaultTables()
	bad.Users = "users; DROP TABLE x"
	assert.Error(t, bad.Validate())

	dup := DefaultTables()
	dup.StockIns = "SALES_ITEMS"
	assert.Error(t, dup.Validate())
}

func TestDBConfig_DatabaseURLWins(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://x@y/z", Host: "ignored"}
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
