package dependency

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/budgetwise/statistics/config"
	"github.com/budgetwise/statistics/internal/integration/budgetwise"
	"github.com/budgetwise/statistics/internal/integration/persistence"
)

func TestNewInjector_APISource(t *testing.T) {
	cfg := config.Load()
	cfg.DataSource = config.DataSourceAPI
	cfg.Backend.BaseURL = "http://backend.test"

	injector, err := NewInjector(cfg, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, injector.Router)
	assert.NotNil(t, injector.Router.Setup("test"))
}

func TestNewInjector_DatabaseSourceRequiresDB(t *testing.T) {
	cfg := config.Load()
	cfg.DataSource = config.DataSourceDatabase
	cfg.JWT.Secret = "secret"

	_, err := NewInjector(cfg, nil, nil)
	assert.ErrorContains(t, err, "requires a database connection")
}

func TestNewInjector_DatabaseSourceRequiresSecret(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Load()
	cfg.DataSource = config.DataSourceDatabase
	cfg.JWT.Secret = ""

	_, err = NewInjector(cfg, db, nil)
	assert.ErrorContains(t, err, "requires JWT_SECRET")

	cfg.JWT.Secret = "secret"
	injector, err := NewInjector(cfg, db, nil)
	require.NoError(t, err)
	assert.NotNil(t, injector.Router)
}

func TestNewInjector_UnknownSource(t *testing.T) {
	cfg := config.Load()
	cfg.DataSource = "ftp"

	_, err := NewInjector(cfg, nil, nil)
	assert.ErrorContains(t, err, "unknown DATA_SOURCE")
}

func TestNewRecordSource(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Load()
	cfg.DataSource = config.DataSourceDatabase
	source, err := newRecordSource(cfg, db)
	require.NoError(t, err)
	assert.IsType(t, &persistence.RecordRepository{}, source)

	cfg.DataSource = config.DataSourceAPI
	source, err = newRecordSource(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &budgetwise.Client{}, source)
}

func TestNewRateLimiter(t *testing.T) {
	cfg := config.Load()

	cfg.RateLimit.Enabled = false
	assert.Nil(t, newRateLimiter(cfg, nil))

	cfg.RateLimit.Enabled = true
	assert.NotNil(t, newRateLimiter(cfg, nil))

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	assert.NotNil(t, newRateLimiter(cfg, client))
}
