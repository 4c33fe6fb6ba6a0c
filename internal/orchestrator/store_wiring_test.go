package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
)

func TestBuildStore_NoDriverReturnsNilStore(t *testing.T) {
	cfg := &config.Config{}
	store, closeFn, err := BuildStore(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closeFn())
}

func TestBuildStore_SQLiteDriverOpensAndIsQueryable(t *testing.T) {
	cfg := &config.Config{}
	cfg.StorePool.Driver = "sqlite3"
	cfg.StorePool.DSN = ":memory:"
	cfg.StorePool.RateLimitPerSecond = 0
	cfg.StorePool.RateLimitBurst = 10

	store, closeFn, err := BuildStore(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer closeFn()

	// An in-memory database with no schema; the call must reach the sqlite3
	// driver and fail there (proving the chain is wired end to end), rather
	// than never executing at all.
	_, err = store.ListActiveConstraintRules(context.Background())
	assert.Error(t, err)
}

func TestBuildStore_BadDriverNameErrors(t *testing.T) {
	cfg := &config.Config{}
	cfg.StorePool.Driver = "not-a-real-driver"
	cfg.StorePool.DSN = "whatever"

	_, _, err := BuildStore(cfg, nil)
	assert.Error(t, err)
}
