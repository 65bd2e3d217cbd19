package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leaddesk/config"
	"github.com/jordanlanch/leaddesk/pkg/store/sqlstore"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		StorageDriver: config.DriverSQLite,
		DatabaseURL:   "file:store_open?mode=memory&cache=shared&_fk=1",
	}

	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &sqlstore.Store{}, s)
	require.NoError(t, s.Ping(context.Background()))

	pool, ok := s.(PoolReporter)
	require.True(t, ok)
	assert.GreaterOrEqual(t, pool.OpenConnections(), 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StorageDriver: "cassandra"})
	assert.Error(t, err)
}
