// Package store opens the storage backend selected by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/jordanlanch/leaddesk/config"
	"github.com/jordanlanch/leaddesk/pkg/database"
	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/store/mongostore"
	"github.com/jordanlanch/leaddesk/pkg/store/sqlstore"
)

// PoolReporter is implemented by backends with a connection pool.
type PoolReporter interface {
	OpenConnections() int
}

// Open connects to the configured backend and prepares its schema.
func Open(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres, config.DriverSQLite:
		pool := database.DefaultPoolConfig()
		if cfg.DBMaxOpenConns > 0 {
			pool.MaxOpenConns = cfg.DBMaxOpenConns
		}
		if cfg.DBMaxIdleConns > 0 {
			pool.MaxIdleConns = cfg.DBMaxIdleConns
		}
		var ssl *database.SSLConfig
		if cfg.DBSSLMode != "" {
			ssl = &database.SSLConfig{Mode: cfg.DBSSLMode}
		}

		client, err := database.Open(ctx, cfg.StorageDriver, cfg.DatabaseURL, pool, ssl)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(client), nil

	case config.DriverMongo:
		return mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
