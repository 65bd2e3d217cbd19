// Package sqlstore implements domain.Store on postgres or sqlite through the
// ent dialect/sql query builder.
package sqlstore

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/jordanlanch/leaddesk/pkg/database"
	"github.com/jordanlanch/leaddesk/pkg/domain"
)

// Store persists leads, users and lead sources in a SQL database.
type Store struct {
	client *database.Client
	drv    *entsql.Driver
}

var _ domain.Store = (*Store)(nil)

// New creates a store on top of an open, migrated database client.
func New(client *database.Client) *Store {
	return &Store{client: client, drv: client.Driver}
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// OpenConnections reports the connections currently open in the pool.
func (s *Store) OpenConnections() int {
	return s.client.Stats().OpenConnections
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func exec(ctx context.Context, conn dialect.ExecQuerier, q entsql.Querier) (int64, error) {
	query, args := q.Query()
	var res stdsql.Result
	if err := conn.Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanAll runs q and hands every row to scan. Rows are closed before it
// returns so the connection is free for the next statement.
func scanAll(ctx context.Context, conn dialect.ExecQuerier, q entsql.Querier, scan func(*entsql.Rows) error) error {
	query, args := q.Query()
	rows := &entsql.Rows{}
	if err := conn.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *Store) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes unique index violations from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// writeError maps driver errors of a write on table to domain errors.
func writeError(err error, table, uniqueField string) error {
	if isUniqueViolation(err) {
		return domain.NewDuplicateError(uniqueField, err)
	}
	return fmt.Errorf("writing %s: %w", table, err)
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
