// Package dbexec owns the scoped lifecycle of a database connection for a
// single logical operation: acquire, execute, collect, release. The
// connection is released on every exit path, and no database error escapes
// this layer as a fault.
package dbexec

import (
	"context"
	"database/sql"
)

// Rows abstracts sql.Rows so tests can substitute fault-injecting result
// sets.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Conn is a connection scoped to one logical operation. Close returns it
// to the owning pool.
type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// Source hands out scoped connections. The production implementation wraps
// *sql.DB; tests use counting fakes to verify acquire/release pairing.
type Source interface {
	Acquire(ctx context.Context) (Conn, error)
}

// PoolSource acquires dedicated connections from a database handle. Pooling
// itself stays inside database/sql; this layer never retains a connection
// beyond one operation.
type PoolSource struct {
	db *sql.DB
}

// NewPoolSource wraps a database handle as a connection source.
func NewPoolSource(db *sql.DB) *PoolSource {
	return &PoolSource{db: db}
}

func (s *PoolSource) Acquire(ctx context.Context) (Conn, error) {
	if s.db == nil {
		return nil, sql.ErrConnDone
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &poolConn{conn: conn}, nil
}

type poolConn struct {
	conn *sql.Conn
}

func (c *poolConn) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.conn.QueryContext(ctx, query, args...)
}

func (c *poolConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.conn.ExecContext(ctx, query, args...)
}

func (c *poolConn) Close() error {
	return c.conn.Close()
}
