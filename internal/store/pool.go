package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Options selects and tunes the backing database.
type Options struct {
	Driver       string
	Path         string // sqlite
	DSN          string // mysql
	MaxOpenConns int
}

// SQLPool owns the process-wide connection pool. Requests do not use it
// directly: they Acquire a Store bound to one connection and Close it when
// finished.
type SQLPool struct {
	db     *sql.DB
	driver string
}

var _ Acquirer = (*SQLPool)(nil)

// Open connects to the configured database, verifies connectivity, and
// creates the catches table if it does not exist yet.
func Open(ctx context.Context, opts Options) (*SQLPool, error) {
	var (
		db  *sql.DB
		err error
	)
	switch opts.Driver {
	case DriverSQLite:
		db, err = openSQLite(opts.Path)
	case DriverMySQL:
		db, err = openMySQL(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 && !isMemoryPath(opts.Driver, opts.Path) {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}

	if err := RunMigrations(ctx, db, opts.Driver); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLPool{db: db, driver: opts.Driver}, nil
}

// Driver returns the name of the driver in use.
func (p *SQLPool) Driver() string {
	return p.driver
}

// Acquire checks out one connection for the caller's exclusive use.
// A failure here means the database cannot be reached.
func (p *SQLPool) Acquire(ctx context.Context) (Store, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire connection: %v", ErrUnavailable, err)
	}
	return &sqlStore{conn: conn}, nil
}

// Close closes the pool. Stores already acquired fail after this.
func (p *SQLPool) Close() error {
	return p.db.Close()
}

// sqlStore implements Store on a single checked-out connection.
type sqlStore struct {
	conn *sql.Conn
}

// Close returns the connection to the pool. Calling it twice is harmless.
func (s *sqlStore) Close() error {
	if err := s.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
