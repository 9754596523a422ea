// Package postgres is the PostgreSQL binding of the gridbase adapter
// contract, backed by pgxpool. One Driver value is safe for concurrent use
// by many callers; Connect must not be raced against itself.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridbase/gridbase/internal/database"
	"github.com/gridbase/gridbase/internal/errs"
	"github.com/gridbase/gridbase/internal/logger"
)

// Driver implements database.Adapter for PostgreSQL.
type Driver struct {
	cfg  *database.Config
	pool *pgxpool.Pool
	log  *logger.Logger
}

var _ database.Adapter = (*Driver)(nil)

// New returns an unconnected Driver for the given config.
// Call Connect before using it.
func New(cfg *database.Config, log *logger.Logger) *Driver {
	cfg.Normalize()
	if log == nil {
		log = logger.New(nil)
	}
	return &Driver{cfg: cfg, log: log}
}

// Connect opens the connection pool and validates it with a ping.
// If a pool is already open it is torn down first, so repeated calls
// reconfigure rather than leak.
func (d *Driver) Connect(ctx context.Context) error {
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}

	pool, err := buildPool(ctx, d.cfg)
	if err != nil {
		return err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return mapError(err, "could not reach database")
	}

	d.pool = pool
	d.log.With().
		Str("host", d.cfg.Host).
		Str("database", d.cfg.Database).
		Str("schema", d.cfg.Schema).
		Logger().
		Debug("connected to postgres")
	return nil
}

// Disconnect drains and closes the pool. Safe to call when not connected.
func (d *Driver) Disconnect() {
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
		d.log.Debug("disconnected from postgres")
	}
}

// HealthCheck runs a trivial round-trip query. It reports false on any
// failure, including "not connected" — it never returns an error.
func (d *Driver) HealthCheck(ctx context.Context) bool {
	if d.pool == nil {
		return false
	}
	var one int
	if err := d.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		d.log.With().Err(err).Logger().Debug("health check failed")
		return false
	}
	return one == 1
}

// conn returns the active pool or a not-connected error.
func (d *Driver) conn() (*pgxpool.Pool, error) {
	if d.pool == nil {
		return nil, errs.New(errs.ErrKindNotConnected, "no active database connection")
	}
	return d.pool, nil
}

// Begin starts a transaction exposing commit/rollback only.
func (d *Driver) Begin(ctx context.Context) (database.Tx, error) {
	pool, err := d.conn()
	if err != nil {
		return nil, err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, mapError(err, "failed to begin transaction")
	}
	return &pgxTx{tx: tx}, nil
}

// pgxTx adapts pgx.Tx to database.Tx.
type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return mapError(err, "failed to commit transaction")
	}
	return nil
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return mapError(err, "failed to roll back transaction")
	}
	return nil
}

// --- pgx result wrappers ---

// pgxRows wraps pgx.Rows to satisfy database.Rows.
type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool             { return r.rows.Next() }
func (r *pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *pgxRows) Close()                 { r.rows.Close() }
func (r *pgxRows) Err() error             { return r.rows.Err() }

func (r *pgxRows) Columns() ([]string, error) {
	descs := r.rows.FieldDescriptions()
	cols := make([]string, len(descs))
	for i, desc := range descs {
		cols[i] = desc.Name
	}
	return cols, nil
}
