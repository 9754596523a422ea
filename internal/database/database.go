// Package database defines the engine-independent core of gridbase: the
// adapter contract, the generic record and listing option types, the
// identifier/parameter sanitizer, and the query compiler that turns listing
// and CRUD requests into parameterized statements.
//
// Layers above this package talk only to the Adapter interface — they never
// import an engine package directly.
package database

import (
	"context"

	"github.com/gridbase/gridbase/internal/schema"
)

// Adapter is the central contract every relational engine binding implements.
// One adapter value is safe for concurrent use by many callers; each call
// carries its own parameters and the pool serializes physical connections.
// Connect is not safe to race against itself from two callers expecting
// independent pools.
type Adapter interface {
	// Connect opens the connection pool. If already connected, the existing
	// pool is torn down first — calling Connect repeatedly reconfigures.
	Connect(ctx context.Context) error

	// Disconnect drains and closes the pool. Subsequent operations fail
	// with a not-connected error until Connect is called again.
	Disconnect()

	// HealthCheck runs a trivial round-trip query. It reports false on any
	// failure, including "not connected" — it never returns an error.
	HealthCheck(ctx context.Context) bool

	// TableList returns the base tables in the configured schema.
	TableList(ctx context.Context) ([]string, error)

	// TableExists reports whether the named base table exists.
	TableExists(ctx context.Context, table string) (bool, error)

	// TableSchema introspects one table: columns with unified types, primary
	// key, foreign keys with referential actions, and unique/check
	// constraints. Each call produces a fresh snapshot.
	TableSchema(ctx context.Context, table string) (*schema.TableSchema, error)

	// TableData runs the paginated, filtered, sorted listing of opts plus
	// its paired total-count query and returns one page.
	TableData(ctx context.Context, table string, opts TableDataOptions) (*TableData, error)

	// CreateRecord inserts the record's present fields and returns the
	// stored row, including server-computed defaults.
	CreateRecord(ctx context.Context, table string, record Record) (Record, error)

	// UpdateRecord applies the record's present fields to every row matching
	// the where map and returns the updated rows.
	UpdateRecord(ctx context.Context, table string, record, where Record) ([]Record, error)

	// DeleteRecord removes rows matching the where map. It reports true iff
	// at least one row was removed; "no match" is a false result, not an error.
	DeleteRecord(ctx context.Context, table string, where Record) (bool, error)

	// ExecuteStatement runs an arbitrary parameterized statement, returning
	// any result rows and the affected-row count.
	ExecuteStatement(ctx context.Context, sql string, args ...any) ([]Record, int64, error)

	// Begin starts a transaction exposing only the basic primitives.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a minimal transaction handle. Query execution inside a transaction
// is deliberately out of the contract; callers get commit/rollback only.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
