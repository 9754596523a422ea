package postgres

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gridbase/gridbase/internal/database"
	"github.com/gridbase/gridbase/internal/errs"
)

// TableData runs the compiled listing statement and its paired count
// statement in parallel and assembles one page. The two queries may observe
// slightly different instants under concurrent writes; this is a pagination
// helper, not a transactional read.
func (d *Driver) TableData(ctx context.Context, table string, opts database.TableDataOptions) (*database.TableData, error) {
	pool, err := d.conn()
	if err != nil {
		return nil, err
	}
	opts = opts.Normalize()

	sel, err := database.BuildSelect(table, opts, database.PostgresPlaceholder)
	if err != nil {
		return nil, err
	}
	count, err := database.BuildCount(table, opts.Filters, database.PostgresPlaceholder)
	if err != nil {
		return nil, err
	}

	started := time.Now()

	var (
		records []database.Record
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := pool.Query(gctx, sel.SQL, sel.Args...)
		if err != nil {
			return mapError(err, "failed to fetch table data")
		}
		records, err = database.ScanRecords(&pgxRows{rows: rows})
		if err != nil {
			return mapError(err, "failed to fetch table data")
		}
		return nil
	})
	g.Go(func() error {
		if err := pool.QueryRow(gctx, count.SQL, count.Args...).Scan(&total); err != nil {
			return mapError(err, "failed to count table data")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.log.With().
		Str("table", table).
		Int("rows", len(records)).
		Dur("elapsed", time.Since(started)).
		Logger().
		Debug("table data fetched")

	return &database.TableData{
		Data:       normalizeRecords(records),
		Total:      total,
		Page:       opts.Page,
		PerPage:    opts.PerPage,
		TotalPages: database.TotalPages(total, opts.PerPage),
	}, nil
}

// CreateRecord inserts the record's present fields and returns the stored
// row so server-computed defaults (serial ids, timestamps) are visible.
func (d *Driver) CreateRecord(ctx context.Context, table string, record database.Record) (database.Record, error) {
	pool, err := d.conn()
	if err != nil {
		return nil, err
	}

	st, err := database.BuildInsert(table, record, database.PostgresPlaceholder)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, mapError(err, "failed to create record")
	}
	inserted, err := database.ScanRecords(&pgxRows{rows: rows})
	if err != nil {
		return nil, mapError(err, "failed to create record")
	}
	if len(inserted) == 0 {
		return nil, errs.New(errs.ErrKindQueryFailed, "insert returned no row")
	}
	return normalizeRecords(inserted)[0], nil
}

// UpdateRecord applies the record's present fields to every row matching the
// where map and returns the updated rows (empty when nothing matched).
func (d *Driver) UpdateRecord(ctx context.Context, table string, record, where database.Record) ([]database.Record, error) {
	pool, err := d.conn()
	if err != nil {
		return nil, err
	}

	st, err := database.BuildUpdate(table, record, where, database.PostgresPlaceholder)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, mapError(err, "failed to update record")
	}
	updated, err := database.ScanRecords(&pgxRows{rows: rows})
	if err != nil {
		return nil, mapError(err, "failed to update record")
	}
	return normalizeRecords(updated), nil
}

// DeleteRecord removes rows matching the where map. It reports true iff at
// least one row was removed; a non-matching where map is a false result,
// never an error.
func (d *Driver) DeleteRecord(ctx context.Context, table string, where database.Record) (bool, error) {
	pool, err := d.conn()
	if err != nil {
		return false, err
	}

	st, err := database.BuildDelete(table, where, database.PostgresPlaceholder)
	if err != nil {
		return false, err
	}

	tag, err := pool.Exec(ctx, st.SQL, st.Args...)
	if err != nil {
		return false, mapError(err, "failed to delete record")
	}
	return tag.RowsAffected() > 0, nil
}

// ExecuteStatement runs an arbitrary parameterized statement, returning any
// result rows and the affected-row count.
func (d *Driver) ExecuteStatement(ctx context.Context, sql string, args ...any) ([]database.Record, int64, error) {
	pool, err := d.conn()
	if err != nil {
		return nil, 0, err
	}

	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, mapError(err, "failed to execute statement")
	}
	pgRows := &pgxRows{rows: rows}
	records, err := database.ScanRecords(pgRows)
	if err != nil {
		return nil, 0, mapError(err, "failed to execute statement")
	}

	// The command tag is only available once the result set is drained.
	affected := rows.CommandTag().RowsAffected()
	return normalizeRecords(records), affected, nil
}
