package database

import "github.com/gridbase/gridbase/internal/errs"

// Row is an abstraction over a single database row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row, returning false when exhausted or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Columns returns the column names of the result set.
	Columns() ([]string, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// ScanRecords reads all rows from the result set and returns them as Records
// keyed by column name. The returned slice is always non-nil (empty on zero
// rows). ScanRecords always closes the Rows — callers do not call Close().
func ScanRecords(rows Rows) ([]Record, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to read column names", err)
	}

	records := make([]Record, 0)

	for rows.Next() {
		// Scan targets are *any so the driver can write any value type.
		dest := make([]any, len(columns))
		destPtrs := make([]any, len(columns))
		for i := range dest {
			destPtrs[i] = &dest[i]
		}

		if err := rows.Scan(destPtrs...); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "failed to scan row", err)
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			rec[col] = dest[i]
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "error during row iteration", err)
	}

	return records, nil
}
