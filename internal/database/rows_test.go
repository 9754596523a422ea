package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbase/gridbase/internal/errs"
)

// stubRows is an in-memory Rows implementation for scanner tests.
type stubRows struct {
	columns []string
	data    [][]any
	pos     int
	err     error
	closed  bool
}

func (s *stubRows) Next() bool {
	if s.err != nil || s.pos >= len(s.data) {
		return false
	}
	s.pos++
	return true
}

func (s *stubRows) Scan(dest ...any) error {
	row := s.data[s.pos-1]
	for i, d := range dest {
		*(d.(*any)) = row[i]
	}
	return nil
}

func (s *stubRows) Columns() ([]string, error) { return s.columns, nil }
func (s *stubRows) Close()                     { s.closed = true }
func (s *stubRows) Err() error                 { return s.err }

func TestScanRecords(t *testing.T) {
	rows := &stubRows{
		columns: []string{"id", "name", "age"},
		data: [][]any{
			{1, "alice", 30},
			{2, "bob", nil},
		},
	}

	records, err := ScanRecords(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{"id": 1, "name": "alice", "age": 30}, records[0])
	assert.Equal(t, Record{"id": 2, "name": "bob", "age": nil}, records[1])
	assert.True(t, rows.closed)
}

func TestScanRecords_Empty(t *testing.T) {
	records, err := ScanRecords(&stubRows{columns: []string{"id"}})
	require.NoError(t, err)

	// Always a non-nil empty slice on zero rows.
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestScanRecords_IterationError(t *testing.T) {
	rows := &stubRows{
		columns: []string{"id"},
		err:     errors.New("connection reset"),
	}

	_, err := ScanRecords(rows)
	require.Error(t, err)
	assert.True(t, errs.IsQueryFailed(err))
	assert.True(t, rows.closed)
}
