package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableDataOptions_Normalize(t *testing.T) {
	o := TableDataOptions{}.Normalize()
	assert.Equal(t, 1, o.Page)
	assert.Equal(t, 10, o.PerPage)

	o = TableDataOptions{Page: -3, PerPage: 0}.Normalize()
	assert.Equal(t, 1, o.Page)
	assert.Equal(t, 10, o.PerPage)

	o = TableDataOptions{Page: 4, PerPage: 50}.Normalize()
	assert.Equal(t, 4, o.Page)
	assert.Equal(t, 50, o.PerPage)
}

func TestTableDataOptions_Offset(t *testing.T) {
	assert.Equal(t, 0, TableDataOptions{Page: 1, PerPage: 10}.Offset())
	assert.Equal(t, 2, TableDataOptions{Page: 2, PerPage: 2}.Offset())
	assert.Equal(t, 90, TableDataOptions{Page: 10, PerPage: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0}, // empty result reports zero pages, not one empty page
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 2, 3},
		{100, 25, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.perPage), "total=%d perPage=%d", tt.total, tt.perPage)
	}
}
