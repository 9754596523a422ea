package database

// Record is a generic row: column name → value. A key that is absent means
// the field was omitted and is dropped from writes; a key present with a nil
// value is an explicit SQL NULL. The two are never conflated.
type Record map[string]any

// Operator is a filter comparison operator. The set is closed: anything
// outside it is rejected by the query compiler as invalid input.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNeq        Operator = "neq"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpIn         Operator = "in"
	OpNin        Operator = "nin"
	OpLike       Operator = "like"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpIsNull     Operator = "isNull"
	OpIsNotNull  Operator = "isNotNull"
)

// FilterValue is one WHERE term. Value is ignored for the two null-checking
// operators; for OpIn/OpNin it must be a non-empty slice.
type FilterValue struct {
	Column   string
	Operator Operator
	Value    any
}

// Direction controls ORDER BY direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// SortTerm is one (column, direction) ORDER BY entry.
type SortTerm struct {
	Column    string
	Direction Direction
}

// Pagination defaults applied by TableDataOptions.Normalize.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// TableDataOptions describes one paginated, filtered, sorted listing request.
// Filters are implicitly AND-combined; there is no OR or grouping.
type TableDataOptions struct {
	Page    int // 1-based
	PerPage int
	Sort    []SortTerm
	Filters []FilterValue
}

// Normalize returns a copy with page/perPage defaults applied.
func (o TableDataOptions) Normalize() TableDataOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.PerPage < 1 {
		o.PerPage = DefaultPerPage
	}
	return o
}

// Offset is the number of rows skipped for the current page.
func (o TableDataOptions) Offset() int {
	return (o.Page - 1) * o.PerPage
}

// TableData is one page of records plus the pagination bookkeeping.
type TableData struct {
	Data       []Record
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// TotalPages computes ceil(total / perPage), 0 when total is 0 — an empty
// result never reports a phantom single page.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
