package database

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gridbase/gridbase/internal/errs"
)

// Statement is one parameterized SQL statement plus its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// comparisonOps maps the binary comparison operators to their SQL fragment.
var comparisonOps = map[Operator]string{
	OpEq:  "=",
	OpNeq: "<>",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// BuildSelect compiles a listing request into a single parameterized SELECT
// with WHERE, ORDER BY, LIMIT and OFFSET. Page size and offset are bound
// parameters like everything else.
func BuildSelect(table string, opts TableDataOptions, ph PlaceholderFunc) (Statement, error) {
	opts = opts.Normalize()

	where, args, err := buildWhere(opts.Filters, ph, 1)
	if err != nil {
		return Statement{}, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(QuoteIdentifier(table))
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	if len(opts.Sort) > 0 {
		terms := make([]string, len(opts.Sort))
		for i, s := range opts.Sort {
			terms[i] = sortTermSQL(s)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}

	sb.WriteString(" LIMIT ")
	sb.WriteString(ph(len(args) + 1))
	args = append(args, opts.PerPage)

	sb.WriteString(" OFFSET ")
	sb.WriteString(ph(len(args) + 1))
	args = append(args, opts.Offset())

	return Statement{SQL: sb.String(), Args: args}, nil
}

// BuildCount compiles the paired COUNT statement: same WHERE clause, same
// arguments, no ordering or pagination.
func BuildCount(table string, filters []FilterValue, ph PlaceholderFunc) (Statement, error) {
	where, args, err := buildWhere(filters, ph, 1)
	if err != nil {
		return Statement{}, err
	}

	sql := "SELECT COUNT(*) FROM " + QuoteIdentifier(table)
	if where != "" {
		sql += " WHERE " + where
	}
	return Statement{SQL: sql, Args: args}, nil
}

// BuildInsert compiles an INSERT over the record's present fields, with a
// RETURNING clause so server-computed defaults come back to the caller.
// A nil field value is written as NULL; absent fields are simply not listed.
func BuildInsert(table string, record Record, ph PlaceholderFunc) (Statement, error) {
	if len(record) == 0 {
		return Statement{}, errs.New(errs.ErrKindInvalidInput, "record must contain at least one field")
	}

	cols := sortedKeys(record)
	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdentifier(c)
		placeholders[i] = ph(i + 1)
		args[i] = record[c]
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
	return Statement{SQL: sql, Args: args}, nil
}

// BuildUpdate compiles an UPDATE over the record's present fields, matched by
// ANDed equality over the where map, returning the updated rows.
func BuildUpdate(table string, record, where Record, ph PlaceholderFunc) (Statement, error) {
	if len(record) == 0 {
		return Statement{}, errs.New(errs.ErrKindInvalidInput, "record must contain at least one field")
	}
	if len(where) == 0 {
		return Statement{}, errs.New(errs.ErrKindInvalidInput, "where clause must contain at least one field")
	}

	var args []any

	setCols := sortedKeys(record)
	sets := make([]string, len(setCols))
	for i, c := range setCols {
		args = append(args, record[c])
		sets[i] = fmt.Sprintf("%s = %s", QuoteIdentifier(c), ph(len(args)))
	}

	cond, args := buildWhereMap(where, ph, args)

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s RETURNING *",
		QuoteIdentifier(table),
		strings.Join(sets, ", "),
		cond,
	)
	return Statement{SQL: sql, Args: args}, nil
}

// BuildDelete compiles a DELETE matched by ANDed equality over the where map.
// An empty where map is rejected: a WHERE-less DELETE would wipe the table.
func BuildDelete(table string, where Record, ph PlaceholderFunc) (Statement, error) {
	if len(where) == 0 {
		return Statement{}, errs.New(errs.ErrKindInvalidInput, "where clause must contain at least one field")
	}

	cond, args := buildWhereMap(where, ph, nil)
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", QuoteIdentifier(table), cond)
	return Statement{SQL: sql, Args: args}, nil
}

// buildWhere compiles a filter list into an ANDed condition string and its
// bound arguments. startIdx is the placeholder number of the first argument.
// An empty filter list yields an empty string (callers omit WHERE entirely).
func buildWhere(filters []FilterValue, ph PlaceholderFunc, startIdx int) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	var args []any
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		frag, fragArgs, err := compileFilter(f, ph, startIdx+len(args))
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, frag)
		args = append(args, fragArgs...)
	}
	return strings.Join(parts, " AND "), args, nil
}

// compileFilter renders one filter term. idx is the placeholder number the
// term's first bound value would take.
func compileFilter(f FilterValue, ph PlaceholderFunc, idx int) (string, []any, error) {
	col := QuoteIdentifier(f.Column)

	switch f.Operator {
	case OpEq:
		// Equality against NULL would never match under three-valued logic.
		if f.Value == nil {
			return col + " IS NULL", nil, nil
		}
		return fmt.Sprintf("%s = %s", col, ph(idx)), []any{f.Value}, nil

	case OpNeq:
		if f.Value == nil {
			return col + " IS NOT NULL", nil, nil
		}
		return fmt.Sprintf("%s <> %s", col, ph(idx)), []any{f.Value}, nil

	case OpGt, OpGte, OpLt, OpLte:
		return fmt.Sprintf("%s %s %s", col, comparisonOps[f.Operator], ph(idx)), []any{f.Value}, nil

	case OpLike:
		return fmt.Sprintf("%s LIKE %s", col, ph(idx)), []any{f.Value}, nil

	case OpContains:
		return fmt.Sprintf("%s LIKE %s", col, ph(idx)), []any{"%" + stringify(f.Value) + "%"}, nil

	case OpStartsWith:
		return fmt.Sprintf("%s LIKE %s", col, ph(idx)), []any{stringify(f.Value) + "%"}, nil

	case OpEndsWith:
		return fmt.Sprintf("%s LIKE %s", col, ph(idx)), []any{"%" + stringify(f.Value)}, nil

	case OpIn, OpNin:
		elems, err := sliceElems(f)
		if err != nil {
			return "", nil, err
		}
		placeholders := make([]string, len(elems))
		for i := range elems {
			placeholders[i] = ph(idx + i)
		}
		not := ""
		if f.Operator == OpNin {
			not = "NOT "
		}
		return fmt.Sprintf("%s %sIN (%s)", col, not, strings.Join(placeholders, ", ")), elems, nil

	case OpIsNull:
		return col + " IS NULL", nil, nil

	case OpIsNotNull:
		return col + " IS NOT NULL", nil, nil

	default:
		return "", nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported filter operator %q", f.Operator)
	}
}

// sliceElems validates and flattens the array value of an in/nin filter.
// Non-array and empty-array values are caller errors, never silent no-ops.
func sliceElems(f FilterValue) ([]any, error) {
	v := reflect.ValueOf(f.Value)
	if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "operator %q requires an array value for column %q", f.Operator, f.Column)
	}
	if v.Len() == 0 {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "operator %q requires a non-empty array for column %q", f.Operator, f.Column)
	}
	elems := make([]any, v.Len())
	for i := range elems {
		elems[i] = v.Index(i).Interface()
	}
	return elems, nil
}

// sortTermSQL renders one ORDER BY term with the explicit NULL placement
// policy: ascending order puts nulls first, descending puts them last,
// independent of the engine default.
func sortTermSQL(s SortTerm) string {
	if s.Direction == Descending {
		return QuoteIdentifier(s.Column) + " DESC NULLS LAST"
	}
	return QuoteIdentifier(s.Column) + " ASC NULLS FIRST"
}

// buildWhereMap renders ANDed equality predicates over a key-value map.
// A nil value compiles to IS NULL rather than an equality comparison.
// Keys are visited in sorted order so the SQL text is deterministic.
func buildWhereMap(where Record, ph PlaceholderFunc, args []any) (string, []any) {
	keys := sortedKeys(where)
	parts := make([]string, len(keys))
	for i, k := range keys {
		if where[k] == nil {
			parts[i] = QuoteIdentifier(k) + " IS NULL"
			continue
		}
		args = append(args, where[k])
		parts[i] = fmt.Sprintf("%s = %s", QuoteIdentifier(k), ph(len(args)))
	}
	return strings.Join(parts, " AND "), args
}

func sortedKeys(m Record) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
