package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbase/gridbase/internal/errs"
)

func TestBuildSelect_Defaults(t *testing.T) {
	st, err := BuildSelect("users", TableDataOptions{}, PostgresPlaceholder)
	require.NoError(t, err)

	assert.Equal(t, `SELECT * FROM "users" LIMIT $1 OFFSET $2`, st.SQL)
	assert.Equal(t, []any{10, 0}, st.Args)
}

func TestBuildSelect_Pagination(t *testing.T) {
	st, err := BuildSelect("users", TableDataOptions{Page: 3, PerPage: 25}, PostgresPlaceholder)
	require.NoError(t, err)

	assert.Equal(t, []any{25, 50}, st.Args)
}

func TestBuildSelect_FiltersAndSort(t *testing.T) {
	opts := TableDataOptions{
		Page:    2,
		PerPage: 5,
		Sort: []SortTerm{
			{Column: "created_at", Direction: Descending},
			{Column: "name", Direction: Ascending},
		},
		Filters: []FilterValue{
			{Column: "age", Operator: OpGte, Value: 18},
			{Column: "name", Operator: OpContains, Value: "smith"},
		},
	}

	st, err := BuildSelect("users", opts, PostgresPlaceholder)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT * FROM "users" WHERE "age" >= $1 AND "name" LIKE $2`+
			` ORDER BY "created_at" DESC NULLS LAST, "name" ASC NULLS FIRST`+
			` LIMIT $3 OFFSET $4`,
		st.SQL)
	assert.Equal(t, []any{18, "%smith%", 5, 5}, st.Args)
}

func TestCompileFilter_Operators(t *testing.T) {
	tests := []struct {
		name     string
		filter   FilterValue
		wantSQL  string
		wantArgs []any
	}{
		{"eq", FilterValue{"age", OpEq, 30}, `"age" = $1`, []any{30}},
		{"neq", FilterValue{"age", OpNeq, 30}, `"age" <> $1`, []any{30}},
		{"gt", FilterValue{"age", OpGt, 30}, `"age" > $1`, []any{30}},
		{"gte", FilterValue{"age", OpGte, 30}, `"age" >= $1`, []any{30}},
		{"lt", FilterValue{"age", OpLt, 30}, `"age" < $1`, []any{30}},
		{"lte", FilterValue{"age", OpLte, 30}, `"age" <= $1`, []any{30}},
		{"like", FilterValue{"name", OpLike, "a%"}, `"name" LIKE $1`, []any{"a%"}},
		{"contains", FilterValue{"name", OpContains, "li"}, `"name" LIKE $1`, []any{"%li%"}},
		{"startsWith", FilterValue{"name", OpStartsWith, "al"}, `"name" LIKE $1`, []any{"al%"}},
		{"endsWith", FilterValue{"name", OpEndsWith, "ce"}, `"name" LIKE $1`, []any{"%ce"}},
		{"in", FilterValue{"id", OpIn, []int{1, 2, 3}}, `"id" IN ($1, $2, $3)`, []any{1, 2, 3}},
		{"nin", FilterValue{"id", OpNin, []string{"a", "b"}}, `"id" NOT IN ($1, $2)`, []any{"a", "b"}},
		{"isNull", FilterValue{"age", OpIsNull, nil}, `"age" IS NULL`, nil},
		{"isNotNull", FilterValue{"age", OpIsNotNull, nil}, `"age" IS NOT NULL`, nil},
		// isNull/isNotNull ignore any supplied value.
		{"isNull with value", FilterValue{"age", OpIsNull, 42}, `"age" IS NULL`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, args, err := compileFilter(tt.filter, PostgresPlaceholder, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, frag)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCompileFilter_NullEquality(t *testing.T) {
	// eq/neq against nil compile to IS [NOT] NULL — "= NULL" never matches.
	frag, args, err := compileFilter(FilterValue{"age", OpEq, nil}, PostgresPlaceholder, 1)
	require.NoError(t, err)
	assert.Equal(t, `"age" IS NULL`, frag)
	assert.Empty(t, args)

	frag, args, err = compileFilter(FilterValue{"age", OpNeq, nil}, PostgresPlaceholder, 1)
	require.NoError(t, err)
	assert.Equal(t, `"age" IS NOT NULL`, frag)
	assert.Empty(t, args)
}

func TestCompileFilter_UnknownOperator(t *testing.T) {
	_, _, err := compileFilter(FilterValue{"age", Operator("between"), 1}, PostgresPlaceholder, 1)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestCompileFilter_InRequiresArray(t *testing.T) {
	_, _, err := compileFilter(FilterValue{"id", OpIn, 42}, PostgresPlaceholder, 1)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))

	_, _, err = compileFilter(FilterValue{"id", OpNin, nil}, PostgresPlaceholder, 1)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))

	// Empty arrays are rejected, not silently no-opped.
	_, _, err = compileFilter(FilterValue{"id", OpIn, []int{}}, PostgresPlaceholder, 1)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestBuildCount_SharesWhere(t *testing.T) {
	filters := []FilterValue{
		{Column: "age", Operator: OpGte, Value: 18},
		{Column: "city", Operator: OpEq, Value: "Oslo"},
	}

	st, err := BuildCount("users", filters, PostgresPlaceholder)
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM "users" WHERE "age" >= $1 AND "city" = $2`, st.SQL)
	assert.Equal(t, []any{18, "Oslo"}, st.Args)

	st, err = BuildCount("users", nil, PostgresPlaceholder)
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM "users"`, st.SQL)
	assert.Empty(t, st.Args)
}

func TestBuildInsert(t *testing.T) {
	st, err := BuildInsert("users", Record{"name": "alice", "age": nil}, PostgresPlaceholder)
	require.NoError(t, err)

	// Keys are sorted, so the statement text is deterministic.
	assert.Equal(t, `INSERT INTO "users" ("age", "name") VALUES ($1, $2) RETURNING *`, st.SQL)
	assert.Equal(t, []any{nil, "alice"}, st.Args)
}

func TestBuildInsert_EmptyRecord(t *testing.T) {
	_, err := BuildInsert("users", Record{}, PostgresPlaceholder)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestBuildUpdate(t *testing.T) {
	st, err := BuildUpdate("users",
		Record{"name": "bob"},
		Record{"id": 7, "deleted_at": nil},
		PostgresPlaceholder)
	require.NoError(t, err)

	assert.Equal(t,
		`UPDATE "users" SET "name" = $1 WHERE "deleted_at" IS NULL AND "id" = $2 RETURNING *`,
		st.SQL)
	assert.Equal(t, []any{"bob", 7}, st.Args)
}

func TestBuildUpdate_EmptyInputs(t *testing.T) {
	_, err := BuildUpdate("users", Record{}, Record{"id": 1}, PostgresPlaceholder)
	assert.True(t, errs.IsInvalidInput(err))

	_, err = BuildUpdate("users", Record{"name": "x"}, Record{}, PostgresPlaceholder)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestBuildDelete(t *testing.T) {
	st, err := BuildDelete("users", Record{"id": 3, "email": nil}, PostgresPlaceholder)
	require.NoError(t, err)

	assert.Equal(t, `DELETE FROM "users" WHERE "email" IS NULL AND "id" = $1`, st.SQL)
	assert.Equal(t, []any{3}, st.Args)
}

func TestBuildDelete_EmptyWhere(t *testing.T) {
	// A WHERE-less DELETE would wipe the table; it never compiles.
	_, err := BuildDelete("users", Record{}, PostgresPlaceholder)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestInjectionNeutralized(t *testing.T) {
	hostile := `users"; DROP TABLE users; --`

	st, err := BuildSelect(hostile, TableDataOptions{
		Filters: []FilterValue{{Column: `id"; --`, Operator: OpEq, Value: `'; DROP TABLE x; --`}},
	}, PostgresPlaceholder)
	require.NoError(t, err)

	// The hostile table and column names are quoted with embedded quotes
	// doubled, and the hostile value travels only as a bound argument.
	assert.Contains(t, st.SQL, `"users""; DROP TABLE users; --"`)
	assert.Contains(t, st.SQL, `"id""; --"`)
	assert.NotContains(t, st.SQL, `'; DROP TABLE x; --`)
	assert.Contains(t, st.Args, `'; DROP TABLE x; --`)
}
