package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gridbase/gridbase/internal/errs"
	"github.com/gridbase/gridbase/internal/schema"
)

// TableList returns the base tables in the configured schema.
func (d *Driver) TableList(ctx context.Context) ([]string, error) {
	pool, err := d.conn()
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := pool.Query(ctx, q, d.cfg.Schema)
	if err != nil {
		return nil, mapError(err, "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapError(err, "failed to scan table name")
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating tables")
	}
	return tables, nil
}

// TableExists reports whether a base table with the given name exists in the
// configured schema.
func (d *Driver) TableExists(ctx context.Context, table string) (bool, error) {
	pool, err := d.conn()
	if err != nil {
		return false, err
	}

	const q = `
		SELECT 1
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_type   = 'BASE TABLE'
		  AND table_name   = $2`

	var exists int
	if err := pool.QueryRow(ctx, q, d.cfg.Schema, table).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapError(err, "failed to check table existence")
	}
	return true, nil
}

// TableSchema introspects one table through independent metadata queries for
// columns, primary key, foreign keys, and unique/check constraints. The
// result is a fresh point-in-time snapshot; it may be inconsistent if the
// schema changes concurrently, which is acceptable for a read-only view.
func (d *Driver) TableSchema(ctx context.Context, table string) (*schema.TableSchema, error) {
	if _, err := d.conn(); err != nil {
		return nil, err
	}

	columns, err := d.fetchColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errs.Newf(errs.ErrKindNotFound, "table %q not found in schema %q", table, d.cfg.Schema)
	}

	pks, err := d.fetchPrimaryKey(ctx, table)
	if err != nil {
		return nil, err
	}

	uniqueCols, err := d.fetchUniqueColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	uqSet := make(map[string]bool, len(uniqueCols))
	for _, c := range uniqueCols {
		uqSet[c] = true
	}
	for i := range columns {
		columns[i].IsUnique = uqSet[columns[i].Name]
	}

	fks, err := d.fetchForeignKeys(ctx, table)
	if err != nil {
		return nil, err
	}

	constraints, err := d.fetchConstraints(ctx, table)
	if err != nil {
		return nil, err
	}

	return &schema.TableSchema{
		Name:        table,
		Columns:     columns,
		PrimaryKey:  pks,
		ForeignKeys: fks,
		Constraints: constraints,
	}, nil
}

func (d *Driver) fetchColumns(ctx context.Context, table string) ([]schema.ColumnInfo, error) {
	const q = `
		SELECT column_name,
		       data_type,
		       udt_name,
		       is_nullable = 'YES',
		       column_default
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name   = $2
		ORDER BY ordinal_position`

	rows, err := d.pool.Query(ctx, q, d.cfg.Schema, table)
	if err != nil {
		return nil, mapError(err, "failed to fetch columns")
	}
	defer rows.Close()

	var cols []schema.ColumnInfo
	for rows.Next() {
		var col schema.ColumnInfo
		var dataType, udtName string
		if err := rows.Scan(&col.Name, &dataType, &udtName, &col.Nullable, &col.Default); err != nil {
			return nil, mapError(err, "failed to scan column info")
		}

		// information_schema reports "ARRAY" / "USER-DEFINED" generically;
		// the udt name carries the real type in those cases.
		col.NativeType = dataType
		if dataType == "ARRAY" || dataType == "USER-DEFINED" {
			col.NativeType = udtName
		}
		col.Type = schema.MapType(col.NativeType)
		if col.Type == schema.TypeUnknown && dataType == "USER-DEFINED" {
			col.Type = schema.MapType(dataType)
		}

		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// fetchPrimaryKey returns the ordered primary-key column list, empty (never
// nil) when the table has no primary key.
func (d *Driver) fetchPrimaryKey(ctx context.Context, table string) ([]string, error) {
	const q = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema    = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema    = $1
		  AND tc.table_name      = $2
		ORDER BY kcu.ordinal_position`

	pks, err := d.fetchStringList(ctx, q, table, "failed to fetch primary key")
	if err != nil {
		return nil, err
	}
	if pks == nil {
		pks = []string{}
	}
	return pks, nil
}

func (d *Driver) fetchUniqueColumns(ctx context.Context, table string) ([]string, error) {
	const q = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema    = kcu.table_schema
		WHERE tc.constraint_type = 'UNIQUE'
		  AND tc.table_schema    = $1
		  AND tc.table_name      = $2`

	return d.fetchStringList(ctx, q, table, "failed to fetch unique columns")
}

func (d *Driver) fetchForeignKeys(ctx context.Context, table string) ([]schema.ForeignKey, error) {
	const q = `
		SELECT tc.constraint_name,
		       kcu.column_name,
		       ccu.table_name  AS ref_table,
		       ccu.column_name AS ref_column,
		       rc.delete_rule,
		       rc.update_rule
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema    = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
		  ON tc.constraint_name = ccu.constraint_name
		 AND tc.table_schema    = ccu.table_schema
		JOIN information_schema.referential_constraints rc
		  ON tc.constraint_name = rc.constraint_name
		 AND tc.table_schema    = rc.constraint_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema    = $1
		  AND tc.table_name      = $2
		ORDER BY tc.constraint_name`

	rows, err := d.pool.Query(ctx, q, d.cfg.Schema, table)
	if err != nil {
		return nil, mapError(err, "failed to fetch foreign keys")
	}
	defer rows.Close()

	var fks []schema.ForeignKey
	for rows.Next() {
		var fk schema.ForeignKey
		var deleteRule, updateRule string
		if err := rows.Scan(&fk.Name, &fk.Column, &fk.RefTable, &fk.RefColumn, &deleteRule, &updateRule); err != nil {
			return nil, mapError(err, "failed to scan foreign key")
		}
		fk.OnDelete = schema.MapAction(deleteRule)
		fk.OnUpdate = schema.MapAction(updateRule)
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

// fetchConstraints reads unique and check constraints with their column
// lists and the engine's own rendering of the definition. pg_catalog is used
// because information_schema does not expose constraint definitions.
func (d *Driver) fetchConstraints(ctx context.Context, table string) ([]schema.Constraint, error) {
	const q = `
		SELECT con.conname,
		       con.contype::text,
		       pg_get_constraintdef(con.oid),
		       COALESCE(
		           array_agg(att.attname::text ORDER BY u.ord) FILTER (WHERE att.attname IS NOT NULL),
		           '{}'
		       )
		FROM pg_constraint con
		JOIN pg_class rel      ON rel.oid = con.conrelid
		JOIN pg_namespace nsp  ON nsp.oid = rel.relnamespace
		LEFT JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS u(attnum, ord) ON true
		LEFT JOIN pg_attribute att
		  ON att.attrelid = con.conrelid
		 AND att.attnum   = u.attnum
		WHERE nsp.nspname = $1
		  AND rel.relname = $2
		  AND con.contype IN ('u', 'c')
		GROUP BY con.oid, con.conname, con.contype
		ORDER BY con.conname`

	rows, err := d.pool.Query(ctx, q, d.cfg.Schema, table)
	if err != nil {
		return nil, mapError(err, "failed to fetch constraints")
	}
	defer rows.Close()

	var constraints []schema.Constraint
	for rows.Next() {
		var c schema.Constraint
		var contype string
		if err := rows.Scan(&c.Name, &contype, &c.Definition, &c.Columns); err != nil {
			return nil, mapError(err, "failed to scan constraint")
		}
		switch contype {
		case "u":
			c.Kind = schema.ConstraintUnique
		case "c":
			c.Kind = schema.ConstraintCheck
		}
		constraints = append(constraints, c)
	}
	return constraints, rows.Err()
}

// fetchStringList runs a metadata query that returns a single text column.
func (d *Driver) fetchStringList(ctx context.Context, q, table, errMsg string) ([]string, error) {
	rows, err := d.pool.Query(ctx, q, d.cfg.Schema, table)
	if err != nil {
		return nil, mapError(err, errMsg)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, mapError(err, errMsg)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
