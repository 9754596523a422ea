// Package schema models an introspected table: its columns with a portable
// type vocabulary, primary key, foreign keys, and constraints.
//
// A TableSchema is a point-in-time snapshot produced fresh on every
// introspection call. It holds no live binding to the database; a second
// call may return a structurally different result if the schema changed
// concurrently, and callers must treat every snapshot as stale-tolerant.
package schema

// UnifiedType is the portable value-type tag shared across relational
// engines. Every engine-native type maps to exactly one UnifiedType;
// unmapped native types resolve to TypeUnknown.
type UnifiedType string

const (
	TypeInteger  UnifiedType = "integer"
	TypeFloat    UnifiedType = "float"
	TypeDecimal  UnifiedType = "decimal"
	TypeString   UnifiedType = "string"
	TypeBoolean  UnifiedType = "boolean"
	TypeDate     UnifiedType = "date"
	TypeTime     UnifiedType = "time"
	TypeDateTime UnifiedType = "datetime"
	TypeBinary   UnifiedType = "binary"
	TypeJSON     UnifiedType = "json"
	TypeArray    UnifiedType = "array"
	TypeObject   UnifiedType = "object"
	TypeUnknown  UnifiedType = "unknown"
)

// FKAction is a referential action attached to a foreign key.
type FKAction string

const (
	ActionCascade    FKAction = "CASCADE"
	ActionSetNull    FKAction = "SET NULL"
	ActionSetDefault FKAction = "SET DEFAULT"
	ActionRestrict   FKAction = "RESTRICT"
	ActionNoAction   FKAction = "NO ACTION"
)

// ColumnInfo describes a single column in a table.
type ColumnInfo struct {
	Name       string
	NativeType string // engine type name: text, int4, timestamptz, …
	Type       UnifiedType
	Nullable   bool
	IsUnique   bool
	Default    *string // raw default expression, not evaluated; nil if none
}

// ForeignKey describes a reference from one column to another table's column.
type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  FKAction
	OnUpdate  FKAction
}

// ConstraintKind distinguishes the constraint flavours modeled here.
// Primary and foreign keys live in their own TableSchema fields.
type ConstraintKind string

const (
	ConstraintUnique ConstraintKind = "unique"
	ConstraintCheck  ConstraintKind = "check"
)

// Constraint is a named UNIQUE or CHECK rule on a table. Definition holds
// the engine's own rendering of the rule, for display only — it is never
// parsed or executed.
type Constraint struct {
	Name       string
	Kind       ConstraintKind
	Columns    []string
	Definition string
}

// TableSchema is the full introspected description of one table.
// PrimaryKey is empty (never nil) when the table has no primary key.
type TableSchema struct {
	Name        string
	Columns     []ColumnInfo
	PrimaryKey  []string
	ForeignKeys []ForeignKey
	Constraints []Constraint
}

// Column returns the ColumnInfo with the given name, or nil if absent.
func (t *TableSchema) Column(name string) *ColumnInfo {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}
