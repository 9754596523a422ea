package schema

import "strings"

// nativeTypes is the static lookup from PostgreSQL type names to the unified
// vocabulary. Keys cover both information_schema.data_type spellings
// ("character varying", "timestamp with time zone") and pg_catalog / udt
// names ("varchar", "timestamptz"), since introspection surfaces both.
var nativeTypes = map[string]UnifiedType{
	// integers
	"smallint":    TypeInteger,
	"integer":     TypeInteger,
	"bigint":      TypeInteger,
	"int2":        TypeInteger,
	"int4":        TypeInteger,
	"int8":        TypeInteger,
	"smallserial": TypeInteger,
	"serial":      TypeInteger,
	"bigserial":   TypeInteger,
	"oid":         TypeInteger,

	// floating point
	"real":             TypeFloat,
	"double precision": TypeFloat,
	"float4":           TypeFloat,
	"float8":           TypeFloat,

	// exact numerics
	"numeric": TypeDecimal,
	"decimal": TypeDecimal,
	"money":   TypeDecimal,

	// text
	"character varying": TypeString,
	"varchar":           TypeString,
	"character":         TypeString,
	"bpchar":            TypeString,
	"char":              TypeString,
	"text":              TypeString,
	"name":              TypeString,
	"citext":            TypeString,
	"uuid":              TypeString,
	"inet":              TypeString,
	"cidr":              TypeString,
	"macaddr":           TypeString,
	"xml":               TypeString,

	// boolean
	"boolean": TypeBoolean,
	"bool":    TypeBoolean,

	// temporal
	"date":                        TypeDate,
	"time without time zone":      TypeTime,
	"time with time zone":         TypeTime,
	"time":                        TypeTime,
	"timetz":                      TypeTime,
	"timestamp without time zone": TypeDateTime,
	"timestamp with time zone":    TypeDateTime,
	"timestamp":                   TypeDateTime,
	"timestamptz":                 TypeDateTime,
	"interval":                    TypeTime,

	// binary
	"bytea": TypeBinary,

	// structured
	"json":  TypeJSON,
	"jsonb": TypeJSON,

	// arrays (information_schema reports the literal string "ARRAY")
	"array": TypeArray,

	// composite / row types
	"user-defined": TypeObject,
	"record":       TypeObject,
}

// MapType resolves a native type name to its UnifiedType. It is pure and
// total: lookup is case-insensitive, array udt names ("_int4") resolve to
// TypeArray, and anything not in the table yields TypeUnknown.
func MapType(nativeType string) UnifiedType {
	name := strings.ToLower(strings.TrimSpace(nativeType))
	if strings.HasPrefix(name, "_") {
		return TypeArray
	}
	if t, ok := nativeTypes[name]; ok {
		return t
	}
	return TypeUnknown
}

// fkActions maps native referential-action strings (as reported by
// information_schema.referential_constraints) to the closed FKAction set.
var fkActions = map[string]FKAction{
	"CASCADE":     ActionCascade,
	"SET NULL":    ActionSetNull,
	"SET DEFAULT": ActionSetDefault,
	"RESTRICT":    ActionRestrict,
	"NO ACTION":   ActionNoAction,
}

// MapAction resolves a native referential-action string to an FKAction.
// Unrecognized actions degrade to ActionNoAction rather than failing the
// introspection call.
func MapAction(native string) FKAction {
	if a, ok := fkActions[strings.ToUpper(strings.TrimSpace(native))]; ok {
		return a
	}
	return ActionNoAction
}
