package database

import (
	"fmt"
	"strings"
)

// This file is the single trust boundary between caller-supplied strings and
// statement text. Table and column names are the only identifiers ever
// quoted-and-interpolated (most dialects cannot parameterize identifiers);
// every literal value travels as a bound parameter. No code path may build a
// WHERE/SET/VALUES fragment by concatenating a caller-supplied value.

// QuoteIdentifier wraps a table or column name in ANSI double-quotes,
// doubling any embedded quote characters. Must be used for every identifier
// interpolated into statement text — never concatenate a raw name.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// PlaceholderFunc renders the dialect's parameter placeholder for the n-th
// bound value (1-based). Adding an engine with a different placeholder style
// means supplying a different PlaceholderFunc, nothing more.
type PlaceholderFunc func(n int) string

// PostgresPlaceholder renders $1, $2, … placeholders.
func PostgresPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
