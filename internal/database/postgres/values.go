package postgres

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gridbase/gridbase/internal/database"
)

// normalizeRecords rewrites driver-native scan values into the generic
// representations records carry across the adapter boundary: numerics as
// decimal strings, uuids as canonical text, bytea as []byte, json as the
// decoded structure pgx already produces.
func normalizeRecords(records []database.Record) []database.Record {
	for _, rec := range records {
		for k, v := range rec {
			rec[k] = normalizeValue(v)
		}
	}
	return records
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		return numericString(val)
	case [16]byte:
		return uuidString(val)
	default:
		return v
	}
}

// numericString renders a pgtype.Numeric as plain decimal text, preserving
// exact precision where float64 could not.
func numericString(n pgtype.Numeric) string {
	if n.NaN {
		return "NaN"
	}
	if n.Int == nil {
		return "0"
	}

	s := n.Int.String()
	if n.Exp == 0 {
		return s
	}
	if n.Exp > 0 {
		return s + strings.Repeat("0", int(n.Exp))
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	frac := int(-n.Exp)
	if len(s) <= frac {
		s = strings.Repeat("0", frac-len(s)+1) + s
	}
	out := s[:len(s)-frac] + "." + s[len(s)-frac:]
	if neg {
		out = "-" + out
	}
	return out
}

func uuidString(b [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
