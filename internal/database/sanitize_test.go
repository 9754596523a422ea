package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "users", `"users"`},
		{"mixed case preserved", "UserAccounts", `"UserAccounts"`},
		{"reserved word", "select", `"select"`},
		{"embedded quote doubled", `we"ird`, `"we""ird"`},
		{"injection attempt", `x"; DROP TABLE users; --`, `"x""; DROP TABLE users; --"`},
		{"empty", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteIdentifier(tt.in))
		})
	}
}

func TestPostgresPlaceholder(t *testing.T) {
	assert.Equal(t, "$1", PostgresPlaceholder(1))
	assert.Equal(t, "$42", PostgresPlaceholder(42))
}
