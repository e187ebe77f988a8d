package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "credits_tenant_number_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"any constraint", dup, "", true},
		{"matching constraint", dup, "credits_tenant_number_key", true},
		{"wrapped", fmt.Errorf("insert credit: %w", dup), "credits_tenant_number_key", true},
		{"other constraint", dup, "rate_entries_credit_date_key", false},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, "", false},
		{"plain error", errors.New("connection reset"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
