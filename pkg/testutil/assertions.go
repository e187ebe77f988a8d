package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertDecimalEqual compares decimals by value, so "100" equals "100.00".
func AssertDecimalEqual(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	w := decimal.RequireFromString(want)
	if !w.Equal(got) {
		assert.Fail(t, "decimal mismatch: want "+w.String()+", got "+got.String(), msgAndArgs...)
	}
}
