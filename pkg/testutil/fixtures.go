package testutil

import (
	"github.com/google/uuid"
)

// Fixed identifiers for deterministic testing.
var (
	TestTenantID      = "00000000-0000-0000-0000-000000000010"
	TestOtherTenantID = "00000000-0000-0000-0000-000000000011"
)

// NewCreditNumber returns a unique credit number so tests sharing a database
// never collide on the tenant/number key.
func NewCreditNumber() string {
	return "CR-" + uuid.NewString()[:8]
}
