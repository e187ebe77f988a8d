package model

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Validation errors (caller-fixable)
// ---------------------------------------------------------------------------

var (
	ErrInvalidRateOrder         = errors.New("rate entries must be strictly increasing by effective date")
	ErrDuplicateRateDate        = fmt.Errorf("%w: duplicate effective date", ErrInvalidRateOrder)
	ErrRateBeforeCreditStart    = errors.New("rate effective date precedes credit start date")
	ErrNoApplicableRate         = errors.New("no rate in effect on date")
	ErrEmptyRateTimeline        = errors.New("rate timeline has no entries")
	ErrFixedRateChange          = errors.New("classic methods accept exactly one rate entry")
	ErrNonPositivePrincipal     = errors.New("principal must be positive")
	ErrNonPositiveRate          = errors.New("rate must be positive")
	ErrNonPositiveTerm          = errors.New("term months must be positive")
	ErrInvalidPaymentDay        = errors.New("payment day must be between 1 and 31")
	ErrInvalidDeferment         = errors.New("deferment months must be non-negative and shorter than the term")
	ErrInvalidCurrency          = errors.New("invalid currency")
	ErrInvalidCalculationMethod = errors.New("invalid calculation method")
	ErrMissingStartDate         = errors.New("start date is required")
	ErrNonContiguousSettlement  = errors.New("settled periods must form a contiguous run starting at period 1")
	ErrTermBeforeSettled        = errors.New("term cannot end before the last settled period")
	ErrCannotAmendSettledPeriod = errors.New("principal, method and start date cannot change once a period is settled")
	ErrRateNotFloating          = errors.New("rate entries can only be added to floating credits")
	ErrRateInSettledHistory     = errors.New("new rate entry must be effective after the last settled due date")
	ErrUnknownPeriod            = errors.New("period is not part of the credit schedule")
	ErrInvalidDate              = errors.New("invalid calendar date")
	ErrInvalidRequest           = errors.New("invalid request")
)

var validationErrors = []error{
	ErrInvalidRateOrder,
	ErrRateBeforeCreditStart,
	ErrNoApplicableRate,
	ErrEmptyRateTimeline,
	ErrFixedRateChange,
	ErrNonPositivePrincipal,
	ErrNonPositiveRate,
	ErrNonPositiveTerm,
	ErrInvalidPaymentDay,
	ErrInvalidDeferment,
	ErrInvalidCurrency,
	ErrInvalidCalculationMethod,
	ErrMissingStartDate,
	ErrNonContiguousSettlement,
	ErrTermBeforeSettled,
	ErrCannotAmendSettledPeriod,
	ErrRateNotFloating,
	ErrRateInSettledHistory,
	ErrUnknownPeriod,
	ErrInvalidDate,
	ErrInvalidRequest,
}

// IsValidation reports whether err was caused by input the caller can fix.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Not-found errors
// ---------------------------------------------------------------------------

var (
	ErrCreditNotFound = errors.New("credit not found")
)

// IsNotFound reports whether err signals a missing credit.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCreditNotFound)
}

// ---------------------------------------------------------------------------
// Conflict errors
// ---------------------------------------------------------------------------

var (
	// ErrConcurrentModification is returned when a credit changed between
	// read and write.
	ErrConcurrentModification = errors.New("credit was modified concurrently")
	ErrDuplicateCreditNumber  = errors.New("credit number already exists for tenant")
)

// IsConflict reports whether err is an optimistic-locking failure or a
// uniqueness clash with stored state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConcurrentModification) || errors.Is(err, ErrDuplicateCreditNumber)
}

// ---------------------------------------------------------------------------
// Computation invariant failures (defects, never retried)
// ---------------------------------------------------------------------------

// ErrScheduleInvariant is the root of every InvariantError.
var ErrScheduleInvariant = errors.New("schedule invariant violated")

// Invariant names reported by InvariantError.
const (
	InvariantTotalComposition = "total_equals_principal_plus_interest"
	InvariantBalanceMonotonic = "remaining_balance_non_increasing"
	InvariantFinalBalanceZero = "final_balance_zero"
	InvariantPrincipalSum     = "principal_sum_equals_principal"
	InvariantNonNegative      = "non_negative_amounts"
)

// InvariantError pinpoints the period and rule a computed schedule broke.
type InvariantError struct {
	Period    int
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: period %d: %s: %s", ErrScheduleInvariant, e.Period, e.Invariant, e.Detail)
}

// Unwrap lets errors.Is match ErrScheduleInvariant.
func (e *InvariantError) Unwrap() error {
	return ErrScheduleInvariant
}
