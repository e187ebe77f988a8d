package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/event"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

// ---------------------------------------------------------------------------
// CreditTerms
// ---------------------------------------------------------------------------

// CreditTerms are the inputs that determine a credit's schedule.
type CreditTerms struct {
	Principal       decimal.Decimal
	Currency        money.Currency
	Method          valueobject.CalculationMethod
	StartDate       valueobject.Date
	PaymentDay      int
	TermMonths      int
	DefermentMonths int
}

// Validate checks the terms without looking at rates.
func (t CreditTerms) Validate() error {
	if !t.Principal.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositivePrincipal, t.Principal)
	}
	if t.Currency.IsZero() {
		return ErrInvalidCurrency
	}
	if t.Method.IsZero() {
		return ErrInvalidCalculationMethod
	}
	if t.StartDate.IsZero() {
		return ErrMissingStartDate
	}
	if t.TermMonths <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveTerm, t.TermMonths)
	}
	if t.PaymentDay < 1 || t.PaymentDay > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidPaymentDay, t.PaymentDay)
	}
	if t.DefermentMonths < 0 || t.DefermentMonths >= t.TermMonths {
		return fmt.Errorf("%w: %d of %d", ErrInvalidDeferment, t.DefermentMonths, t.TermMonths)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Credit aggregate root
// ---------------------------------------------------------------------------

// Credit is an immutable aggregate. Mutations return a new copy.
type Credit struct {
	id           string
	tenantID     string
	number       string
	terms        CreditTerms
	status       valueobject.CreditStatus
	notes        string
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewCredit registers a credit in ACTIVE status.
func NewCredit(tenantID, number string, terms CreditTerms, notes string, now time.Time) (Credit, error) {
	if tenantID == "" {
		return Credit{}, fmt.Errorf("%w: tenant ID is required", ErrInvalidRequest)
	}
	if number == "" {
		return Credit{}, fmt.Errorf("%w: credit number is required", ErrInvalidRequest)
	}
	if err := terms.Validate(); err != nil {
		return Credit{}, err
	}

	id := uuid.New().String()
	c := Credit{
		id:        id,
		tenantID:  tenantID,
		number:    number,
		terms:     terms,
		status:    valueobject.CreditStatusActive,
		notes:     notes,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}
	c.domainEvents = append(c.domainEvents, event.NewCreditCreated(
		id, tenantID, number,
		terms.Principal, terms.Currency.Code(), terms.Method.String(), terms.StartDate.String(),
		terms.TermMonths,
	))
	return c, nil
}

// ReconstructCredit rebuilds a Credit aggregate from persistence.
func ReconstructCredit(
	id, tenantID, number string,
	terms CreditTerms,
	status valueobject.CreditStatus,
	notes string,
	version int,
	createdAt, updatedAt time.Time,
) Credit {
	return Credit{
		id:        id,
		tenantID:  tenantID,
		number:    number,
		terms:     terms,
		status:    status,
		notes:     notes,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Amendments
// ---------------------------------------------------------------------------

// Amendment lists the fields a caller wants to change; nil means unchanged.
type Amendment struct {
	Principal       *decimal.Decimal
	Method          *valueobject.CalculationMethod
	StartDate       *valueobject.Date
	PaymentDay      *int
	TermMonths      *int
	DefermentMonths *int
	Notes           *string
}

// TouchesLockedTerms reports whether the amendment changes a field that is
// frozen once a period has been settled.
func (a Amendment) TouchesLockedTerms(current CreditTerms) bool {
	if a.Principal != nil && !a.Principal.Equal(current.Principal) {
		return true
	}
	if a.Method != nil && !a.Method.Equal(current.Method) {
		return true
	}
	if a.StartDate != nil && !a.StartDate.Equal(current.StartDate) {
		return true
	}
	return false
}

// Amend applies an amendment. termsLocked must be true when any period of the
// credit already has a settling payment; in that case principal, method and
// start date are rejected with ErrCannotAmendSettledPeriod.
func (c Credit) Amend(a Amendment, termsLocked bool, now time.Time) (Credit, error) {
	if termsLocked && a.TouchesLockedTerms(c.terms) {
		return c, ErrCannotAmendSettledPeriod
	}

	next := c
	if a.Principal != nil {
		next.terms.Principal = *a.Principal
	}
	if a.Method != nil {
		next.terms.Method = *a.Method
	}
	if a.StartDate != nil {
		next.terms.StartDate = *a.StartDate
	}
	if a.PaymentDay != nil {
		next.terms.PaymentDay = *a.PaymentDay
	}
	if a.TermMonths != nil {
		next.terms.TermMonths = *a.TermMonths
	}
	if a.DefermentMonths != nil {
		next.terms.DefermentMonths = *a.DefermentMonths
	}
	if a.Notes != nil {
		next.notes = *a.Notes
	}
	if err := next.terms.Validate(); err != nil {
		return c, err
	}

	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCreditTermsAmended(
		c.id, c.tenantID, next.terms.PaymentDay, next.terms.TermMonths, next.terms.DefermentMonths,
	))
	return next, nil
}

// Record appends an externally built event, such as a schedule recomputation,
// to the aggregate's pending events.
func (c Credit) Record(evt event.DomainEvent) Credit {
	next := c
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, evt)
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Credit) ID() string                            { return c.id }
func (c Credit) TenantID() string                      { return c.tenantID }
func (c Credit) Number() string                        { return c.number }
func (c Credit) Terms() CreditTerms                    { return c.terms }
func (c Credit) Principal() decimal.Decimal            { return c.terms.Principal }
func (c Credit) Currency() money.Currency              { return c.terms.Currency }
func (c Credit) Method() valueobject.CalculationMethod { return c.terms.Method }
func (c Credit) StartDate() valueobject.Date           { return c.terms.StartDate }
func (c Credit) Status() valueobject.CreditStatus      { return c.status }
func (c Credit) Notes() string                         { return c.notes }
func (c Credit) Version() int                          { return c.version }
func (c Credit) CreatedAt() time.Time                  { return c.createdAt }
func (c Credit) UpdatedAt() time.Time                  { return c.updatedAt }
func (c Credit) DomainEvents() []event.DomainEvent     { return c.domainEvents }

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(src))
	copy(out, src)
	return out
}
