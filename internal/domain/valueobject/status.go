package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// CreditStatus – immutable value object
// ---------------------------------------------------------------------------

// CreditStatus represents the lifecycle stage of a credit.
type CreditStatus struct {
	value string
}

const (
	creditStatusActive  = "ACTIVE"
	creditStatusClosed  = "CLOSED"
	creditStatusOverdue = "OVERDUE"
)

var (
	CreditStatusActive  = CreditStatus{value: creditStatusActive}
	CreditStatusClosed  = CreditStatus{value: creditStatusClosed}
	CreditStatusOverdue = CreditStatus{value: creditStatusOverdue}
)

var validCreditStatuses = map[string]CreditStatus{
	creditStatusActive:  CreditStatusActive,
	creditStatusClosed:  CreditStatusClosed,
	creditStatusOverdue: CreditStatusOverdue,
}

// NewCreditStatus creates a CreditStatus from a raw string.
func NewCreditStatus(s string) (CreditStatus, error) {
	v, ok := validCreditStatuses[s]
	if !ok {
		return CreditStatus{}, fmt.Errorf("invalid credit status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s CreditStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s CreditStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s CreditStatus) Equal(other CreditStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// PaymentStatus – immutable value object
// ---------------------------------------------------------------------------

// PaymentStatus represents the state of a recorded or proposed payment.
type PaymentStatus struct {
	value string
}

const (
	paymentStatusScheduled = "SCHEDULED"
	paymentStatusOverdue   = "OVERDUE"
	paymentStatusPaid      = "PAID"
	paymentStatusPartial   = "PARTIAL"
	paymentStatusCanceled  = "CANCELED"
)

var (
	PaymentStatusScheduled = PaymentStatus{value: paymentStatusScheduled}
	PaymentStatusOverdue   = PaymentStatus{value: paymentStatusOverdue}
	PaymentStatusPaid      = PaymentStatus{value: paymentStatusPaid}
	PaymentStatusPartial   = PaymentStatus{value: paymentStatusPartial}
	PaymentStatusCanceled  = PaymentStatus{value: paymentStatusCanceled}
)

var validPaymentStatuses = map[string]PaymentStatus{
	paymentStatusScheduled: PaymentStatusScheduled,
	paymentStatusOverdue:   PaymentStatusOverdue,
	paymentStatusPaid:      PaymentStatusPaid,
	paymentStatusPartial:   PaymentStatusPartial,
	paymentStatusCanceled:  PaymentStatusCanceled,
}

// NewPaymentStatus creates a PaymentStatus from a raw string.
func NewPaymentStatus(s string) (PaymentStatus, error) {
	v, ok := validPaymentStatuses[s]
	if !ok {
		return PaymentStatus{}, fmt.Errorf("invalid payment status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s PaymentStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s PaymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s PaymentStatus) Equal(other PaymentStatus) bool { return s.value == other.value }

// Settles reports whether a payment in this status occupies its period.
// Only canceled payments leave the period open.
func (s PaymentStatus) Settles() bool {
	return !s.IsZero() && s.value != paymentStatusCanceled
}

// MarshalText encodes the status as its string value.
func (s PaymentStatus) MarshalText() ([]byte, error) { return []byte(s.value), nil }

// UnmarshalText decodes a status previously produced by MarshalText.
func (s *PaymentStatus) UnmarshalText(b []byte) error {
	v, err := NewPaymentStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
