package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// CalculationMethod – closed set of amortization strategies
// ---------------------------------------------------------------------------

// CalculationMethod selects how a credit's schedule is computed. Only the four
// values declared below exist; the zero value is invalid.
type CalculationMethod struct {
	value    string
	floating bool
	annuity  bool
}

const (
	methodClassicAnnuity         = "classic_annuity"
	methodClassicDifferentiated  = "classic_differentiated"
	methodFloatingAnnuity        = "floating_annuity"
	methodFloatingDifferentiated = "floating_differentiated"
)

var (
	MethodClassicAnnuity         = CalculationMethod{value: methodClassicAnnuity, annuity: true}
	MethodClassicDifferentiated  = CalculationMethod{value: methodClassicDifferentiated}
	MethodFloatingAnnuity        = CalculationMethod{value: methodFloatingAnnuity, floating: true, annuity: true}
	MethodFloatingDifferentiated = CalculationMethod{value: methodFloatingDifferentiated, floating: true}
)

var validCalculationMethods = map[string]CalculationMethod{
	methodClassicAnnuity:         MethodClassicAnnuity,
	methodClassicDifferentiated:  MethodClassicDifferentiated,
	methodFloatingAnnuity:        MethodFloatingAnnuity,
	methodFloatingDifferentiated: MethodFloatingDifferentiated,
}

// NewCalculationMethod parses a canonical method name.
func NewCalculationMethod(s string) (CalculationMethod, error) {
	v, ok := validCalculationMethods[s]
	if !ok {
		return CalculationMethod{}, fmt.Errorf("invalid calculation method: %q", s)
	}
	return v, nil
}

// String returns the canonical method name.
func (m CalculationMethod) String() string { return m.value }

// IsZero returns true if the method has not been initialised.
func (m CalculationMethod) IsZero() bool { return m.value == "" }

// Equal returns true when both methods are the same variant.
func (m CalculationMethod) Equal(other CalculationMethod) bool { return m.value == other.value }

// IsFloating reports whether the rate may change during the credit's life.
func (m CalculationMethod) IsFloating() bool { return m.floating }

// IsAnnuity reports whether the method keeps the total payment level.
func (m CalculationMethod) IsAnnuity() bool { return m.annuity }
