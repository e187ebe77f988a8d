package dto

import (
	"fmt"
	"strings"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// methodAliases maps every spelling clients have used for a calculation
// method onto one of the four variants. Keys are lower case with underscores.
var methodAliases = map[string]valueobject.CalculationMethod{
	"classic_annuity":         valueobject.MethodClassicAnnuity,
	"annuity":                 valueobject.MethodClassicAnnuity,
	"classic":                 valueobject.MethodClassicAnnuity,
	"annuity_classic":         valueobject.MethodClassicAnnuity,
	"classic_differentiated":  valueobject.MethodClassicDifferentiated,
	"differentiated":          valueobject.MethodClassicDifferentiated,
	"differentiated_classic":  valueobject.MethodClassicDifferentiated,
	"floating_annuity":        valueobject.MethodFloatingAnnuity,
	"floating":                valueobject.MethodFloatingAnnuity,
	"annuity_floating":        valueobject.MethodFloatingAnnuity,
	"floating_differentiated": valueobject.MethodFloatingDifferentiated,
	"differentiated_floating": valueobject.MethodFloatingDifferentiated,
}

// NormalizeMethod resolves a client supplied method name, including legacy
// aliases, to a CalculationMethod.
func NormalizeMethod(raw string) (valueobject.CalculationMethod, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	m, ok := methodAliases[key]
	if !ok {
		return valueobject.CalculationMethod{}, fmt.Errorf("%w: %q", model.ErrInvalidCalculationMethod, raw)
	}
	return m, nil
}
