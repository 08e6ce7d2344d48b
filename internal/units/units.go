package units

import (
	"fmt"
	"sort"
	"strings"
)

// mlPerUnit maps a volume unit to its size in millilitres.
var mlPerUnit = map[string]float64{
	"ml":    1,
	"cl":    10,
	"l":     1000,
	"oz":    29.5735,
	"fl oz": 29.5735,
}

func normalize(unit string) string {
	return strings.Join(strings.Fields(strings.ToLower(unit)), " ")
}

// Known reports whether unit has a conversion factor.
func Known(unit string) bool {
	_, ok := mlPerUnit[normalize(unit)]
	return ok
}

// Supported lists the accepted unit names in sorted order.
func Supported() []string {
	out := make([]string, 0, len(mlPerUnit))
	for u := range mlPerUnit {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// ToML converts amount expressed in unit to millilitres.
func ToML(amount float64, unit string) (float64, error) {
	factor, ok := mlPerUnit[normalize(unit)]
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q (expected one of %s)", unit, strings.Join(Supported(), ", "))
	}
	return amount * factor, nil
}

// FromML converts millilitres back to unit.
func FromML(ml float64, unit string) (float64, error) {
	factor, ok := mlPerUnit[normalize(unit)]
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q (expected one of %s)", unit, strings.Join(Supported(), ", "))
	}
	return ml / factor, nil
}
