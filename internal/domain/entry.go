package domain

import (
	"fmt"
	"math"

	"github.com/vbonduro/drinklog/internal/units"
)

const (
	// MaxDrinkML is the largest single drink accepted, in millilitres.
	MaxDrinkML = 2500.0
	// MaxAlcoholPercentage is the upper bound for ABV.
	MaxAlcoholPercentage = 100.0
	// MaxCaffeineMg is the upper bound for the caffeine content of one drink.
	MaxCaffeineMg = 250.0

	// EthanolDensity is grams per millilitre of pure ethanol.
	EthanolDensity = 0.789
	// StandardDrinkGrams is the ethanol mass of one standard drink.
	StandardDrinkGrams = 14.0
)

// AmountML returns the drink volume in millilitres, or 0 for an unknown unit.
func (e Entry) AmountML() float64 {
	ml, err := units.ToML(e.Amount, e.Unit)
	if err != nil {
		return 0
	}
	return ml
}

// AlcoholGrams is the mass of ethanol in the drink.
func (e Entry) AlcoholGrams() float64 {
	if e.Category != CategoryAlcohol || e.AlcoholPercentage == nil {
		return 0
	}
	return e.AmountML() * (*e.AlcoholPercentage / 100.0) * EthanolDensity
}

// StandardDrinks expresses AlcoholGrams in 14 g units.
func (e Entry) StandardDrinks() float64 {
	return e.AlcoholGrams() / StandardDrinkGrams
}

// Caffeine returns the caffeine content in mg, 0 when unset.
func (e Entry) Caffeine() float64 {
	if e.Category != CategoryCaffeine || e.CaffeineMg == nil {
		return 0
	}
	return *e.CaffeineMg
}

// Validate checks the entry against the accepted ranges. The returned error is
// a *ValidationError whose message is suitable for display.
func (e Entry) Validate() error {
	if !e.Category.Valid() {
		return entryError("category", fmt.Sprintf("unknown drink category %q", e.Category))
	}

	ml, err := units.ToML(e.Amount, e.Unit)
	if err != nil {
		return entryError("unit", err.Error())
	}
	if ml > MaxDrinkML {
		maxInUnit, _ := units.FromML(MaxDrinkML, e.Unit)
		return entryError("amount", fmt.Sprintf("drink size cannot exceed %.0f %s", maxInUnit, e.Unit))
	}
	if !(ml > 0) {
		return entryError("amount", "drink size must be greater than 0")
	}

	switch e.Category {
	case CategoryAlcohol:
		if e.CaffeineMg != nil {
			return entryError("caffeine_mg", "alcohol entries cannot carry caffeine content")
		}
		if p := e.AlcoholPercentage; p != nil {
			if math.IsNaN(*p) {
				return entryError("alcohol_percentage", "alcohol percentage must be a number")
			}
			if *p > MaxAlcoholPercentage {
				return entryError("alcohol_percentage", fmt.Sprintf("alcohol percentage cannot exceed %.0f%%", MaxAlcoholPercentage))
			}
			if *p < 0 {
				return entryError("alcohol_percentage", "alcohol percentage cannot be negative")
			}
		}
	case CategoryCaffeine:
		if e.AlcoholPercentage != nil {
			return entryError("alcohol_percentage", "caffeine entries cannot carry an alcohol percentage")
		}
		if c := e.CaffeineMg; c != nil {
			if math.IsNaN(*c) {
				return entryError("caffeine_mg", "caffeine content must be a number")
			}
			if *c > MaxCaffeineMg {
				return entryError("caffeine_mg", fmt.Sprintf("caffeine content cannot exceed %.0fmg", MaxCaffeineMg))
			}
			if *c < 0 {
				return entryError("caffeine_mg", "caffeine content cannot be negative")
			}
		}
	}
	return nil
}

// ToEntry turns a catalog drink into an unsaved ledger entry measured in ml.
func (d CatalogDrink) ToEntry() Entry {
	e := Entry{
		Category: d.Category,
		Name:     d.Name,
		Amount:   d.VolumeML,
		Unit:     "ml",
	}
	switch d.Category {
	case CategoryAlcohol:
		e.AlcoholPercentage = copyFloat(d.AlcoholPercentage)
	case CategoryCaffeine:
		e.CaffeineMg = copyFloat(d.CaffeineMg)
	}
	return e
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
