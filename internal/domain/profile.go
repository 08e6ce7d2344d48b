package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DefaultProfile is used until the user saves their own.
func DefaultProfile() Profile {
	return Profile{Age: 25, Sex: SexMale, WeightKg: 70, HeightCm: 170}
}

// EliminationRate is the alcohol elimination rate in g/kg/h.
func (s Sex) EliminationRate() float64 {
	if s == SexFemale {
		return 0.085
	}
	return 0.1
}

// BMI returns the body-mass index, kg/m².
func (p Profile) BMI() float64 {
	m := p.HeightCm / 100.0
	return p.WeightKg / (m * m)
}

// DistributionFactor is the BMI-adjusted Widmark r (Searle, 2014).
func (p Profile) DistributionFactor() float64 {
	if p.Sex == SexFemale {
		return 0.9367 - 0.01240*p.BMI()
	}
	return 1.0181 - 0.01213*p.BMI()
}

// Validate checks the profile bounds and reports the first violation. A
// weight and height whose distribution factor is not positive are rejected,
// since no alcohol estimate can be made from them.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		if p.DistributionFactor() <= 0 {
			return profileError("weight_kg", fmt.Sprintf("weight is implausible for a height of %.0f cm (BMI %.0f)", p.HeightCm, p.BMI()))
		}
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	switch fe := fieldErrs[0]; fe.StructField() {
	case "Age":
		return profileError("age", "age must be between 18 and 122 years")
	case "Sex":
		return profileError("sex", fmt.Sprintf("sex must be %q or %q", SexMale, SexFemale))
	case "WeightKg":
		return profileError("weight_kg", "weight must be greater than 0 and at most 500 kg")
	case "HeightCm":
		return profileError("height_cm", "height must be between 50 and 300 cm")
	default:
		return profileError(fe.Field(), fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
