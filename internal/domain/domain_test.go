package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestEntryAlcoholGrams(t *testing.T) {
	e := Entry{Category: CategoryAlcohol, Amount: 500, Unit: "ml", AlcoholPercentage: ptr(5)}
	assert.InDelta(t, 19.725, e.AlcoholGrams(), 1e-9)
	assert.InDelta(t, 19.725/14.0, e.StandardDrinks(), 1e-9)
	assert.Zero(t, e.Caffeine())
}

func TestEntryAlcoholGramsConvertsUnits(t *testing.T) {
	e := Entry{Category: CategoryAlcohol, Amount: 50, Unit: "cl", AlcoholPercentage: ptr(5)}
	assert.InDelta(t, 19.725, e.AlcoholGrams(), 1e-9)
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		field   string
		message string
	}{
		{
			name:  "valid beer",
			entry: Entry{Category: CategoryAlcohol, Amount: 500, Unit: "ml", AlcoholPercentage: ptr(5)},
		},
		{
			name:  "valid espresso",
			entry: Entry{Category: CategoryCaffeine, Amount: 30, Unit: "ml", CaffeineMg: ptr(70)},
		},
		{
			name:    "zero amount",
			entry:   Entry{Category: CategoryCaffeine, Amount: 0, Unit: "ml", CaffeineMg: ptr(70)},
			field:   "amount",
			message: "drink size must be greater than 0",
		},
		{
			name:    "too large in ml",
			entry:   Entry{Category: CategoryAlcohol, Amount: 2501, Unit: "ml", AlcoholPercentage: ptr(5)},
			field:   "amount",
			message: "drink size cannot exceed 2500 ml",
		},
		{
			name:    "too large in oz",
			entry:   Entry{Category: CategoryAlcohol, Amount: 100, Unit: "oz", AlcoholPercentage: ptr(5)},
			field:   "amount",
			message: "drink size cannot exceed 85 oz",
		},
		{
			name:  "ceiling is inclusive",
			entry: Entry{Category: CategoryAlcohol, Amount: 250, Unit: "cl", AlcoholPercentage: ptr(5)},
		},
		{
			name:    "abv over 100",
			entry:   Entry{Category: CategoryAlcohol, Amount: 40, Unit: "ml", AlcoholPercentage: ptr(101)},
			field:   "alcohol_percentage",
			message: "alcohol percentage cannot exceed 100%",
		},
		{
			name:    "negative abv",
			entry:   Entry{Category: CategoryAlcohol, Amount: 40, Unit: "ml", AlcoholPercentage: ptr(-1)},
			field:   "alcohol_percentage",
			message: "alcohol percentage cannot be negative",
		},
		{
			name:    "caffeine over 250",
			entry:   Entry{Category: CategoryCaffeine, Amount: 500, Unit: "ml", CaffeineMg: ptr(251)},
			field:   "caffeine_mg",
			message: "caffeine content cannot exceed 250mg",
		},
		{
			name:    "negative caffeine",
			entry:   Entry{Category: CategoryCaffeine, Amount: 500, Unit: "ml", CaffeineMg: ptr(-5)},
			field:   "caffeine_mg",
			message: "caffeine content cannot be negative",
		},
		{
			name:    "alcohol with caffeine",
			entry:   Entry{Category: CategoryAlcohol, Amount: 500, Unit: "ml", AlcoholPercentage: ptr(5), CaffeineMg: ptr(10)},
			field:   "caffeine_mg",
			message: "alcohol entries cannot carry caffeine content",
		},
		{
			name:    "caffeine with abv",
			entry:   Entry{Category: CategoryCaffeine, Amount: 500, Unit: "ml", AlcoholPercentage: ptr(5)},
			field:   "alcohol_percentage",
			message: "caffeine entries cannot carry an alcohol percentage",
		},
		{
			name:    "nan amount",
			entry:   Entry{Category: CategoryAlcohol, Amount: math.NaN(), Unit: "ml", AlcoholPercentage: ptr(5)},
			field:   "amount",
			message: "drink size must be greater than 0",
		},
		{
			name:    "nan abv",
			entry:   Entry{Category: CategoryAlcohol, Amount: 40, Unit: "ml", AlcoholPercentage: ptr(math.NaN())},
			field:   "alcohol_percentage",
			message: "alcohol percentage must be a number",
		},
		{
			name:    "nan caffeine",
			entry:   Entry{Category: CategoryCaffeine, Amount: 30, Unit: "ml", CaffeineMg: ptr(math.NaN())},
			field:   "caffeine_mg",
			message: "caffeine content must be a number",
		},
		{
			name:  "unknown category",
			entry: Entry{Category: "water", Amount: 500, Unit: "ml"},
			field: "category",
		},
		{
			name:  "unknown unit",
			entry: Entry{Category: CategoryCaffeine, Amount: 1, Unit: "pint", CaffeineMg: ptr(5)},
			field: "unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEntry))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, verr.Message)
			}
		})
	}
}

func TestDefaultProfileDistributionFactor(t *testing.T) {
	p := DefaultProfile()
	bmi := 70 / (1.7 * 1.7)
	assert.InDelta(t, bmi, p.BMI(), 1e-9)
	assert.InDelta(t, 1.0181-0.01213*bmi, p.DistributionFactor(), 1e-9)
	assert.InDelta(t, 0.1, p.Sex.EliminationRate(), 1e-12)
}

func TestFemaleProfileConstants(t *testing.T) {
	p := Profile{Age: 30, Sex: SexFemale, WeightKg: 60, HeightCm: 165}
	bmi := 60 / (1.65 * 1.65)
	assert.InDelta(t, 0.9367-0.01240*bmi, p.DistributionFactor(), 1e-9)
	assert.InDelta(t, 0.085, p.Sex.EliminationRate(), 1e-12)
}

func TestProfileValidate(t *testing.T) {
	require.NoError(t, DefaultProfile().Validate())

	tests := []struct {
		name   string
		mutate func(*Profile)
		field  string
	}{
		{name: "too young", mutate: func(p *Profile) { p.Age = 17 }, field: "age"},
		{name: "too old", mutate: func(p *Profile) { p.Age = 123 }, field: "age"},
		{name: "unknown sex", mutate: func(p *Profile) { p.Sex = "other" }, field: "sex"},
		{name: "zero weight", mutate: func(p *Profile) { p.WeightKg = 0 }, field: "weight_kg"},
		{name: "zero height", mutate: func(p *Profile) { p.HeightCm = 0 }, field: "height_cm"},
		{name: "one centimetre tall", mutate: func(p *Profile) { p.HeightCm = 1 }, field: "height_cm"},
		{
			name: "negative distribution factor",
			mutate: func(p *Profile) {
				p.Sex, p.WeightKg, p.HeightCm = SexFemale, 150, 140
			},
			field: "weight_kg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidProfile))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestProfileValidateKeepsDistributionFactorPositive(t *testing.T) {
	p := Profile{Age: 30, Sex: SexMale, WeightKg: 150, HeightCm: 140}
	require.NoError(t, p.Validate())
	assert.Greater(t, p.DistributionFactor(), 0.0)

	p.Sex = SexFemale
	assert.LessOrEqual(t, p.DistributionFactor(), 0.0)
	assert.ErrorIs(t, p.Validate(), ErrInvalidProfile)
}

func TestCatalogDrinkToEntry(t *testing.T) {
	d := CatalogDrink{Name: "Red Bull", VolumeML: 250, Category: CategoryCaffeine, CaffeineMg: ptr(80)}
	e := d.ToEntry()
	assert.Equal(t, CategoryCaffeine, e.Category)
	assert.Equal(t, "ml", e.Unit)
	assert.Equal(t, 250.0, e.Amount)
	require.NotNil(t, e.CaffeineMg)
	assert.Equal(t, 80.0, *e.CaffeineMg)
	assert.Nil(t, e.AlcoholPercentage)
	assert.NoError(t, e.Validate())

	*d.CaffeineMg = 1
	assert.Equal(t, 80.0, *e.CaffeineMg)
}
