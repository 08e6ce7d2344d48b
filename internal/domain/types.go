package domain

import "time"

// Category distinguishes the two kinds of tracked drinks.
type Category string

const (
	CategoryAlcohol  Category = "alcohol"
	CategoryCaffeine Category = "caffeine"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryAlcohol || c == CategoryCaffeine
}

// Sex selects the physiological constants used by the alcohol estimates.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Entry is a single logged drink.
type Entry struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`

	// AlcoholPercentage is set only for alcohol entries.
	AlcoholPercentage *float64 `json:"alcohol_percentage,omitempty"`
	// CaffeineMg is set only for caffeine entries.
	CaffeineMg *float64 `json:"caffeine_mg,omitempty"`
}

// Profile is the user data the estimates depend on.
type Profile struct {
	Age      int     `json:"age" validate:"gte=18,lte=122"`
	Sex      Sex     `json:"sex" validate:"oneof=male female"`
	WeightKg float64 `json:"weight_kg" validate:"gt=0,lte=500"`
	HeightCm float64 `json:"height_cm" validate:"gte=50,lte=300"`
}

// CatalogDrink is a reference drink offered for quick logging.
type CatalogDrink struct {
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name"`
	ImageName         string   `json:"image_name"`
	VolumeML          float64  `json:"volume_ml"`
	Category          Category `json:"category"`
	AlcoholPercentage *float64 `json:"alcohol_percentage,omitempty"`
	CaffeineMg        *float64 `json:"caffeine_mg,omitempty"`
}

// TimeRange is an inclusive [From, To] interval.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies within the range, both ends included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}
