package service

import (
	"time"

	"github.com/vbonduro/drinklog/internal/domain"
	"github.com/vbonduro/drinklog/internal/estimate"
)

// AlcoholStatus summarises the last 24 hours of alcohol intake.
type AlcoholStatus struct {
	BAC            float64             `json:"bac_permille"`
	Level          estimate.BACLevel   `json:"level"`
	StandardDrinks float64             `json:"standard_drinks"`
	DailyLimit     float64             `json:"daily_limit"`
	LimitProgress  float64             `json:"limit_progress"`
	LimitLevel     estimate.LimitLevel `json:"limit_level"`
	Drinks         int                 `json:"drinks"`
	SoberAt        *time.Time          `json:"sober_at,omitempty"`
}

// CaffeineStatus summarises today's caffeine intake.
type CaffeineStatus struct {
	LevelMg       float64             `json:"level_mg"`
	TotalMg       float64             `json:"total_mg"`
	DailyLimitMg  float64             `json:"daily_limit_mg"`
	LimitProgress float64             `json:"limit_progress"`
	LimitLevel    estimate.LimitLevel `json:"limit_level"`
	HalfLifeHours float64             `json:"half_life_hours"`
	Drinks        int                 `json:"drinks"`
	CleanAt       *time.Time          `json:"clean_at,omitempty"`
}

// BAC returns the current blood alcohol estimate in ‰.
func (l *Ledger) BAC() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return estimate.BAC(l.entries, l.profile, l.now())
}

// SoberTime returns when BAC is projected to reach zero. ok is false when
// already sober.
func (l *Ledger) SoberTime() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return estimate.SoberTime(l.entries, l.profile, l.now())
}

// Caffeine returns the estimated caffeine in the body in mg.
func (l *Ledger) Caffeine() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return estimate.CaffeineLevel(l.entries, l.profile, l.now(), l.loc)
}

// CleanTime returns when caffeine is projected to fall to 5 mg. ok is false
// when already below it.
func (l *Ledger) CleanTime() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return estimate.CleanTime(l.entries, l.profile, l.now(), l.loc)
}

func (l *Ledger) AlcoholStatus() AlcoholStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bac := estimate.BAC(l.entries, l.profile, now)
	drinks := estimate.TotalStandardDrinks(l.entries, now)
	progress, level := estimate.LimitProgress(drinks, estimate.DailyStandardDrinkLimit)

	st := AlcoholStatus{
		BAC:            bac,
		Level:          estimate.ClassifyBAC(bac),
		StandardDrinks: drinks,
		DailyLimit:     estimate.DailyStandardDrinkLimit,
		LimitProgress:  progress,
		LimitLevel:     level,
		Drinks:         len(estimate.RecentAlcohol(l.entries, now)),
	}
	if t, ok := estimate.SoberTime(l.entries, l.profile, now); ok {
		st.SoberAt = &t
	}
	return st
}

func (l *Ledger) CaffeineStatus() CaffeineStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	total := estimate.TotalCaffeineToday(l.entries, now, l.loc)
	progress, level := estimate.LimitProgress(total, estimate.DailyCaffeineLimitMg)

	st := CaffeineStatus{
		LevelMg:       estimate.CaffeineLevel(l.entries, l.profile, now, l.loc),
		TotalMg:       total,
		DailyLimitMg:  estimate.DailyCaffeineLimitMg,
		LimitProgress: progress,
		LimitLevel:    level,
		HalfLifeHours: estimate.CaffeineHalfLife(l.profile.Age),
		Drinks:        len(estimate.TodayCaffeine(l.entries, now, l.loc)),
	}
	if t, ok := estimate.CleanTime(l.entries, l.profile, now, l.loc); ok {
		st.CleanAt = &t
	}
	return st
}

func (l *Ledger) dayRange() domain.TimeRange {
	return estimate.DayRange(l.now(), l.loc)
}
