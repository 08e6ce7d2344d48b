// Package estimate holds the closed-form alcohol and caffeine models. Every
// function is pure: callers pass the entries, the profile and the current time.
package estimate

import (
	"math"
	"time"

	"github.com/vbonduro/drinklog/internal/domain"
)

const (
	// AlcoholWindow is how far back alcohol entries count towards BAC.
	AlcoholWindow = 24 * time.Hour
	// SoberRatePerHour is the BAC decline used for the sober-time estimate, in ‰/h.
	SoberRatePerHour = 0.15
	// CleanThresholdMg is the caffeine level considered "clean".
	CleanThresholdMg = 5.0

	// DailyStandardDrinkLimit and DailyCaffeineLimitMg are the recommended daily limits.
	DailyStandardDrinkLimit = 4.0
	DailyCaffeineLimitMg    = 400.0
)

// RecentAlcohol returns the alcohol entries no older than AlcoholWindow.
func RecentAlcohol(entries []domain.Entry, now time.Time) []domain.Entry {
	from := now.Add(-AlcoholWindow)
	out := make([]domain.Entry, 0)
	for _, e := range entries {
		if e.Category == domain.CategoryAlcohol && !e.Timestamp.Before(from) {
			out = append(out, e)
		}
	}
	return out
}

// DayRange returns the calendar day containing now in loc.
func DayRange(now time.Time, loc *time.Location) domain.TimeRange {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return domain.TimeRange{From: start, To: end}
}

// TodayCaffeine returns the caffeine entries logged on now's calendar day.
func TodayCaffeine(entries []domain.Entry, now time.Time, loc *time.Location) []domain.Entry {
	day := DayRange(now, loc)
	out := make([]domain.Entry, 0)
	for _, e := range entries {
		if e.Category == domain.CategoryCaffeine && day.Contains(e.Timestamp) {
			out = append(out, e)
		}
	}
	return out
}

// TotalAlcoholGrams sums the ethanol mass of the given entries.
func TotalAlcoholGrams(entries []domain.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.AlcoholGrams()
	}
	return total
}

// TotalStandardDrinks sums the standard drinks logged in the alcohol window.
func TotalStandardDrinks(entries []domain.Entry, now time.Time) float64 {
	var total float64
	for _, e := range RecentAlcohol(entries, now) {
		total += e.StandardDrinks()
	}
	return total
}

// PeakBAC is the BAC in ‰ for the window's alcohol with no elimination applied.
func PeakBAC(entries []domain.Entry, p domain.Profile, now time.Time) float64 {
	recent := RecentAlcohol(entries, now)
	if len(recent) == 0 {
		return 0
	}
	return widmark(TotalAlcoholGrams(recent), p)
}

// BAC estimates the current blood alcohol concentration in ‰.
func BAC(entries []domain.Entry, p domain.Profile, now time.Time) float64 {
	recent := RecentAlcohol(entries, now)
	if len(recent) == 0 {
		return 0
	}
	grams := TotalAlcoholGrams(recent)

	first := recent[0].Timestamp
	for _, e := range recent[1:] {
		if e.Timestamp.Before(first) {
			first = e.Timestamp
		}
	}
	hours := wholeMinutes(now.Sub(first)) / 60.0
	metabolized := p.WeightKg * p.Sex.EliminationRate() * hours

	return widmark(math.Max(0, grams-metabolized), p)
}

// SoberTime is when BAC is expected to reach zero. ok is false when the user is
// already sober.
func SoberTime(entries []domain.Entry, p domain.Profile, now time.Time) (t time.Time, ok bool) {
	recent := RecentAlcohol(entries, now)
	if len(recent) == 0 {
		return time.Time{}, false
	}
	// The peak uses the same BMI-adjusted r as BAC, so the two agree on when
	// the level reaches zero.
	peak := widmark(TotalAlcoholGrams(recent), p)
	sober := latest(recent).Add(hoursToDuration(peak / SoberRatePerHour))
	if !sober.After(now) {
		return time.Time{}, false
	}
	return sober, true
}

// CaffeineHalfLife is the age-dependent half-life, 5 × 1.008^(age−20) hours.
func CaffeineHalfLife(age int) float64 {
	return 5.0 * math.Pow(1.008, float64(age-20))
}

// CaffeineLevel returns the caffeine remaining in mg from today's entries.
func CaffeineLevel(entries []domain.Entry, p domain.Profile, now time.Time, loc *time.Location) float64 {
	today := TodayCaffeine(entries, now, loc)
	if len(today) == 0 {
		return 0
	}
	k := math.Ln2 / CaffeineHalfLife(p.Age)
	var level float64
	for _, e := range today {
		hours := math.Max(0, now.Sub(e.Timestamp).Hours())
		level += e.Caffeine() * math.Exp(-k*hours)
	}
	return math.Max(0, level)
}

// TotalCaffeineToday sums the caffeine consumed on now's calendar day.
func TotalCaffeineToday(entries []domain.Entry, now time.Time, loc *time.Location) float64 {
	var total float64
	for _, e := range TodayCaffeine(entries, now, loc) {
		total += e.Caffeine()
	}
	return total
}

// CleanTime is when the caffeine level drops below CleanThresholdMg. ok is
// false when the user is already clean.
func CleanTime(entries []domain.Entry, p domain.Profile, now time.Time, loc *time.Location) (t time.Time, ok bool) {
	today := TodayCaffeine(entries, now, loc)
	if len(today) == 0 {
		return time.Time{}, false
	}
	total := TotalCaffeineToday(entries, now, loc)
	if total <= CleanThresholdMg {
		return time.Time{}, false
	}
	hours := math.Log(total/CleanThresholdMg) * CaffeineHalfLife(p.Age) / math.Ln2
	clean := latest(today).Add(hoursToDuration(hours))
	if !clean.After(now) {
		return time.Time{}, false
	}
	return clean, true
}

func widmark(grams float64, p domain.Profile) float64 {
	bodyGrams := p.WeightKg * 1000
	r := p.DistributionFactor()
	if bodyGrams <= 0 || r <= 0 {
		return 0
	}
	return math.Max(0, grams/(bodyGrams*r)*1000)
}

func latest(entries []domain.Entry) time.Time {
	t := entries[0].Timestamp
	for _, e := range entries[1:] {
		if e.Timestamp.After(t) {
			t = e.Timestamp
		}
	}
	return t
}

// wholeMinutes truncates d to whole minutes, never negative.
func wholeMinutes(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return math.Floor(d.Minutes())
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
