package estimate

// BACLevel buckets a BAC reading for display.
type BACLevel string

const (
	BACSober    BACLevel = "sober"
	BACMild     BACLevel = "mild"
	BACModerate BACLevel = "moderate"
	BACHigh     BACLevel = "high"
)

// ClassifyBAC maps a BAC in ‰ to its band.
func ClassifyBAC(bac float64) BACLevel {
	switch {
	case bac < 0.2:
		return BACSober
	case bac < 0.5:
		return BACMild
	case bac < 0.8:
		return BACModerate
	default:
		return BACHigh
	}
}

// LimitLevel describes progress towards a daily limit.
type LimitLevel string

const (
	LimitLow      LimitLevel = "low"
	LimitElevated LimitLevel = "elevated"
	LimitOver     LimitLevel = "over"
)

// LimitProgress returns consumed/limit and its band: below 50 % low, below
// 80 % elevated, otherwise over.
func LimitProgress(consumed, limit float64) (float64, LimitLevel) {
	if limit <= 0 {
		return 0, LimitOver
	}
	ratio := consumed / limit
	switch {
	case ratio < 0.5:
		return ratio, LimitLow
	case ratio < 0.8:
		return ratio, LimitElevated
	default:
		return ratio, LimitOver
	}
}
