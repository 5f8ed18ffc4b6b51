package exam

import "math"

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// firstIntervalDays and secondIntervalDays are SM-2's fixed first two
	// steps; growth by ease factor only starts from the third review.
	firstIntervalDays  = 1
	secondIntervalDays = 6
)

// QualityFromPercentage discretizes an attempt percentage (0-100) into an
// SM-2 quality grade (0-5). The function is a monotonically non-decreasing
// step function.
func QualityFromPercentage(percentage float64) int {
	switch {
	case percentage >= 90:
		return 5
	case percentage >= 70:
		return 4
	case percentage >= 50:
		return 3
	case percentage >= 30:
		return 2
	case percentage > 0:
		return 1
	default:
		return 0
	}
}

// NextEaseFactor calculates the new ease factor after a review of the given
// quality. Only successful recalls (quality >= 3) adjust the ease factor;
// failures leave it unchanged. The result never drops below MinEaseFactor.
func NextEaseFactor(ef float64, quality int) float64 {
	if ef == 0 {
		ef = DefaultEaseFactor
	}
	if quality < 3 {
		return ef
	}

	q := float64(quality)
	return math.Max(MinEaseFactor, ef+0.1-(5-q)*(0.08+(5-q)*0.02))
}

// NextInterval calculates the next review interval in days. Failed recalls
// reset to one day; successful ones follow the 1 -> 6 -> interval*EF
// progression, truncating to whole days.
func NextInterval(currentInterval int, ef float64, quality int) int {
	if quality < 3 {
		return firstIntervalDays
	}
	if currentInterval <= firstIntervalDays {
		return secondIntervalDays
	}
	return int(float64(currentInterval) * ef)
}
