package domain

import "math"

// PercentChange computes a month-over-month delta in percent, rounded to one
// decimal. Both zero yields 0; growth from zero yields 100.
func PercentChange(current, last float64) float64 {
	if current == 0 && last == 0 {
		return 0
	}
	if last == 0 {
		return 100
	}
	change := (current - last) / last * 100
	return math.Round(change*10) / 10
}
