package leaderboard

import (
	"fmt"
	"math"
)

// Format controls how a ranked statistic is rendered
type Format int

const (
	// FormatPlain renders per-game counting stats: 27.25 -> "27.3"
	FormatPlain Format = iota
	// FormatPercent renders ratios as percentages: 0.478 -> "47.8%"
	FormatPercent
)

func (f Format) String() string {
	if f == FormatPercent {
		return "percent"
	}
	return "plain"
}

// Apply formats v with one decimal place, rounding half away from zero
func (f Format) Apply(v float64) string {
	if f == FormatPercent {
		return fmt.Sprintf("%.1f%%", Round1(v*100))
	}
	return fmt.Sprintf("%.1f", Round1(v))
}

// Round1 rounds to one decimal place, half away from zero.
// fmt alone rounds half to even, which would render 27.25 as "27.2".
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
