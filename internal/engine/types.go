package engine

import "strings"

// Rarity tiers for reward cards, stored as strings on the card records.
type Rarity string

const (
	RarityN   Rarity = "N"
	RarityR   Rarity = "R"
	RaritySR  Rarity = "SR"
	RaritySSR Rarity = "SSR"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityN, RarityR, RaritySR, RaritySSR:
		return true
	default:
		return false
	}
}

// ParseRarity normalizes stored/user input; anything unrecognized is N.
func ParseRarity(input string) Rarity {
	r := Rarity(strings.ToUpper(strings.TrimSpace(input)))
	if r.IsValid() {
		return r
	}
	return RarityN
}

// Metric identifies which live value an achievement is measured against.
type Metric string

const (
	MetricTotalCompleted Metric = "totalCompleted"
	MetricStreak         Metric = "streak"
	MetricStars          Metric = "stars"
	MetricBalance        Metric = "balance"
)

func (m Metric) IsValid() bool {
	switch m {
	case MetricTotalCompleted, MetricStreak, MetricStars, MetricBalance:
		return true
	default:
		return false
	}
}

// Metrics holds the four live values the achievement evaluator compares
// against achievement targets.
type Metrics struct {
	TotalCompleted int
	Streak         int
	Stars          int
	Balance        int
}

// Value returns the metric's current value; unknown metrics read as zero so
// a malformed achievement definition can never unlock.
func (m Metrics) Value(metric Metric) int {
	switch metric {
	case MetricTotalCompleted:
		return m.TotalCompleted
	case MetricStreak:
		return m.Streak
	case MetricStars:
		return m.Stars
	case MetricBalance:
		return m.Balance
	default:
		return 0
	}
}
