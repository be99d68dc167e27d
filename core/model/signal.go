package model

import (
	"fmt"
	"strings"
	"time"
)

// Goal selects what the desirability score optimises for.
type Goal int

const (
	GoalCheapest Goal = iota
	GoalLowestCarbon
	GoalBalanced
)

// ParseGoal maps a user-facing label to a Goal. Unrecognised labels fall
// back to GoalCheapest; this is a documented fallback, not an error.
func ParseGoal(s string) Goal {
	switch s {
	case "Cheapest energy", "cheapest":
		return GoalCheapest
	case "Lowest carbon", "lowest-carbon":
		return GoalLowestCarbon
	case "Balanced", "balanced":
		return GoalBalanced
	default:
		return GoalCheapest
	}
}

// String returns the user-facing label of the goal.
func (g Goal) String() string {
	switch g {
	case GoalLowestCarbon:
		return "Lowest carbon"
	case GoalBalanced:
		return "Balanced"
	default:
		return "Cheapest energy"
	}
}

// MarshalJSON encodes the goal as its user-facing label.
func (g Goal) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", g.String())), nil
}

// UnmarshalJSON accepts a goal label, applying the cheapest fallback.
func (g *Goal) UnmarshalJSON(b []byte) error {
	*g = ParseGoal(strings.Trim(string(b), `"`))
	return nil
}

// GridPoint carries the grid conditions observed for one half-hour slot.
type GridPoint struct {
	Slot time.Time `json:"timestamp"`
	// PricePence is the unit rate in pence per kWh.
	PricePence float64 `json:"price"`
	// CarbonIntensity is in gCO2 per kWh.
	CarbonIntensity float64 `json:"carbon_intensity"`
	// CarbonIndex is the optional categorical label ("very low", "low", ...).
	CarbonIndex string `json:"carbon_index,omitempty"`
	// WindShare and SolarShare are generation-mix percentages, informational.
	WindShare  float64 `json:"wind_share,omitempty"`
	SolarShare float64 `json:"solar_share,omitempty"`
}

// GridSignal is a price and carbon series aligned to a slot grid. Slots the
// provider had no data for are marked invalid; they are excluded from
// normalisation bounds and rank below every slot that has data.
type GridSignal struct {
	Slots  []time.Time
	Price  []float64
	Carbon []float64
	Index  []string
	Valid  []bool
}

// JoinSignal aligns provider points to the slot grid by timestamp. Points
// that match no slot are dropped; slots that match no point stay invalid.
func JoinSignal(slots []time.Time, points []GridPoint) GridSignal {
	sig := GridSignal{
		Slots:  slots,
		Price:  make([]float64, len(slots)),
		Carbon: make([]float64, len(slots)),
		Index:  make([]string, len(slots)),
		Valid:  make([]bool, len(slots)),
	}
	byTime := make(map[int64]int, len(slots))
	for i, s := range slots {
		byTime[s.Unix()] = i
	}
	for _, p := range points {
		i, ok := byTime[p.Slot.Unix()]
		if !ok {
			continue
		}
		sig.Price[i] = p.PricePence
		sig.Carbon[i] = p.CarbonIntensity
		sig.Index[i] = p.CarbonIndex
		sig.Valid[i] = true
	}
	return sig
}

// HasIndex reports whether any slot carries a categorical carbon index.
func (s GridSignal) HasIndex() bool {
	for i, idx := range s.Index {
		if s.Valid[i] && idx != "" {
			return true
		}
	}
	return false
}

// Len returns the number of slots in the signal.
func (s GridSignal) Len() int { return len(s.Slots) }

// Validate checks the signal's internal shape against its slot grid.
func (s GridSignal) Validate() error {
	n := len(s.Slots)
	if len(s.Price) != n || len(s.Carbon) != n || len(s.Index) != n || len(s.Valid) != n {
		return fmt.Errorf("grid signal series lengths disagree with %d slots", n)
	}
	return nil
}
