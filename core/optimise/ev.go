// Package optimise reallocates each device's daily energy into the most
// desirable half-hour slots using a greedy pass over the score ranking.
// Totals are conserved: energy is shifted in time, never created, dropped
// or exceeded beyond the eligible window's capacity.
package optimise

import (
	"time"

	"github.com/axelenergy/homeflex/core/model"
	"github.com/axelenergy/homeflex/core/score"
)

// EV shifts the vehicle's charge into the best-scoring slots between arrival
// and departure. A departure at or before the arrival wraps the eligible
// window across midnight. Each slot receives at most the charger's half-hour
// capacity, so the allocated total is min(need, window capacity).
//
// Zero eligible slots or a non-positive need yield an all-zero series.
func EV(scores []float64, slots []time.Time, p model.EVParams) []float64 {
	out := make([]float64, len(slots))
	if p.NeedKWh <= 0 {
		return out
	}

	eligible := make(map[int]bool, len(slots))
	for i, s := range slots {
		c := model.ClockOf(s)
		if p.Departure > p.Arrival {
			if c >= p.Arrival && c < p.Departure {
				eligible[i] = true
			}
		} else if c >= p.Arrival || c < p.Departure {
			// Overnight session: arrival to midnight plus midnight to departure.
			eligible[i] = true
		}
	}
	if len(eligible) == 0 {
		return out
	}

	slotKWh := p.SlotCapacityKWh()
	remaining := p.NeedKWh
	for _, i := range score.Rank(scores) {
		if remaining <= 0 {
			break
		}
		if !eligible[i] {
			continue
		}
		charge := slotKWh
		if charge > remaining {
			charge = remaining
		}
		out[i] = charge
		remaining -= charge
	}
	return out
}
