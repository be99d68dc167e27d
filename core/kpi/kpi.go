// Package kpi reduces per-slot load series against the grid signal into the
// daily scalars shown to the user: cost, carbon and green-hour share.
package kpi

import (
	"github.com/samber/lo"

	"github.com/axelenergy/homeflex/core/model"
)

// Unit conversions: Agile prices arrive in pence/kWh, intensity in gCO2/kWh.
const (
	penceToPounds = 0.01
	gramsToKg     = 0.001
)

// Summary holds the daily KPIs for one total-load series.
type Summary struct {
	CostPounds float64 `json:"cost_pounds"`
	CarbonKg   float64 `json:"carbon_kg"`
	// GreenShare is the fraction of total energy consumed in green hours.
	GreenShare float64 `json:"green_share"`
	TotalKWh   float64 `json:"total_kwh"`
}

// Summarise reduces a load series to its daily KPIs. Slots without grid data
// contribute energy to the total but nothing to cost or carbon.
func Summarise(load []float64, sig model.GridSignal, green GreenClassifier) Summary {
	var s Summary
	s.TotalKWh = lo.Sum(load)
	var greenKWh float64
	for i, kwh := range load {
		if sig.Valid[i] {
			s.CostPounds += kwh * sig.Price[i] * penceToPounds
			s.CarbonKg += kwh * sig.Carbon[i] * gramsToKg
		}
		if green.Green(i) {
			greenKWh += kwh
		}
	}
	if s.TotalKWh > 0 {
		s.GreenShare = greenKWh / s.TotalKWh
	}
	return s
}

// Savings is the baseline-minus-optimised comparison.
type Savings struct {
	CostPounds float64 `json:"cost_pounds"`
	CarbonKg   float64 `json:"carbon_kg"`
	// GreenShareDelta is the gain in green-hour share, in [-1, 1].
	GreenShareDelta float64 `json:"green_share_delta"`
}

// Compare derives the savings achieved by the optimised day over the
// baseline day.
func Compare(baseline, optimised Summary) Savings {
	return Savings{
		CostPounds:      baseline.CostPounds - optimised.CostPounds,
		CarbonKg:        baseline.CarbonKg - optimised.CarbonKg,
		GreenShareDelta: optimised.GreenShare - baseline.GreenShare,
	}
}

// CombineLoads sums device series element-wise into a total-load series.
// All series must share the same slot grid.
func CombineLoads(series ...[]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series[0]))
	for _, s := range series {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}
