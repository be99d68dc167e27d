// Package score ranks half-hour slots by how desirable they are for
// flexible load, combining normalised price and carbon intensity
// according to the chosen optimisation goal.
package score

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/axelenergy/homeflex/core/model"
)

// normalize min-max scales the valid entries of values to [0, 1]. A constant
// series maps to 0.5 everywhere so it neither biases nor breaks the ranking.
// Invalid entries are excluded from the bounds and left at zero; callers are
// expected to mask them out.
func normalize(values []float64, valid []bool) []float64 {
	present := make([]float64, 0, len(values))
	for i, v := range values {
		if valid[i] {
			present = append(present, v)
		}
	}
	out := make([]float64, len(values))
	if len(present) == 0 {
		return out
	}
	mn, mx := floats.Min(present), floats.Max(present)
	for i, v := range values {
		if !valid[i] {
			continue
		}
		if mx == mn {
			out[i] = 0.5
		} else {
			out[i] = (v - mn) / (mx - mn)
		}
	}
	return out
}

// Compute returns the per-slot desirability score for the signal. Higher is
// better. Slots without data score negative infinity so they rank after
// every slot that has data.
func Compute(sig model.GridSignal, goal model.Goal) []float64 {
	priceN := normalize(sig.Price, sig.Valid)
	carbonN := normalize(sig.Carbon, sig.Valid)

	scores := make([]float64, sig.Len())
	for i := range scores {
		if !sig.Valid[i] {
			scores[i] = math.Inf(-1)
			continue
		}
		switch goal {
		case model.GoalLowestCarbon:
			scores[i] = -carbonN[i]
		case model.GoalBalanced:
			scores[i] = -0.5*priceN[i] - 0.5*carbonN[i]
		default:
			scores[i] = -priceN[i]
		}
	}
	return scores
}

// Rank returns slot indices ordered by descending score. The sort is stable,
// so tied slots keep their original grid order and repeated runs on the same
// inputs produce identical rankings.
func Rank(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	return idx
}
