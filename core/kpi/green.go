package kpi

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/axelenergy/homeflex/core/model"
)

// GreenClassifier decides whether a slot counts as a green hour.
type GreenClassifier interface {
	Green(i int) bool
}

// greenQuantile is the fallback threshold when no categorical index is
// available: slots at or below the day's 30th percentile of carbon
// intensity count as green.
const greenQuantile = 0.30

// GreenFor picks the classifier for a signal: the categorical carbon index
// when the provider supplied one, otherwise the percentile threshold. The
// choice is made once per run.
func GreenFor(sig model.GridSignal) GreenClassifier {
	if sig.HasIndex() {
		return categoricalGreen{index: sig.Index, valid: sig.Valid}
	}
	return newPercentileGreen(sig, greenQuantile)
}

type categoricalGreen struct {
	index []string
	valid []bool
}

func (c categoricalGreen) Green(i int) bool {
	if !c.valid[i] {
		return false
	}
	switch c.index[i] {
	case "low", "very low":
		return true
	}
	return false
}

type percentileGreen struct {
	carbon    []float64
	valid     []bool
	threshold float64
}

func newPercentileGreen(sig model.GridSignal, q float64) percentileGreen {
	present := make([]float64, 0, sig.Len())
	for i, v := range sig.Carbon {
		if sig.Valid[i] {
			present = append(present, v)
		}
	}
	g := percentileGreen{carbon: sig.Carbon, valid: sig.Valid}
	if len(present) == 0 {
		return g
	}
	sort.Float64s(present)
	g.threshold = stat.Quantile(q, stat.Empirical, present, nil)
	return g
}

func (g percentileGreen) Green(i int) bool {
	return g.valid[i] && g.carbon[i] <= g.threshold
}
