// Package export writes optimisation results to JSON or CSV for downstream
// tooling and spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/axelenergy/homeflex/core/planner"
)

// WriteJSON writes the full result to w in JSON format.
func WriteJSON(w io.Writer, res *planner.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

var csvHeader = []string{
	"timestamp",
	"household_kwh",
	"ev_baseline_kwh", "ev_optimised_kwh",
	"hp_baseline_kwh", "hp_optimised_kwh",
}

// WriteCSV writes the per-slot series to w, one row per half hour.
func WriteCSV(w io.Writer, res *planner.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, slot := range res.Slots {
		cols := []float64{
			res.Series.Household[i],
			res.Series.EVBaseline[i], res.Series.EVOptimised[i],
			res.Series.HeatPumpBaseline[i], res.Series.HeatPumpOptimised[i],
		}
		rec := append([]string{slot.Format(time.RFC3339)}, lo.Map(cols, func(v float64, _ int) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		})...)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
