// Package baseline synthesises naive, unoptimised per-slot demand series
// for the household, the heat pump and the EV. The optimiser reallocates
// these totals; it never changes them.
package baseline

import (
	"time"

	"github.com/axelenergy/homeflex/core/model"
)

// Fixed household shape: a 0.25 kW always-on draw plus a small breakfast
// bump and a larger evening bump. The bump windows are fixed clock ranges;
// each bump's total energy is spread evenly across the slots inside its
// window, so the daily total does not depend on the window width.
const idleKWhPerSlot = 0.125

var (
	morningBump = bump{window: model.ClockWindow{Start: model.Clock(6, 0), End: model.Clock(8, 0)}, totalKWh: 0.5}
	eveningBump = bump{window: model.ClockWindow{Start: model.Clock(17, 0), End: model.Clock(21, 0)}, totalKWh: 1.0}
)

type bump struct {
	window   model.ClockWindow
	totalKWh float64
}

// Household returns the per-slot household demand for the given grid.
func Household(slots []time.Time) []float64 {
	out := make([]float64, len(slots))
	for i := range out {
		out[i] = idleKWhPerSlot
	}
	for _, b := range []bump{morningBump, eveningBump} {
		addBump(out, slots, b)
	}
	return out
}

func addBump(out []float64, slots []time.Time, b bump) {
	var members []int
	for i, s := range slots {
		if b.window.Contains(model.ClockOf(s)) {
			members = append(members, i)
		}
	}
	if len(members) == 0 {
		return
	}
	perSlot := b.totalKWh / float64(len(members))
	for _, i := range members {
		out[i] += perSlot
	}
}
