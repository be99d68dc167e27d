package optimise

import (
	"github.com/axelenergy/homeflex/core/score"
)

// HeatPump concentrates the day's heat-pump electricity into the best
// half-hours, limited to maxHours of runtime. The daily total comes from the
// baseline model and is split flat across the selected slots; unlike the EV
// the pump is runtime-capped, not power-capped per slot.
//
// The whole day is eligible: comfort windows are deliberately not enforced
// here, so cheap pre-heating outside the window is allowed.
func HeatPump(scores []float64, totalKWh float64, maxHours int) []float64 {
	out := make([]float64, len(scores))
	if totalKWh <= 0 {
		return out
	}

	maxSlots := maxHours * 2
	if maxSlots > len(out) {
		maxSlots = len(out)
	}
	if maxSlots <= 0 {
		return out
	}

	best := score.Rank(scores)[:maxSlots]
	perSlot := totalKWh / float64(len(best))
	for _, i := range best {
		out[i] = perSlot
	}
	return out
}
