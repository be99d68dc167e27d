package baseline

import (
	"time"

	"github.com/axelenergy/homeflex/core/model"
)

// EV returns the per-slot charging series under plug-and-charge behaviour:
// from arrival onward every slot delivers the charger's half-hour capacity
// until the need is met or the day ends. No departure constraint applies at
// this stage. The series may under-deliver if the day runs out first; that
// is the naive behaviour being modelled, not an error.
func EV(slots []time.Time, p model.EVParams) []float64 {
	out := make([]float64, len(slots))
	remaining := p.NeedKWh
	slotKWh := p.SlotCapacityKWh()
	for i, s := range slots {
		if remaining <= 0 {
			break
		}
		if model.ClockOf(s) < p.Arrival {
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
