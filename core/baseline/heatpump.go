package baseline

import (
	"time"

	"github.com/axelenergy/homeflex/core/model"
)

// DailyThermalDemand estimates the heat energy (kWh) a home needs on a day,
// from the calendar month alone. Rough, but realistic enough for residential
// modelling; summer months are mostly hot water.
func DailyThermalDemand(month time.Month) float64 {
	switch month {
	case time.December, time.January, time.February:
		return 18
	case time.March, time.April, time.November:
		return 12
	case time.May, time.October:
		return 7
	case time.June, time.July, time.August:
		return 4
	default:
		return 6
	}
}

// HeatPump returns the per-slot electrical demand of the heat pump under
// naive behaviour: the month's thermal demand divided by the COP, spread
// flat across every slot inside the comfort windows. It also returns the
// electrical daily total, which the optimiser reallocates.
//
// If the comfort windows contain no slots the series is all zero and the
// total is zero; that day simply has no heat-pump load to shift.
func HeatPump(date time.Time, slots []time.Time, p model.HeatPumpParams) ([]float64, float64) {
	out := make([]float64, len(slots))

	var members []int
	for i, s := range slots {
		for _, w := range p.ComfortWindows {
			if w.Contains(model.ClockOf(s)) {
				members = append(members, i)
				break
			}
		}
	}
	if len(members) == 0 {
		return out, 0
	}

	totalElecKWh := DailyThermalDemand(date.Month()) / p.COP
	perSlot := totalElecKWh / float64(len(members))
	for _, i := range members {
		out[i] = perSlot
	}
	return out, totalElecKWh
}
