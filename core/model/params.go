package model

import "fmt"

// EVParams describes one vehicle's charging session for a single day.
type EVParams struct {
	Arrival   ClockTime `json:"arrival"`
	Departure ClockTime `json:"departure"`
	// NeedKWh is the energy the vehicle must receive before departure.
	NeedKWh float64 `json:"need_kwh"`
	// ChargerKW is the charger power rating.
	ChargerKW float64 `json:"charger_kw"`
}

// SlotCapacityKWh is the energy one half-hour slot can deliver.
func (p EVParams) SlotCapacityKWh() float64 { return p.ChargerKW * 0.5 }

// Validate rejects physically meaningless parameters. Zero need is allowed
// and degrades to an all-zero schedule downstream.
func (p EVParams) Validate() error {
	if p.NeedKWh < 0 {
		return fmt.Errorf("ev energy need must not be negative, got %.2f", p.NeedKWh)
	}
	if p.ChargerKW < 0 {
		return fmt.Errorf("ev charger power must not be negative, got %.2f", p.ChargerKW)
	}
	return nil
}

// HeatPumpParams describes the heat pump model for a single day.
type HeatPumpParams struct {
	// ComfortWindows are the clock ranges the baseline heats within.
	ComfortWindows []ClockWindow `json:"comfort_windows"`
	// COP converts thermal demand to electrical input.
	COP float64 `json:"cop"`
	// MaxRunHours caps how many hours the optimiser may run the pump.
	MaxRunHours int `json:"max_run_hours"`
}

// Validate rejects physically meaningless parameters.
func (p HeatPumpParams) Validate() error {
	if p.COP <= 0 {
		return fmt.Errorf("heat pump COP must be positive, got %.2f", p.COP)
	}
	if p.MaxRunHours < 0 {
		return fmt.Errorf("heat pump max run hours must not be negative, got %d", p.MaxRunHours)
	}
	return nil
}
