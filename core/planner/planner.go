// Package planner runs one stateless optimisation pass: synthesise the
// baseline day, score the grid signal, reallocate the flexible devices and
// reduce the result to KPIs. Each run is a pure function of its request and
// signal; nothing is carried between runs.
package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/axelenergy/homeflex/core/baseline"
	"github.com/axelenergy/homeflex/core/kpi"
	"github.com/axelenergy/homeflex/core/logger"
	"github.com/axelenergy/homeflex/core/model"
	"github.com/axelenergy/homeflex/core/optimise"
	"github.com/axelenergy/homeflex/core/score"
)

// Request carries everything one optimisation run needs.
type Request struct {
	Date time.Time `json:"date"`
	// Slots overrides the canonical 48-slot grid when set. The planner
	// processes what it is given; it does not fill gaps.
	Slots    []time.Time          `json:"-"`
	Goal     model.Goal           `json:"-"`
	EV       model.EVParams       `json:"ev"`
	HeatPump model.HeatPumpParams `json:"heat_pump"`
}

// Validate fails fast on malformed parameters. Edge cases such as empty
// windows or zero energy are not errors; they degrade to zero series.
func (r Request) Validate() error {
	if err := r.EV.Validate(); err != nil {
		return err
	}
	return r.HeatPump.Validate()
}

// Series groups the per-device slot series of one run.
type Series struct {
	Household         []float64 `json:"household_kwh"`
	EVBaseline        []float64 `json:"ev_baseline_kwh"`
	EVOptimised       []float64 `json:"ev_optimised_kwh"`
	HeatPumpBaseline  []float64 `json:"hp_baseline_kwh"`
	HeatPumpOptimised []float64 `json:"hp_optimised_kwh"`
}

// Result is the full outcome of a run.
type Result struct {
	RunID     string        `json:"run_id"`
	Date      time.Time     `json:"date"`
	Goal      model.Goal    `json:"goal"`
	Slots     []time.Time   `json:"slots"`
	Scores    []float64     `json:"-"`
	Series    Series        `json:"series"`
	Baseline  kpi.Summary   `json:"baseline"`
	Optimised kpi.Summary   `json:"optimised"`
	Savings   kpi.Savings   `json:"savings"`
	Elapsed   time.Duration `json:"-"`
}

// Planner executes optimisation runs.
type Planner struct {
	log logger.Logger
}

// New returns a Planner. A nil logger disables logging.
func New(log logger.Logger) *Planner {
	if log == nil {
		log = logger.Nop{}
	}
	return &Planner{log: log}
}

// Run executes one optimisation pass for the request against the signal.
func (p *Planner) Run(req Request, sig model.GridSignal) (*Result, error) {
	started := time.Now()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	slots := req.Slots
	if slots == nil {
		slots = model.Day(req.Date)
	}
	if err := model.ValidateGrid(slots); err != nil {
		return nil, fmt.Errorf("invalid slot grid: %w", err)
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if sig.Len() != len(slots) {
		return nil, fmt.Errorf("grid signal has %d slots, grid has %d", sig.Len(), len(slots))
	}

	hpBase, hpTotalKWh := baseline.HeatPump(req.Date, slots, req.HeatPump)
	series := Series{
		Household:        baseline.Household(slots),
		EVBaseline:       baseline.EV(slots, req.EV),
		HeatPumpBaseline: hpBase,
	}

	scores := score.Compute(sig, req.Goal)
	series.EVOptimised = optimise.EV(scores, slots, req.EV)
	series.HeatPumpOptimised = optimise.HeatPump(scores, hpTotalKWh, req.HeatPump.MaxRunHours)

	green := kpi.GreenFor(sig)
	baseSummary := kpi.Summarise(
		kpi.CombineLoads(series.Household, series.EVBaseline, series.HeatPumpBaseline), sig, green)
	optSummary := kpi.Summarise(
		kpi.CombineLoads(series.Household, series.EVOptimised, series.HeatPumpOptimised), sig, green)

	res := &Result{
		RunID:     uuid.NewString(),
		Date:      req.Date,
		Goal:      req.Goal,
		Slots:     slots,
		Scores:    scores,
		Series:    series,
		Baseline:  baseSummary,
		Optimised: optSummary,
		Savings:   kpi.Compare(baseSummary, optSummary),
		Elapsed:   time.Since(started),
	}
	p.log.Debugw("optimisation run complete", map[string]any{
		"run_id":        res.RunID,
		"goal":          res.Goal.String(),
		"cost_saving":   res.Savings.CostPounds,
		"carbon_saving": res.Savings.CarbonKg,
	})
	return res, nil
}
