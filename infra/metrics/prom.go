package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/axelenergy/homeflex/core/planner"
)

// PromSink records optimisation runs in Prometheus metrics.
type PromSink struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	costSaving  *prometheus.GaugeVec
	carbonSaved *prometheus.GaugeVec
	greenShare  *prometheus.GaugeVec
}

// NewPromSink registers run metrics on the default Prometheus registerer.
// The Prometheus server is started separately on cfg.PrometheusAddr.
func NewPromSink(cfg Config) (planner.RunSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg Config, reg prometheus.Registerer) (planner.RunSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homeflex_runs_total",
		Help: "Total number of optimisation runs",
	}, []string{"goal"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "homeflex_run_duration_seconds",
		Help:    "Time spent in one optimisation run",
		Buckets: prometheus.DefBuckets,
	})
	costSaving := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "homeflex_cost_saving_pounds",
		Help: "Cost saving of the last run over its baseline",
	}, []string{"goal"})
	carbonSaved := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "homeflex_carbon_saving_kg",
		Help: "Carbon saving of the last run over its baseline",
	}, []string{"goal"})
	greenShare := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "homeflex_green_share",
		Help: "Green-hour share of the last optimised day",
	}, []string{"goal"})

	s := &PromSink{runs: runs, duration: duration, costSaving: costSaving, carbonSaved: carbonSaved, greenShare: greenShare}
	for _, c := range []prometheus.Collector{runs, duration, costSaving, carbonSaved, greenShare} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordRun implements planner.RunSink.
func (s *PromSink) RecordRun(res *planner.Result) error {
	goal := res.Goal.String()
	s.runs.WithLabelValues(goal).Inc()
	s.duration.Observe(res.Elapsed.Seconds())
	s.costSaving.WithLabelValues(goal).Set(res.Savings.CostPounds)
	s.carbonSaved.WithLabelValues(goal).Set(res.Savings.CarbonKg)
	s.greenShare.WithLabelValues(goal).Set(res.Optimised.GreenShare)
	return nil
}
