package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/axelenergy/homeflex/core/planner"
	"github.com/axelenergy/homeflex/infra/logger"
)

// InfluxSink persists each run's per-slot series and KPI summary to InfluxDB
// using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails, so a down instance never blocks runs.
func NewInfluxSinkWithFallback(url, token, org, bucket string) planner.RunSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return planner.NopSink{}
	}
	return sink
}

// RecordRun writes the run's series and summary as line protocol points.
func (s *InfluxSink) RecordRun(res *planner.Result) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	series := map[string][]float64{
		"household":    res.Series.Household,
		"ev_baseline":  res.Series.EVBaseline,
		"ev_optimised": res.Series.EVOptimised,
		"hp_baseline":  res.Series.HeatPumpBaseline,
		"hp_optimised": res.Series.HeatPumpOptimised,
	}
	for name, load := range series {
		for i, kwh := range load {
			if kwh == 0 {
				continue
			}
			p := write.NewPointWithMeasurement("home_load").
				AddTag("run_id", res.RunID).
				AddTag("series", name).
				AddTag("goal", res.Goal.String()).
				AddField("kwh", kwh).
				SetTime(res.Slots[i])
			if err := s.writeAPI.WritePoint(ctx, p); err != nil {
				return err
			}
		}
	}

	summary := write.NewPointWithMeasurement("optimisation_run").
		AddTag("run_id", res.RunID).
		AddTag("goal", res.Goal.String()).
		AddField("cost_saving_pounds", res.Savings.CostPounds).
		AddField("carbon_saving_kg", res.Savings.CarbonKg).
		AddField("green_share", res.Optimised.GreenShare).
		AddField("total_kwh", res.Optimised.TotalKWh).
		SetTime(res.Date)
	return s.writeAPI.WritePoint(ctx, summary)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
