// Package app assembles the service from its configuration: the grid data
// provider, the planner, the HTTP API and the run recorders.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/axelenergy/homeflex/api/plan"
	"github.com/axelenergy/homeflex/config"
	"github.com/axelenergy/homeflex/connectors"
	"github.com/axelenergy/homeflex/core/planner"
	"github.com/axelenergy/homeflex/infra/logger"
	"github.com/axelenergy/homeflex/infra/metrics"
	"github.com/axelenergy/homeflex/infra/mqtt"
	"github.com/axelenergy/homeflex/internal/eventbus"
)

// Service orchestrates the planner, its data provider and the recorders.
type Service struct {
	Planner  *planner.Planner
	Provider connectors.Provider

	cfg  *config.Config
	bus  *eventbus.Bus[*planner.Result]
	sink planner.RunSink
	log  logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []planner.RunSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}

	svc := &Service{
		Planner:  planner.New(logg),
		Provider: connectors.NewMerged(cfg.Provider),
		cfg:      cfg,
		bus:      eventbus.New[*planner.Result](),
		log:      logg,
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewSchedulePublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		sinks = append(sinks, pub)
	}

	switch len(sinks) {
	case 0:
		svc.sink = planner.NopSink{}
	case 1:
		svc.sink = sinks[0]
	default:
		svc.sink = metrics.NewMultiSink(sinks...)
	}
	return svc, nil
}

// Run serves the HTTP API and records completed runs until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	runs := s.bus.Subscribe()
	go func() {
		for res := range runs {
			if err := s.sink.RecordRun(res); err != nil {
				s.log.Errorf("record run %s: %v", res.RunID, err)
			}
		}
	}()

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := plan.NewMux(plan.NewHandler(s.Planner, s.Provider, s.bus, s.log))
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", s.cfg.API.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	return nil
}
