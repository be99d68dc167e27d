package connectors

import (
	"context"
	"fmt"
	"time"

	"github.com/axelenergy/homeflex/connectors/carbonintensity"
	"github.com/axelenergy/homeflex/connectors/octopus"
	"github.com/axelenergy/homeflex/core/logger"
	"github.com/axelenergy/homeflex/core/model"
	infralogger "github.com/axelenergy/homeflex/infra/logger"
)

// Merged joins the carbon intensity, generation mix and price series into
// one GridSignal, keyed by slot-start timestamp. Slots missing from either
// required series stay "no data"; the generation mix is best-effort.
type Merged struct {
	carbon *carbonintensity.Client
	prices *octopus.Client
	log    logger.Logger
}

// NewMerged builds a provider from the configured data sources.
func NewMerged(cfg Config) *Merged {
	return NewMergedWithLogger(cfg, infralogger.New("grid-data"))
}

// NewMergedWithLogger builds a provider with a caller-supplied logger.
func NewMergedWithLogger(cfg Config, log logger.Logger) *Merged {
	cfg.SetDefaults()
	if log == nil {
		log = logger.Nop{}
	}
	return &Merged{
		carbon: carbonintensity.New(cfg.CarbonBaseURL, cfg.Timeout()),
		prices: octopus.New(cfg.OctopusBaseURL, cfg.Product, cfg.TariffCode, cfg.Timeout()),
		log:    log,
	}
}

// GridSignal implements Provider.
func (m *Merged) GridSignal(ctx context.Context, date time.Time) (model.GridSignal, error) {
	intensity, err := m.carbon.Intensity(ctx, date)
	if err != nil {
		return model.GridSignal{}, fmt.Errorf("carbon intensity: %w", err)
	}
	rates, err := m.prices.UnitRates(ctx, date)
	if err != nil {
		return model.GridSignal{}, fmt.Errorf("unit rates: %w", err)
	}
	mix, err := m.carbon.GenerationMix(ctx, date)
	if err != nil {
		// Shares are informational only; a failed fetch does not block a run.
		m.log.Warnf("generation mix unavailable: %v", err)
		mix = nil
	}

	points := make(map[int64]model.GridPoint, len(intensity))
	for _, p := range intensity {
		points[p.From.Unix()] = model.GridPoint{
			Slot:            p.From,
			CarbonIntensity: p.Intensity,
			CarbonIndex:     p.Index,
		}
	}
	for _, mp := range mix {
		if gp, ok := points[mp.From.Unix()]; ok {
			gp.WindShare = mp.WindShare
			gp.SolarShare = mp.SolarShare
			points[mp.From.Unix()] = gp
		}
	}
	// Only slots priced AND measured become data points.
	joined := make([]model.GridPoint, 0, len(rates))
	for _, r := range rates {
		gp, ok := points[r.ValidFrom.Unix()]
		if !ok {
			continue
		}
		gp.PricePence = r.PricePence
		joined = append(joined, gp)
	}

	slots := model.Day(date)
	sig := model.JoinSignal(slots, joined)
	m.log.Debugw("grid signal joined", map[string]any{
		"date":   date.Format("2006-01-02"),
		"points": len(joined),
	})
	return sig, nil
}
