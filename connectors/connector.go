// Package connectors retrieves the external half-hourly series the planner
// consumes: GB grid carbon intensity, generation mix and Octopus Agile
// prices. The planner core never talks to these services directly; it only
// sees the joined model.GridSignal.
package connectors

import (
	"context"
	"time"

	"github.com/axelenergy/homeflex/core/model"
)

// Provider supplies the grid signal for one calendar day.
type Provider interface {
	GridSignal(ctx context.Context, date time.Time) (model.GridSignal, error)
}

// Config holds the endpoints and tariff identifiers of the data sources.
type Config struct {
	CarbonBaseURL  string `json:"carbon_base_url"`
	OctopusBaseURL string `json:"octopus_base_url"`
	Product        string `json:"product"`
	TariffCode     string `json:"tariff_code"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies the public endpoints and the current Agile tariff.
func (c *Config) SetDefaults() {
	if c.CarbonBaseURL == "" {
		c.CarbonBaseURL = "https://api.carbonintensity.org.uk"
	}
	if c.OctopusBaseURL == "" {
		c.OctopusBaseURL = "https://api.octopus.energy"
	}
	if c.Product == "" {
		c.Product = "AGILE-24-10-01"
	}
	if c.TariffCode == "" {
		c.TariffCode = "E-1R-AGILE-24-10-01-C"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Timeout returns the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
