// Package carbonintensity fetches half-hourly GB grid carbon data from
// api.carbonintensity.org.uk.
package carbonintensity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const timeLayout = "2006-01-02T15:04Z"

// Point is one half-hour of carbon intensity.
type Point struct {
	From      time.Time
	Intensity float64
	Index     string
}

// MixPoint is one half-hour of renewable generation shares.
type MixPoint struct {
	From       time.Time
	WindShare  float64
	SolarShare float64
}

// Client talks to the carbon intensity API.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Intensity returns the day's half-hourly carbon intensity. Actual readings
// are preferred; slots without one fall back to the forecast.
func (c *Client) Intensity(ctx context.Context, date time.Time) ([]Point, error) {
	url := fmt.Sprintf("%s/intensity/date/%s", c.baseURL, date.Format("2006-01-02"))
	var payload struct {
		Data []struct {
			From      string `json:"from"`
			Intensity struct {
				Forecast float64  `json:"forecast"`
				Actual   *float64 `json:"actual"`
				Index    string   `json:"index"`
			} `json:"intensity"`
		} `json:"data"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch carbon intensity: %w", err)
	}

	points := make([]Point, 0, len(payload.Data))
	for _, entry := range payload.Data {
		from, err := time.Parse(timeLayout, entry.From)
		if err != nil {
			return nil, fmt.Errorf("parse intensity timestamp %q: %w", entry.From, err)
		}
		value := entry.Intensity.Forecast
		if entry.Intensity.Actual != nil {
			value = *entry.Intensity.Actual
		}
		points = append(points, Point{From: from, Intensity: value, Index: entry.Intensity.Index})
	}
	return points, nil
}

// GenerationMix returns the day's half-hourly wind and solar shares.
func (c *Client) GenerationMix(ctx context.Context, date time.Time) ([]MixPoint, error) {
	day := date.Format("2006-01-02")
	url := fmt.Sprintf("%s/generation/%sT00:00Z/%sT23:59Z", c.baseURL, day, day)
	var payload struct {
		Data []struct {
			From string `json:"from"`
			Mix  []struct {
				Fuel string  `json:"fuel"`
				Perc float64 `json:"perc"`
			} `json:"generationmix"`
		} `json:"data"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch generation mix: %w", err)
	}

	points := make([]MixPoint, 0, len(payload.Data))
	for _, entry := range payload.Data {
		from, err := time.Parse(timeLayout, entry.From)
		if err != nil {
			return nil, fmt.Errorf("parse mix timestamp %q: %w", entry.From, err)
		}
		p := MixPoint{From: from}
		for _, m := range entry.Mix {
			switch m.Fuel {
			case "wind":
				p.WindShare = m.Perc
			case "solar":
				p.SolarShare = m.Perc
			}
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
