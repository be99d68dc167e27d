// Package octopus fetches half-hourly Agile unit rates from the Octopus
// Energy API.
package octopus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

// Rate is one half-hour unit rate in pence per kWh.
type Rate struct {
	ValidFrom  time.Time
	PricePence float64
}

// Client talks to the Octopus Energy API for one product and tariff.
type Client struct {
	http    *http.Client
	baseURL string
	product string
	tariff  string
}

// New creates a Client for the given base URL, product and tariff code.
func New(baseURL, product, tariff string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		product: product,
		tariff:  tariff,
	}
}

// UnitRates returns the day's half-hourly unit rates sorted by start time.
// The API paginates; every page is followed. VAT-inclusive prices are
// preferred, falling back to the exclusive value when absent.
func (c *Client) UnitRates(ctx context.Context, date time.Time) ([]Rate, error) {
	day := date.Format("2006-01-02")
	url := fmt.Sprintf("%s/v1/products/%s/electricity-tariffs/%s/standard-unit-rates/?period_from=%sT00:00Z&period_to=%sT23:59Z",
		c.baseURL, c.product, c.tariff, day, day)

	var rates []Rate
	for url != "" {
		page, next, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}
		rates = append(rates, page...)
		url = next
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].ValidFrom.Before(rates[j].ValidFrom) })
	return rates, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) ([]Rate, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	var payload struct {
		Next    string `json:"next"`
		Results []struct {
			ValidFrom   string   `json:"valid_from"`
			ValueIncVAT *float64 `json:"value_inc_vat"`
			ValueExcVAT float64  `json:"value_exc_vat"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("decode response: %w", err)
	}

	rates := make([]Rate, 0, len(payload.Results))
	for _, r := range payload.Results {
		from, err := time.Parse(time.RFC3339, r.ValidFrom)
		if err != nil {
			return nil, "", fmt.Errorf("parse rate timestamp %q: %w", r.ValidFrom, err)
		}
		price := r.ValueExcVAT
		if r.ValueIncVAT != nil {
			price = *r.ValueIncVAT
		}
		rates = append(rates, Rate{ValidFrom: from, PricePence: price})
	}
	return rates, payload.Next, nil
}
