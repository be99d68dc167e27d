package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, mixStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/intensity/date/2026-01-15", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"from":"2026-01-15T00:00Z","intensity":{"forecast":100,"actual":90,"index":"low"}},
			{"from":"2026-01-15T00:30Z","intensity":{"forecast":200,"actual":null,"index":"moderate"}}
		]}`))
	})
	mux.HandleFunc("/generation/", func(w http.ResponseWriter, r *http.Request) {
		if mixStatus != http.StatusOK {
			http.Error(w, "unavailable", mixStatus)
			return
		}
		w.Write([]byte(`{"data":[
			{"from":"2026-01-15T00:30Z","generationmix":[{"fuel":"wind","perc":55.5},{"fuel":"solar","perc":1.2}]}
		]}`))
	})
	mux.HandleFunc("/v1/products/", func(w http.ResponseWriter, r *http.Request) {
		// Prices exist for 00:30 and 01:00 only; 00:00 stays unpriced.
		w.Write([]byte(`{"next":null,"results":[
			{"valid_from":"2026-01-15T00:30:00Z","value_inc_vat":15.0,"value_exc_vat":14.0},
			{"valid_from":"2026-01-15T01:00:00Z","value_inc_vat":18.0,"value_exc_vat":17.0}
		]}`))
	})
	return httptest.NewServer(mux)
}

func TestMergedJoinsByTimestamp(t *testing.T) {
	srv := testServer(t, http.StatusOK)
	defer srv.Close()

	provider := NewMerged(Config{CarbonBaseURL: srv.URL, OctopusBaseURL: srv.URL})
	sig, err := provider.GridSignal(context.Background(), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 48, sig.Len())

	// 00:00 has intensity but no price, 01:00 has price but no intensity:
	// neither is a usable data point. Only 00:30 joins fully.
	assert.False(t, sig.Valid[0])
	assert.True(t, sig.Valid[1])
	assert.False(t, sig.Valid[2])
	assert.Equal(t, 15.0, sig.Price[1])
	assert.Equal(t, 200.0, sig.Carbon[1])
	assert.Equal(t, "moderate", sig.Index[1])
}

func TestMergedToleratesMissingMix(t *testing.T) {
	srv := testServer(t, http.StatusServiceUnavailable)
	defer srv.Close()

	provider := NewMerged(Config{CarbonBaseURL: srv.URL, OctopusBaseURL: srv.URL})
	sig, err := provider.GridSignal(context.Background(), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err, "generation mix is best-effort")
	assert.True(t, sig.Valid[1])
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "https://api.carbonintensity.org.uk", cfg.CarbonBaseURL)
	assert.Equal(t, "AGILE-24-10-01", cfg.Product)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
}
