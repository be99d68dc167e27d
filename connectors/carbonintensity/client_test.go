package carbonintensity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntensityPrefersActual(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/intensity/date/2026-01-15", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"from":"2026-01-15T00:00Z","to":"2026-01-15T00:30Z","intensity":{"forecast":266,"actual":263,"index":"moderate"}},
			{"from":"2026-01-15T00:30Z","to":"2026-01-15T01:00Z","intensity":{"forecast":120,"actual":null,"index":"low"}}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	points, err := c.Intensity(context.Background(), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 263.0, points[0].Intensity, "actual reading wins")
	assert.Equal(t, 120.0, points[1].Intensity, "missing actual falls back to forecast")
	assert.Equal(t, "low", points[1].Index)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 30, 0, 0, time.UTC), points[1].From)
}

func TestIntensityHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Intensity(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestGenerationMix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generation/2026-01-15T00:00Z/2026-01-15T23:59Z", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"from":"2026-01-15T00:00Z","generationmix":[
				{"fuel":"wind","perc":41.2},{"fuel":"solar","perc":0},{"fuel":"gas","perc":30.1}
			]}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	points, err := c.GenerationMix(context.Background(), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 41.2, points[0].WindShare)
	assert.Equal(t, 0.0, points[0].SolarShare)
}
