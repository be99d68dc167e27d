// Package plan exposes the optimiser over HTTP. Each request is served
// statelessly: fetch the day's grid signal, run the planner, return the
// series and KPIs. Callers cache their own results if they want caching.
package plan

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/axelenergy/homeflex/connectors"
	"github.com/axelenergy/homeflex/core/logger"
	"github.com/axelenergy/homeflex/core/model"
	"github.com/axelenergy/homeflex/core/planner"
	"github.com/axelenergy/homeflex/internal/eventbus"
)

// Request is the JSON body of POST /api/plan.
type Request struct {
	Date     string               `json:"date"`
	Goal     string               `json:"goal"`
	EV       model.EVParams       `json:"ev"`
	HeatPump model.HeatPumpParams `json:"heat_pump"`
}

// ToPlannerRequest converts the wire form to a planner request.
func (r Request) ToPlannerRequest() (planner.Request, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return planner.Request{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	return planner.Request{
		Date:     date.UTC(),
		Goal:     model.ParseGoal(r.Goal),
		EV:       r.EV,
		HeatPump: r.HeatPump,
	}, nil
}

// NewHandler returns the HTTP handler for POST /api/plan. Completed runs are
// published on the bus for the recording sinks.
func NewHandler(p *planner.Planner, provider connectors.Provider, bus *eventbus.Bus[*planner.Result], log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body Request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		req, err := body.ToPlannerRequest()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sig, err := provider.GridSignal(r.Context(), req.Date)
		if err != nil {
			log.Errorf("grid data fetch failed: %v", err)
			http.Error(w, "grid data unavailable", http.StatusBadGateway)
			return
		}

		res, err := p.Run(req, sig)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if bus != nil {
			bus.Publish(res)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// NewMux wires the plan handler and a liveness probe into a ServeMux.
func NewMux(planHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/plan", planHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
