package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/axelenergy/homeflex/connectors"
	"github.com/axelenergy/homeflex/core/model"
	"github.com/axelenergy/homeflex/core/planner"
	"github.com/axelenergy/homeflex/infra/logger"
	"github.com/axelenergy/homeflex/pkg/export"
)

var planFlags struct {
	date      string
	goal      string
	format    string
	out       string
	evArrival string
	evDepart  string
	evNeedKWh float64
	evCharger float64
	hpWindows []string
	hpCOP     float64
	hpHours   int
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run one optimisation pass and print the result",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&planFlags.date, "date", time.Now().UTC().Format("2006-01-02"), "day to plan, YYYY-MM-DD")
	f.StringVar(&planFlags.goal, "goal", "cheapest", "cheapest, lowest-carbon or balanced")
	f.StringVar(&planFlags.format, "format", "json", "output format: json or csv")
	f.StringVar(&planFlags.out, "out", "", "output file (default stdout)")
	f.StringVar(&planFlags.evArrival, "ev-arrival", "18:00", "EV plug-in time, HH:MM")
	f.StringVar(&planFlags.evDepart, "ev-departure", "07:00", "EV departure time, HH:MM")
	f.Float64Var(&planFlags.evNeedKWh, "ev-need", 10, "EV energy need in kWh")
	f.Float64Var(&planFlags.evCharger, "ev-charger", 7, "EV charger power in kW")
	f.StringSliceVar(&planFlags.hpWindows, "hp-window", []string{"06:00-09:00", "17:00-22:00"},
		"heat pump comfort window, HH:MM-HH:MM (repeatable)")
	f.Float64Var(&planFlags.hpCOP, "hp-cop", 3, "heat pump coefficient of performance")
	f.IntVar(&planFlags.hpHours, "hp-hours", 8, "heat pump maximum run hours")
	rootCmd.AddCommand(planCmd)
}

func parseWindow(s string) (model.ClockWindow, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return model.ClockWindow{}, fmt.Errorf("invalid window %q, want HH:MM-HH:MM", s)
	}
	start, err := model.ParseClock(parts[0])
	if err != nil {
		return model.ClockWindow{}, err
	}
	end, err := model.ParseClock(parts[1])
	if err != nil {
		return model.ClockWindow{}, err
	}
	return model.ClockWindow{Start: start, End: end}, nil
}

func buildRequest() (planner.Request, error) {
	date, err := time.Parse("2006-01-02", planFlags.date)
	if err != nil {
		return planner.Request{}, fmt.Errorf("invalid date %q: %w", planFlags.date, err)
	}
	arrival, err := model.ParseClock(planFlags.evArrival)
	if err != nil {
		return planner.Request{}, err
	}
	departure, err := model.ParseClock(planFlags.evDepart)
	if err != nil {
		return planner.Request{}, err
	}
	windows := make([]model.ClockWindow, 0, len(planFlags.hpWindows))
	for _, w := range planFlags.hpWindows {
		win, err := parseWindow(w)
		if err != nil {
			return planner.Request{}, err
		}
		windows = append(windows, win)
	}
	return planner.Request{
		Date: date.UTC(),
		Goal: model.ParseGoal(planFlags.goal),
		EV: model.EVParams{
			Arrival:   arrival,
			Departure: departure,
			NeedKWh:   planFlags.evNeedKWh,
			ChargerKW: planFlags.evCharger,
		},
		HeatPump: model.HeatPumpParams{
			ComfortWindows: windows,
			COP:            planFlags.hpCOP,
			MaxRunHours:    planFlags.hpHours,
		},
	}, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	req, err := buildRequest()
	if err != nil {
		return err
	}

	logg := logger.New("plan-command")
	provider := connectors.NewMergedWithLogger(cfg.Provider, logg)
	sig, err := provider.GridSignal(ctx, req.Date)
	if err != nil {
		return fmt.Errorf("fetch grid data: %w", err)
	}
	res, err := planner.New(logg).Run(req, sig)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if planFlags.out != "" {
		f, err := os.Create(planFlags.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	switch planFlags.format {
	case "json":
		return export.WriteJSON(w, res)
	case "csv":
		return export.WriteCSV(w, res)
	default:
		return fmt.Errorf("unknown format %q, want json or csv", planFlags.format)
	}
}
