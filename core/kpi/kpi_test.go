package kpi

import (
	"math"
	"testing"
	"time"

	"github.com/axelenergy/homeflex/core/model"
)

func signal(prices, carbons []float64, index []string) model.GridSignal {
	n := len(prices)
	slots := model.Day(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))[:n]
	valid := make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	if index == nil {
		index = make([]string, n)
	}
	return model.GridSignal{Slots: slots, Price: prices, Carbon: carbons, Index: index, Valid: valid}
}

func TestSummariseUnits(t *testing.T) {
	sig := signal([]float64{20, 10}, []float64{200, 100}, nil)
	load := []float64{2, 1}
	s := Summarise(load, sig, GreenFor(sig))
	// 2*20p + 1*10p = 50p = £0.50; 2*200g + 1*100g = 500g = 0.5kg.
	if math.Abs(s.CostPounds-0.50) > 1e-9 {
		t.Fatalf("cost: got %v", s.CostPounds)
	}
	if math.Abs(s.CarbonKg-0.5) > 1e-9 {
		t.Fatalf("carbon: got %v", s.CarbonKg)
	}
	if s.TotalKWh != 3 {
		t.Fatalf("total: got %v", s.TotalKWh)
	}
}

func TestSummariseSkipsMissingData(t *testing.T) {
	sig := signal([]float64{20, 10}, []float64{200, 100}, nil)
	sig.Valid[1] = false
	s := Summarise([]float64{1, 1}, sig, GreenFor(sig))
	if math.Abs(s.CostPounds-0.20) > 1e-9 {
		t.Fatalf("missing slots must not contribute cost, got %v", s.CostPounds)
	}
	if s.TotalKWh != 2 {
		t.Fatalf("energy still counts, got %v", s.TotalKWh)
	}
}

func TestCategoricalGreenShare(t *testing.T) {
	sig := signal(
		[]float64{10, 10, 10, 10},
		[]float64{50, 100, 200, 300},
		[]string{"very low", "low", "moderate", "high"},
	)
	s := Summarise([]float64{1, 1, 1, 1}, sig, GreenFor(sig))
	if s.GreenShare != 0.5 {
		t.Fatalf("expected half the load in green hours, got %v", s.GreenShare)
	}
}

func TestPercentileGreenFallback(t *testing.T) {
	carbons := make([]float64, 10)
	for i := range carbons {
		carbons[i] = float64((i + 1) * 10) // 10..100
	}
	sig := signal(make([]float64, 10), carbons, nil)
	cls := GreenFor(sig)
	// 30th percentile of 10..100 flags the cleanest three slots.
	for i := 0; i < 3; i++ {
		if !cls.Green(i) {
			t.Fatalf("slot %d should be green", i)
		}
	}
	for i := 4; i < 10; i++ {
		if cls.Green(i) {
			t.Fatalf("slot %d should not be green", i)
		}
	}
}

func TestGreenShareZeroLoad(t *testing.T) {
	sig := signal([]float64{10}, []float64{100}, nil)
	s := Summarise([]float64{0}, sig, GreenFor(sig))
	if s.GreenShare != 0 {
		t.Fatalf("zero load has zero share, got %v", s.GreenShare)
	}
}

func TestCompare(t *testing.T) {
	base := Summary{CostPounds: 3.00, CarbonKg: 2.0, GreenShare: 0.2}
	opt := Summary{CostPounds: 2.25, CarbonKg: 1.4, GreenShare: 0.6}
	sav := Compare(base, opt)
	if math.Abs(sav.CostPounds-0.75) > 1e-9 || math.Abs(sav.CarbonKg-0.6) > 1e-9 {
		t.Fatalf("unexpected savings %+v", sav)
	}
	if math.Abs(sav.GreenShareDelta-0.4) > 1e-9 {
		t.Fatalf("unexpected green delta %v", sav.GreenShareDelta)
	}
}

func TestCombineLoads(t *testing.T) {
	got := CombineLoads([]float64{1, 2}, []float64{3, 4}, []float64{0, 1})
	if got[0] != 4 || got[1] != 7 {
		t.Fatalf("got %v", got)
	}
}
