package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelenergy/homeflex/core/model"
)

func TestParseWindow(t *testing.T) {
	w, err := parseWindow("06:30-09:00")
	require.NoError(t, err)
	assert.Equal(t, model.Clock(6, 30), w.Start)
	assert.Equal(t, model.Clock(9, 0), w.End)

	_, err = parseWindow("06:30")
	assert.Error(t, err)
	_, err = parseWindow("6h30-09:00")
	assert.Error(t, err)
}

func TestBuildRequestDefaults(t *testing.T) {
	planFlags.date = "2026-01-15"
	planFlags.goal = "lowest-carbon"
	planFlags.evArrival = "18:00"
	planFlags.evDepart = "07:00"
	planFlags.hpWindows = []string{"06:00-09:00"}

	req, err := buildRequest()
	require.NoError(t, err)
	assert.Equal(t, model.GoalLowestCarbon, req.Goal)
	assert.Equal(t, model.Clock(18, 0), req.EV.Arrival)
	assert.Len(t, req.HeatPump.ComfortWindows, 1)
	assert.Equal(t, 15, req.Date.Day())
}

func TestBuildRequestRejectsBadDate(t *testing.T) {
	planFlags.date = "15/01/2026"
	defer func() { planFlags.date = "2026-01-15" }()
	_, err := buildRequest()
	assert.Error(t, err)
}
