package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelenergy/homeflex/config"
	"github.com/axelenergy/homeflex/core/planner"
)

func TestNewDefaultsToNopSink(t *testing.T) {
	svc, err := New(config.Default())
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()
	assert.IsType(t, planner.NopSink{}, svc.sink)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.API.Addr = "127.0.0.1:0"
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop on cancel")
	}
}
