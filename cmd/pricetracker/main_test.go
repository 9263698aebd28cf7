package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geniass/price-tracker/pkg/config"
	"github.com/geniass/price-tracker/pkg/console"
	dataio "github.com/geniass/price-tracker/pkg/io"
	"github.com/geniass/price-tracker/pkg/tracker"
)

func writeStore(t *testing.T, prices map[string][]float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	t0 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	ps := map[string]tracker.Product{}
	for name, values := range prices {
		p := tracker.Product{Name: name, URL: "https://shop.example.com/" + name, Prices: []tracker.Observation{}}
		for i, v := range values {
			p.Prices = append(p.Prices, tracker.Observation{Date: tracker.NewTimestamp(t0.AddDate(0, 0, i)), Price: v})
		}
		ps[name] = p
	}
	require.NoError(t, dataio.NewFileStorage(path).Save(ps))
	return path
}

func TestRun(t *testing.T) {
	dataFile := writeStore(t, map[string][]float64{
		"Blender": {100, 85},
		"Lamp":    {50, 55},
	})

	tests := []struct {
		name        string
		args        []string
		code        int
		contains    []string
		notContains []string
	}{
		{
			name:     "negative drop as separate value",
			args:     []string{"alert", "--drop", "-20"},
			contains: []string{"Checking for price drops >= -20%", "Product: Blender", "Product: Lamp"},
		},
		{
			name:        "negative drop joined",
			args:        []string{"alert", "--drop=-5"},
			contains:    []string{"Product: Blender"},
			notContains: []string{"Product: Lamp"},
		},
		{
			name:        "positive drop",
			args:        []string{"alert", "--drop=10"},
			contains:    []string{"Checking for price drops >= 10%", "Drop:     15.0%"},
			notContains: []string{"Product: Lamp"},
		},
		{
			name:     "stats for all products",
			args:     []string{"stats"},
			contains: []string{"PRICE TRACKER STATISTICS", "Blender", "Lamp"},
		},
		{
			name: "no command",
			args: []string{},
		},
		{
			name: "missing drop",
			args: []string{"alert"},
			code: 2,
		},
		{
			name: "drop is not a number",
			args: []string{"alert", "--drop", "lots"},
			code: 2,
		},
		{
			name: "unknown command",
			args: []string{"frobnicate"},
			code: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newConsole := func(bool) *console.Console { return console.New(&buf, false) }

			args := append([]string{"pricetracker", "--file", dataFile}, tt.args...)
			code := run(context.Background(), config.Default(), args, newConsole)

			assert.Equal(t, tt.code, code)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, buf.String(), s)
			}
			if tt.code != 0 || len(tt.args) == 0 {
				assert.Empty(t, buf.String(), "no command should have run")
			}
		})
	}
}

func TestJoinNegativeValues(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"alert", "--drop", "-5"}, []string{"alert", "--drop=-5"}},
		{[]string{"alert", "--drop", "-2.5e1"}, []string{"alert", "--drop=-2.5e1"}},
		{[]string{"alert", "--drop", "5"}, []string{"alert", "--drop", "5"}},
		{[]string{"alert", "--drop", "-v"}, []string{"alert", "--drop", "-v"}},
		{[]string{"-f", "-1", "list"}, []string{"-f", "-1", "list"}},
		{[]string{"alert", "--drop"}, []string{"alert", "--drop"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, joinNegativeValues(tt.args, "--drop"))
	}
}

func TestRunReadsEnvironment(t *testing.T) {
	dataFile := writeStore(t, map[string][]float64{"Kettle": {30}})
	t.Setenv(config.EnvDataFile, dataFile)

	var buf bytes.Buffer
	newConsole := func(bool) *console.Console { return console.New(&buf, false) }

	// config.Default ignores the environment, so the option reads the variable itself
	code := run(context.Background(), config.Default(), []string{"pricetracker", "list"}, newConsole)
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "Kettle")

	buf.Reset()
	code = run(context.Background(), config.Default(), []string{"pricetracker", "-f", filepath.Join(t.TempDir(), "none.json"), "list"}, newConsole)
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "No products being tracked.")
}
