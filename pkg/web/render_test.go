package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geniass/price-tracker/pkg/tracker"
)

func TestRenderReport(t *testing.T) {
	t0 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	ps := []tracker.Product{
		{
			Name: "Camera <4K>",
			URL:  "https://shop.example.com/camera?id=1&ref=2",
			Prices: []tracker.Observation{
				{Date: tracker.NewTimestamp(t0), Price: 300},
				{Date: tracker.NewTimestamp(t0.AddDate(0, 0, 1)), Price: 250},
			},
		},
		{Name: "Watch", URL: "https://shop.example.com/watch", Prices: []tracker.Observation{}},
	}

	var buf bytes.Buffer
	c := NewReportContext("Tracked Products", t0, ps)
	require.NoError(t, RenderReport(&buf, c))

	out := buf.String()
	assert.Contains(t, out, "<title>Tracked Products | Price Tracker</title>")
	assert.Contains(t, out, "Camera &lt;4K&gt;")
	assert.NotContains(t, out, "Camera <4K>")
	assert.NotContains(t, out, "favicon")
	assert.Contains(t, out, "$250.00")
	assert.Contains(t, out, `class="falling">$-50.00 (-16.7%)`)
	assert.Contains(t, out, "Initial")
	assert.Contains(t, out, "No price data available.")
	assert.Contains(t, out, "Last updated: 2026-10-01T09:00:00 UTC")
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, NewReportContext("Nothing", time.Now(), nil)))
	assert.Contains(t, buf.String(), "No products being tracked.")
}

func TestNewReportContext(t *testing.T) {
	ps := []tracker.Product{{Name: "Empty", Prices: []tracker.Observation{}}}
	c := NewReportContext("t", time.Now(), ps)

	require.Len(t, c.Products, 1)
	assert.False(t, c.Products[0].HasStats)
	assert.Empty(t, c.Products[0].History)
}
