package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geniass/price-tracker/pkg/config"
	"github.com/geniass/price-tracker/pkg/console"
	dataio "github.com/geniass/price-tracker/pkg/io"
)

// priceServer serves /p/<id> pages with a settable price; ids without a
// price answer 404
type priceServer struct {
	*httptest.Server
	mu     sync.Mutex
	prices map[string]string
}

func newPriceServer() *priceServer {
	s := &priceServer{prices: map[string]string{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/p/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		price, ok := s.prices[r.URL.Path[len("/p/"):]]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body><div class="product-price">%s</div></body></html>`, price)
	})
	s.Server = httptest.NewServer(mux)
	return s
}

func (s *priceServer) set(id, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[id] = price
}

func newTestEnv(t *testing.T) (*env, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.DataFile = filepath.Join(t.TempDir(), "products.json")
	cfg.Timeout = 2 * time.Second
	cfg.NoColor = true

	var buf bytes.Buffer
	e := newEnv(context.Background(), cfg, console.New(&buf, false))
	return e, &buf
}

func TestWorkflow(t *testing.T) {
	ts := newPriceServer()
	defer ts.Close()
	e, buf := newTestEnv(t)

	ts.set("blender", "$100.00")
	e.add(ts.URL+"/p/blender", "Blender")
	assert.Contains(t, buf.String(), "[+] Added 'Blender' with current price: $100.00")

	e.add(ts.URL+"/p/lamp", "Lamp")
	assert.Contains(t, buf.String(), "(price will be fetched on next check)")

	buf.Reset()
	e.add(ts.URL+"/p/other", "Blender")
	assert.Contains(t, buf.String(), "Error: product already exists")

	ts.set("blender", "$85.00")
	buf.Reset()
	e.check()
	out := buf.String()
	assert.Contains(t, out, "Checking 2 product(s)...")
	assert.Contains(t, out, "Current: $85.00 (DOWN $15.00, -15.0%)")
	assert.Contains(t, out, "Failed to fetch price")
	assert.Contains(t, out, "[+] Updated 1/2 product(s)")

	buf.Reset()
	e.alert(10)
	assert.Contains(t, buf.String(), "Product: Blender")
	assert.Contains(t, buf.String(), "Drop:     15.0%")

	buf.Reset()
	e.list()
	assert.Contains(t, buf.String(), "Falling")

	buf.Reset()
	e.history("Blender")
	assert.Contains(t, buf.String(), "Overall Change: $-15.00 (-15.0%)")

	buf.Reset()
	e.history("Toaster")
	assert.Contains(t, buf.String(), "Error: product not found")

	buf.Reset()
	e.stats("")
	assert.Contains(t, buf.String(), "PRICE TRACKER STATISTICS")
	assert.Contains(t, buf.String(), "No price data available")

	reportPath := filepath.Join(t.TempDir(), "out", "report.html")
	buf.Reset()
	e.report(reportPath)
	assert.Contains(t, buf.String(), "Wrote report for 2 product(s)")
	html, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Blender")
}

func TestCheckSkipsOverflowingPrice(t *testing.T) {
	ts := newPriceServer()
	defer ts.Close()
	e, buf := newTestEnv(t)

	ts.set("camera", "$300.00")
	ts.set("zed", "$1.00")
	e.add(ts.URL+"/p/camera", "Camera")
	e.add(ts.URL+"/p/zed", "Zed")

	ts.set("camera", "$280.00")
	ts.set("zed", "$"+strings.Repeat("9", 400))
	buf.Reset()
	e.check()
	assert.Contains(t, buf.String(), "[+] Updated 1/2 product(s)")
	assert.NotContains(t, buf.String(), "Error:")

	ps, err := dataio.NewFileStorage(e.cfg.DataFile).Load()
	require.NoError(t, err)
	require.Len(t, ps["Camera"].Prices, 2)
	assert.Equal(t, 280.0, ps["Camera"].Prices[1].Price)
	assert.Len(t, ps["Zed"].Prices, 1)
}

func TestCorruptStore(t *testing.T) {
	e, buf := newTestEnv(t)
	require.NoError(t, os.WriteFile(e.cfg.DataFile, []byte("{not json"), 0644))

	e.list()
	assert.Contains(t, buf.String(), "Warning:")
	assert.Contains(t, buf.String(), "Starting fresh.")
	assert.Contains(t, buf.String(), "No products being tracked.")
}

func TestEmptyStoreCommands(t *testing.T) {
	e, buf := newTestEnv(t)

	e.check()
	assert.Contains(t, buf.String(), "No products being tracked.")
	_, err := os.Stat(e.cfg.DataFile)
	assert.True(t, os.IsNotExist(err), "check on an empty store should not write it")

	buf.Reset()
	e.alert(5)
	assert.Contains(t, buf.String(), "No products being tracked.")
}

func TestHelpCommand(t *testing.T) {
	e, buf := newTestEnv(t)
	e.help()
	assert.Contains(t, buf.String(), "PRODUCT PRICE TRACKER - Help")
	assert.Contains(t, buf.String(), e.cfg.DataFile)
}
