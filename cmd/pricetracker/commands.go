package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/geniass/price-tracker/pkg/config"
	"github.com/geniass/price-tracker/pkg/console"
	dataio "github.com/geniass/price-tracker/pkg/io"
	"github.com/geniass/price-tracker/pkg/scraper"
	"github.com/geniass/price-tracker/pkg/tracker"
	"github.com/geniass/price-tracker/pkg/web"
)

// env carries what every command needs. Errors are printed for the user
// rather than returned, so every command exits with status 0.
type env struct {
	ctx context.Context
	cfg config.Config
	out *console.Console
}

func newEnv(ctx context.Context, cfg config.Config, out *console.Console) *env {
	return &env{
		ctx: ctx,
		cfg: cfg,
		out: out,
	}
}

func (e *env) open() (*tracker.Tracker, bool) {
	t, err := tracker.Open(tracker.Options{
		Fetcher:  scraper.NewScraper(e.cfg.UserAgent, e.cfg.Timeout),
		Storage:  dataio.NewFileStorage(e.cfg.DataFile),
		Reporter: e.out,
	})
	if err != nil {
		e.out.Error(err)
		return nil, false
	}
	return t, true
}

func (e *env) add(url, name string) {
	t, ok := e.open()
	if !ok {
		return
	}

	e.out.Adding(name)
	res, err := t.Add(e.ctx, url, name)
	if res.Product.Name != "" {
		e.out.Added(res)
	}
	if err != nil {
		e.out.Error(err)
	}
}

func (e *env) check() {
	t, ok := e.open()
	if !ok {
		return
	}
	if t.Len() == 0 {
		e.out.NoProducts()
		return
	}

	e.out.CheckStarted(t.Len())
	summary, err := t.CheckAll(e.ctx)
	e.out.CheckFinished(summary)
	if err != nil {
		e.out.Error(err)
	}
}

func (e *env) list() {
	t, ok := e.open()
	if !ok {
		return
	}
	e.out.List(t.Products())
}

func (e *env) history(name string) {
	t, ok := e.open()
	if !ok {
		return
	}
	p, err := t.Product(name)
	if err != nil {
		e.out.Error(err)
		return
	}
	e.out.History(p)
}

func (e *env) stats(name string) {
	t, ok := e.open()
	if !ok {
		return
	}
	if name == "" {
		e.out.AllStats(t.Products())
		return
	}
	p, err := t.Product(name)
	if err != nil {
		e.out.Error(err)
		return
	}
	e.out.Stats(p)
}

func (e *env) alert(threshold float64) {
	t, ok := e.open()
	if !ok {
		return
	}
	if t.Len() == 0 {
		e.out.NoProducts()
		return
	}
	e.out.Alerts(threshold, t.Alerts(threshold))
}

func (e *env) report(path string) {
	t, ok := e.open()
	if !ok {
		return
	}

	ps := t.Products()
	err := renderToFile(path, func(w io.Writer) error {
		return web.RenderReport(w, web.NewReportContext("Tracked Products", time.Now(), ps))
	})
	if err != nil {
		e.out.Error(err)
		return
	}
	e.out.ReportWritten(path, len(ps))
}

func (e *env) help() {
	if err := e.out.Help(e.cfg.DataFile); err != nil {
		e.out.Error(err)
	}
}

func renderToFile(path string, renderFunc func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModeDir|0775); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := renderFunc(f); err != nil {
		return err
	}
	return nil
}
