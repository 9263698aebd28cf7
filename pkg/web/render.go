package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/geniass/price-tracker/pkg/tracker"
)

//go:embed templates
var templatesFs embed.FS

// ProductView is what the report shows for one product.
type ProductView struct {
	tracker.Product
	Stats    tracker.Stats
	HasStats bool
	History  []tracker.HistoryEntry
}

type ReportContext struct {
	Title       string
	LastUpdated time.Time
	Products    []ProductView
}

func (c ReportContext) FormattedLastUpdated() string {
	return c.LastUpdated.Format("2006-01-02T15:04:05 MST")
}

func NewReportContext(title string, lastUpdated time.Time, ps []tracker.Product) ReportContext {
	views := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		s, ok := tracker.ComputeStats(p)
		views = append(views, ProductView{
			Product:  p,
			Stats:    s,
			HasStats: ok,
			History:  tracker.History(p),
		})
	}
	return ReportContext{
		Title:       title,
		LastUpdated: lastUpdated,
		Products:    views,
	}
}

var funcs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%+.1f%%", v)
	},
	"trendClass": func(t tracker.Trend) string {
		switch t {
		case tracker.Rising:
			return "rising"
		case tracker.Falling:
			return "falling"
		default:
			return "stable"
		}
	},
	"changeClass": func(c *tracker.Change) string {
		if c == nil {
			return ""
		}
		switch c.Direction() {
		case tracker.Up:
			return "rising"
		case tracker.Down:
			return "falling"
		default:
			return "stable"
		}
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

func RenderReport(w io.Writer, c ReportContext) error {
	t, err := template.New("report.html.tpl").Funcs(funcs).ParseFS(templatesFs, "templates/report.html.tpl")
	if err != nil {
		return err
	}
	t, err = t.ParseFS(templatesFs, "templates/common/*")
	if err != nil {
		return err
	}

	err = t.Execute(w, c)
	if err != nil {
		return err
	}
	return nil
}
