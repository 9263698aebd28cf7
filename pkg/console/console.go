package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-colorable"

	"github.com/geniass/price-tracker/pkg/tracker"
)

const (
	wideRule   = 80
	narrowRule = 60
	alertRule  = 70
)

// Console prints tracker results for people. It also implements
// tracker.Reporter so batch progress shows up as it happens.
type Console struct {
	out io.Writer
	p   palette
}

func New(w io.Writer, color bool) *Console {
	return &Console{out: w, p: palette{enabled: color}}
}

// NewStdout writes to standard output, with colours when it is a terminal
// and noColor is false.
func NewStdout(noColor bool) *Console {
	return New(colorable.NewColorableStdout(), !noColor && colorSupported(os.Stdout))
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) rule(width int) string {
	return c.p.Header(strings.Repeat("=", width))
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func (c *Console) trend(t tracker.Trend) string {
	switch t {
	case tracker.Rising:
		return c.p.Red(string(t))
	case tracker.Falling:
		return c.p.Green(string(t))
	default:
		return c.p.Cyan(string(t))
	}
}

// changeText describes a change, e.g. "UP $5.00 (+10.0%)".
func changeText(ch tracker.Change) string {
	switch ch.Direction() {
	case tracker.Up:
		return fmt.Sprintf("UP %s (+%.1f%%)", money(ch.Amount), ch.Percent)
	case tracker.Down:
		return fmt.Sprintf("DOWN %s (%.1f%%)", money(math.Abs(ch.Amount)), ch.Percent)
	default:
		return "No change"
	}
}

func (c *Console) Error(err error) {
	c.printf("%s\n", c.p.Red("Error: "+err.Error()))
}

func (c *Console) Warn(msg string) {
	c.printf("%s\n", c.p.Yellow("Warning: "+msg))
}

func (c *Console) NoProducts() {
	c.printf("\n%s\n", c.p.Yellow("No products being tracked."))
	c.printf("Use '%s' to add a product.\n\n", c.p.Cyan("pricetracker add <url> <name>"))
}

func (c *Console) Adding(name string) {
	c.printf("Adding product '%s'...\n", name)
}

func (c *Console) Added(res tracker.AddResult) {
	if !res.HasPrice {
		c.Warn(fmt.Sprintf("could not fetch initial price (%v), but product will be added.", res.PriceErr))
		c.printf("%s\n", c.p.Green(fmt.Sprintf("[+] Added '%s' (price will be fetched on next check)", res.Product.Name)))
		return
	}
	c.printf("%s\n", c.p.Green(fmt.Sprintf("[+] Added '%s' with current price: %s", res.Product.Name, money(res.Price))))
}

func (c *Console) CheckStarted(total int) {
	c.printf("Checking %d product(s)...\n", total)
}

func (c *Console) Checking(name string) {
	c.printf("\nChecking '%s'...\n", name)
}

func (c *Console) Checked(res tracker.CheckResult) {
	if res.Err != nil {
		c.printf("  %s\n", c.p.Red("Failed to fetch price: "+res.Err.Error()))
		return
	}

	current := c.p.Yellow(money(res.Price))
	if res.Change == nil {
		c.printf("  Current: %s\n", current)
		return
	}

	ch := *res.Change
	switch ch.Direction() {
	case tracker.Up:
		c.printf("  Current: %s (%s)\n", current, c.p.Red(fmt.Sprintf("UP %s, +%.1f%%", money(ch.Amount), ch.Percent)))
	case tracker.Down:
		c.printf("  Current: %s (%s)\n", current, c.p.Green(fmt.Sprintf("DOWN %s, %.1f%%", money(math.Abs(ch.Amount)), ch.Percent)))
	default:
		c.printf("  Current: %s (no change)\n", current)
	}
}

func (c *Console) CheckFinished(s tracker.CheckSummary) {
	c.printf("\n%s\n", c.p.Green(fmt.Sprintf("[+] Updated %d/%d product(s)", s.Updated, s.Total)))
}

// List prints one row per product with its latest price and trend.
func (c *Console) List(ps []tracker.Product) {
	if len(ps) == 0 {
		c.NoProducts()
		return
	}

	c.printf("\n%s\n", c.rule(wideRule))
	c.printf("%s\n", c.p.Bold(fmt.Sprintf("%-35s %-15s %-12s %-10s", "Product", "Price", "Entries", "Trend")))
	c.printf("%s\n", c.rule(wideRule))

	for _, p := range ps {
		latest, ok := p.Latest()
		if !ok {
			c.printf("%-35s %s %-12d %s\n", p.Name, c.p.Yellow(fmt.Sprintf("%-15s", "N/A")), 0, c.p.Yellow("N/A"))
			continue
		}
		t := tracker.CalculateTrend(p.Prices)
		c.printf("%-35s %s %-12d %s\n",
			p.Name,
			c.p.Bold(c.p.Yellow(fmt.Sprintf("%-15s", money(latest.Price)))),
			len(p.Prices),
			c.trend(t),
		)
	}

	c.printf("%s\n\n", c.rule(wideRule))
}

// History prints every observation of p with its change against the
// previous one, followed by the trend and the overall change.
func (c *Console) History(p tracker.Product) {
	c.printf("\nPrice History for: %s\n", c.p.Bold(p.Name))
	c.printf("URL: %s\n", c.p.Underline(p.URL))
	c.printf("\n%s\n", strings.Repeat("=", narrowRule))

	if len(p.Prices) == 0 {
		c.println("No price history available.")
		return
	}

	c.printf("%-25s %-15s %-15s\n", "Date", "Price", "Change")
	c.println(strings.Repeat("-", narrowRule))

	for _, e := range tracker.History(p) {
		change := "Initial"
		if e.Change != nil {
			change = changeText(*e.Change)
		}
		c.printf("%-25s $%-14.2f %-15s\n", e.Date.Format("2006-01-02 15:04:05"), e.Price, change)
	}

	c.printf("\n%s\n", strings.Repeat("=", narrowRule))
	c.printf("Trend: %s\n", c.trend(tracker.CalculateTrend(p.Prices)))
	if ch, ok := tracker.OverallChange(p); ok {
		c.printf("Overall Change: $%+.2f (%+.1f%%)\n", ch.Amount, ch.Percent)
	}
}

// AllStats prints the statistics of every product.
func (c *Console) AllStats(ps []tracker.Product) {
	if len(ps) == 0 {
		c.printf("\n%s\n\n", c.p.Yellow("No products being tracked."))
		return
	}

	c.printf("\n%s\n", c.rule(wideRule))
	c.printf("%s\n", c.p.Bold("PRICE TRACKER STATISTICS"))
	c.printf("%s\n\n", c.rule(wideRule))

	for _, p := range ps {
		c.Stats(p)
		c.println()
	}
}

func (c *Console) Stats(p tracker.Product) {
	c.printf("%s\n", c.p.Bold(c.p.Cyan(p.Name)))
	c.printf("URL: %s\n", c.p.Blue(p.URL))

	s, ok := tracker.ComputeStats(p)
	if !ok {
		c.printf("  %s\n\n", c.p.Yellow("No price data available"))
		return
	}

	c.printf("  %s\n", c.p.Bold("Price Range:"))
	c.printf("    Current:  %s\n", c.p.Yellow(money(s.Latest)))
	c.printf("    Average:  %s\n", money(s.Mean))
	c.printf("    Lowest:   %s (on %s)\n", c.p.Green(money(s.Min)), s.MinDate.Format("2006-01-02"))
	c.printf("    Highest:  %s (on %s)\n", c.p.Red(money(s.Max)), s.MaxDate.Format("2006-01-02"))

	overall := fmt.Sprintf("$%+.2f (%+.1f%%)", s.Change, s.ChangePercent)
	switch {
	case s.Change < 0:
		overall = c.p.Green(overall)
	case s.Change > 0:
		overall = c.p.Red(overall)
	default:
		overall = c.p.Cyan(overall)
	}
	c.printf("\n  %s\n", c.p.Bold("Price Changes:"))
	c.printf("    Overall:  %s\n", overall)
	if s.HasSpreadPercent {
		c.printf("    Spread:   %s (%.1f%%)\n", money(s.Spread), s.SpreadPercent)
	} else {
		c.printf("    Spread:   %s\n", money(s.Spread))
	}

	c.printf("\n  %s\n", c.p.Bold("Statistics:"))
	c.printf("    Data Points:  %d\n", s.DataPoints)
	c.printf("    Volatility:   %.1f%%\n", s.Volatility)
	c.printf("    Trend:        %s\n", c.trend(s.Trend))
	c.printf("    First Check:  %s\n", s.FirstCheck.Format("2006-01-02 15:04"))
	c.printf("    Last Check:   %s\n", s.LastCheck.Format("2006-01-02 15:04"))
}

func (c *Console) Alerts(threshold float64, alerts []tracker.Alert) {
	c.printf("\nChecking for price drops >= %g%%...\n", threshold)

	if len(alerts) == 0 {
		c.println("No significant price drops detected.")
		return
	}

	c.printf("\n%s\n", c.p.Bold(c.p.Red("[!] PRICE DROP ALERTS:")))
	c.println(strings.Repeat("=", alertRule))
	for _, a := range alerts {
		c.printf("Product: %s\n", c.p.Bold(a.Name))
		c.printf("  Previous: %s\n", money(a.Previous))
		c.printf("  Current:  %s\n", c.p.Green(money(a.Current)))
		c.printf("  Drop:     %.1f%%\n", a.Drop)
		c.println()
	}
}

func (c *Console) ReportWritten(path string, n int) {
	c.printf("%s\n", c.p.Green(fmt.Sprintf("[+] Wrote report for %d product(s) to %s", n, path)))
}
