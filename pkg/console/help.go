package console

import (
	"text/template"
)

type helpContext struct {
	Rule     string
	DataFile string
}

var helpTemplate = template.Must(template.New("help").Funcs(template.FuncMap{
	"bold": func(s string) string { return s },
	"cmd":  func(s string) string { return s },
	"note": func(s string) string { return s },
}).Parse(
	`
{{ .Rule }}
{{ bold "PRODUCT PRICE TRACKER - Help" }}
{{ .Rule }}

{{ bold "DESCRIPTION:" }}
  Track product prices from e-commerce sites with historical data,
  trend analysis, and price drop alerts.

{{ bold "COMMANDS:" }}

  {{ cmd "add" }} <url> <name>
      Add a new product to track
      Example: pricetracker add "https://amazon.com/dp/B08N5WRWNW" "AirPods Pro"

  {{ cmd "check" }}
      Update prices for all tracked products
      Example: pricetracker check

  {{ cmd "list" }}
      Display all tracked products with latest prices and trends
      Example: pricetracker list

  {{ cmd "history" }} <name>
      Show complete price history for a product
      Example: pricetracker history "AirPods Pro"

  {{ cmd "stats" }} [name]
      Show detailed statistics (avg, min, max, volatility, etc.)
      Example: pricetracker stats
      Example: pricetracker stats "AirPods Pro"

  {{ cmd "alert" }} --drop <percentage>
      Check for price drops of at least the given percentage
      Example: pricetracker alert --drop 10

  {{ cmd "report" }} [--out <file>]
      Write an HTML report of every tracked product
      Example: pricetracker report --out prices.html

  {{ cmd "help" }}
      Display this help message

{{ bold "WORKFLOW:" }}
  1. Add products you want to track
  2. Run 'check' regularly (daily recommended) to build price history
  3. Use 'list' to see current prices and trends
  4. Use 'history' to view detailed price changes
  5. Use 'stats' for comprehensive analytics
  6. Use 'alert' to find good deals

{{ bold "TIPS:" }}
  - Amazon URLs work best: https://amazon.com/dp/PRODUCT_ID
  - Green = falling prices (good for buying!)
  - Red = rising prices (missed opportunity?)
  - Data stored in: {{ note .DataFile }}

{{ .Rule }}
`,
))

// Help prints the long help text. dataFile is the store path in use.
func (c *Console) Help(dataFile string) error {
	t, err := helpTemplate.Clone()
	if err != nil {
		return err
	}
	t.Funcs(template.FuncMap{
		"bold": c.p.Bold,
		"cmd":  c.p.Cyan,
		"note": c.p.Yellow,
	})

	return t.Execute(c.out, helpContext{
		Rule:     c.rule(wideRule),
		DataFile: dataFile,
	})
}
