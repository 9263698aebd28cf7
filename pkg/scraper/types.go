package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// Scraper fetches product pages. Each Fetch runs one request on a clone of the
// base collector so callbacks never leak between products.
type Scraper struct {
	colly *colly.Collector
}

// Rule looks for a price somewhere in a parsed page.
type Rule func(doc *goquery.Document) (float64, bool)

// RuleSet is an ordered list of rules; earlier rules win.
type RuleSet []Rule
