package scraper

import (
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/shopspring/decimal"
)

var priceNumberRegex = regexp.MustCompile(`\d+\.?\d*`)

var priceTextCleaner = strings.NewReplacer("$", "", "£", "", "€", "", ",", "")

// MarketplaceRules are used for amazon pages, whose price markup moves around a lot.
var MarketplaceRules = RuleSet{
	SelectorRule("span.a-price-whole"),
	SelectorRule("span.a-offscreen"),
	SelectorRule("span#priceblock_ourprice"),
	SelectorRule("span#priceblock_dealprice"),
	SelectorRule("span.a-color-price"),
}

var GenericRules = RuleSet{
	SelectorRule(`[class*="price"]`),
	SelectorRule(`[id*="price"]`),
	SelectorRule(`[class*="Price"]`),
	SelectorRule("span.price"),
	SelectorRule("div.price"),
	SelectorRule("p.price"),
}

var marketplaces = []struct {
	token string
	rules RuleSet
}{
	{token: "amazon", rules: MarketplaceRules},
}

// RulesFor picks the rule set for a product URL.
func RulesFor(urlHint string) RuleSet {
	hint := strings.ToLower(urlHint)
	for _, m := range marketplaces {
		if strings.Contains(hint, m.token) {
			return m.rules
		}
	}
	return GenericRules
}

// Extract returns the first price found in markup by the rules for urlHint.
func Extract(markup string, urlHint string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return 0, false
	}
	return RulesFor(urlHint).Apply(doc)
}

// Apply runs the rules in order and returns the first price any of them finds.
func (rs RuleSet) Apply(doc *goquery.Document) (float64, bool) {
	for _, rule := range rs {
		if price, ok := rule(doc); ok {
			return price, true
		}
	}
	return 0, false
}

// SelectorRule matches a CSS selector and parses the text of each match in
// document order until one of them holds a number. It panics on an invalid
// selector, so rules are expected to be package-level values.
func SelectorRule(selector string) Rule {
	matcher := cascadia.MustCompile(selector)
	return func(doc *goquery.Document) (float64, bool) {
		var (
			price float64
			found bool
		)
		doc.FindMatcher(matcher).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			price, found = ParsePrice(s.Text())
			return !found
		})
		return price, found
	}
}

// ParsePrice pulls the first number out of a price label such as "$1,234.56".
func ParsePrice(text string) (float64, bool) {
	text = strings.TrimSpace(priceTextCleaner.Replace(strings.TrimSpace(text)))

	match := priceNumberRegex.FindString(text)
	if match == "" {
		return 0, false
	}

	// "1299." is what amazon puts in a-price-whole
	d, err := decimal.NewFromString(strings.TrimSuffix(match, "."))
	if err != nil {
		return 0, false
	}
	price := d.InexactFloat64()
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, false
	}
	return price, true
}
