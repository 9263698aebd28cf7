package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geniass/price-tracker/pkg/scraper"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"
)

// Storage loads and saves the whole set of tracked products at once.
type Storage interface {
	// Load returns an error wrapping ErrCorruptStore when the stored document
	// cannot be decoded.
	Load() (map[string]Product, error)
	Save(products map[string]Product) error
}

type Options struct {
	Fetcher  scraper.Fetcher
	Storage  Storage
	Reporter Reporter // optional
	Now      func() time.Time
}

// Tracker holds every tracked product in memory and writes them all back to
// its Storage after each mutation. It is not safe for concurrent use.
type Tracker struct {
	fetcher  scraper.Fetcher
	storage  Storage
	reporter Reporter
	now      func() time.Time

	// keyed by product name, iterated in name order
	products btree.Map[string, *Product]
}

// Open loads the stored products. A corrupted document is reported as a
// warning and replaced by an empty store; other load errors are returned.
func Open(opts Options) (*Tracker, error) {
	t := &Tracker{
		fetcher:  opts.Fetcher,
		storage:  opts.Storage,
		reporter: opts.Reporter,
		now:      opts.Now,
	}
	if t.reporter == nil {
		t.reporter = NopReporter{}
	}
	if t.now == nil {
		t.now = time.Now
	}

	products, err := t.storage.Load()
	if errors.Is(err, ErrCorruptStore) {
		log.Debug().Err(err).Msg("starting with an empty store")
		t.reporter.Warn(fmt.Sprintf("%v. Starting fresh.", err))
		products = nil
	} else if err != nil {
		return nil, err
	}

	for name, p := range products {
		p := p.clone()
		p.Name = name
		t.products.Set(name, &p)
	}

	return t, nil
}

func (t *Tracker) Len() int {
	return t.products.Len()
}

// Products returns copies of all tracked products ordered by name.
func (t *Tracker) Products() []Product {
	ps := make([]Product, 0, t.products.Len())
	t.products.Scan(func(_ string, p *Product) bool {
		ps = append(ps, p.clone())
		return true
	})
	return ps
}

func (t *Tracker) Product(name string) (Product, error) {
	p, ok := t.products.Get(name)
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.clone(), nil
}

// Add starts tracking a product and tries to record its current price. A
// failed price lookup does not prevent the product from being added.
func (t *Tracker) Add(ctx context.Context, url string, name string) (AddResult, error) {
	if name == "" {
		return AddResult{}, ErrInvalidName
	}
	if _, ok := t.products.Get(name); ok {
		return AddResult{}, fmt.Errorf("%w: %q", ErrDuplicate, name)
	}

	p := &Product{
		Name:   name,
		URL:    url,
		Prices: []Observation{},
	}

	var res AddResult
	price, err := scraper.ScrapePrice(ctx, t.fetcher, url)
	if err != nil {
		log.Debug().Err(err).Str("product", name).Msg("initial price unavailable")
		res.PriceErr = err
	} else {
		t.record(p, price)
		res.Price = price
		res.HasPrice = true
	}

	t.products.Set(name, p)
	res.Product = p.clone()

	if err := t.save(); err != nil {
		return res, err
	}
	return res, nil
}

// CheckAll fetches the current price of every product in name order. A
// product whose price cannot be fetched keeps its history untouched and does
// not stop the others. The store is saved once, after the last product.
func (t *Tracker) CheckAll(ctx context.Context) (CheckSummary, error) {
	summary := CheckSummary{Total: t.products.Len()}
	if summary.Total == 0 {
		return summary, nil
	}

	t.products.Scan(func(name string, p *Product) bool {
		t.reporter.Checking(name)

		res := CheckResult{Name: name, URL: p.URL}
		price, err := scraper.ScrapePrice(ctx, t.fetcher, p.URL)
		if err != nil {
			log.Debug().Err(err).Str("product", name).Msg("check failed")
			res.Err = err
		} else {
			if prev, ok := p.Latest(); ok {
				c := NewChange(prev.Price, price)
				res.Change = &c
			}
			t.record(p, price)
			res.Price = price
			summary.Updated++
		}

		summary.Results = append(summary.Results, res)
		t.reporter.Checked(res)
		return true
	})

	if err := t.save(); err != nil {
		return summary, err
	}
	return summary, nil
}

// Alerts returns the products whose latest price dropped by at least
// threshold percent, ordered by name.
func (t *Tracker) Alerts(threshold float64) []Alert {
	var alerts []Alert
	t.products.Scan(func(_ string, p *Product) bool {
		if a, ok := DropAlert(*p, threshold); ok {
			alerts = append(alerts, a)
		}
		return true
	})
	return alerts
}

func (t *Tracker) record(p *Product, price float64) {
	p.Prices = append(p.Prices, Observation{
		Date:  NewTimestamp(t.now()),
		Price: price,
	})
}

func (t *Tracker) save() error {
	doc := make(map[string]Product, t.products.Len())
	t.products.Scan(func(name string, p *Product) bool {
		doc[name] = *p
		return true
	})
	if err := t.storage.Save(doc); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}
	return nil
}
