package tracker

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrDuplicate    = errors.New("product already exists")
	ErrInvalidName  = errors.New("product name must not be empty")
	ErrCorruptStore = errors.New("store document is corrupted")
)

// Product is a tracked product and its price history, oldest first.
type Product struct {
	Name   string        `json:"name"`
	URL    string        `json:"url"`
	Prices []Observation `json:"prices"`
}

// Observation is one price captured at one point in time.
type Observation struct {
	Date  Timestamp `json:"date"`
	Price float64   `json:"price"`
}

// Latest returns the most recent observation.
func (p Product) Latest() (Observation, bool) {
	if len(p.Prices) == 0 {
		return Observation{}, false
	}
	return p.Prices[len(p.Prices)-1], true
}

func (p Product) clone() Product {
	prices := make([]Observation, len(p.Prices))
	copy(prices, p.Prices)
	p.Prices = prices
	return p
}

type Trend string

const (
	Rising           Trend = "Rising"
	Falling          Trend = "Falling"
	Stable           Trend = "Stable"
	InsufficientData Trend = "Insufficient data"
)

type Direction int

const (
	Unchanged Direction = iota
	Up
	Down
)

// Change is the difference between two consecutive prices.
type Change struct {
	Previous float64
	Current  float64
	Amount   float64
	// Percent is relative to Previous, and 0 when Previous is 0.
	Percent float64
}

func NewChange(previous, current float64) Change {
	c := Change{
		Previous: previous,
		Current:  current,
		Amount:   current - previous,
	}
	if previous != 0 {
		c.Percent = c.Amount / previous * 100
	}
	return c
}

func (c Change) Direction() Direction {
	switch {
	case c.Amount > 0:
		return Up
	case c.Amount < 0:
		return Down
	default:
		return Unchanged
	}
}

// AddResult describes a newly added product. PriceErr is set when the initial
// price could not be fetched; the product is tracked anyway.
type AddResult struct {
	Product  Product
	Price    float64
	HasPrice bool
	PriceErr error
}

// CheckResult is the outcome of checking one product. Change is nil when the
// product had no earlier observation, and everything but Name and URL is
// unset when Err is not nil.
type CheckResult struct {
	Name   string
	URL    string
	Price  float64
	Change *Change
	Err    error
}

type CheckSummary struct {
	Results []CheckResult
	Total   int
	Updated int
}

// HistoryEntry is an observation with its change against the one before it.
// Change is nil for the first observation.
type HistoryEntry struct {
	Observation
	Change *Change
}

type Alert struct {
	Name     string
	URL      string
	Previous float64
	Current  float64
	// Drop is the percentage fall from Previous to Current.
	Drop float64
}

// Stats summarises a product's whole history.
type Stats struct {
	DataPoints int

	First  float64
	Latest float64
	Min    float64
	Max    float64
	Mean   float64

	Change        float64
	ChangePercent float64

	Spread float64
	// SpreadPercent is relative to Min and only set when HasSpreadPercent is true.
	SpreadPercent    float64
	HasSpreadPercent bool

	Variance float64
	StdDev   float64
	// Volatility is StdDev as a percentage of Mean.
	Volatility float64

	MinDate    time.Time
	MaxDate    time.Time
	FirstCheck time.Time
	LastCheck  time.Time

	Trend Trend
}
