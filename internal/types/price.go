package types

import (
	"encoding/json"
	"time"

	"github.com/marketlens/stockcompare/pkg/errors"
)

// Provenance tags a row with the dataset it originated from.
type Provenance string

const (
	ProvenanceProcessed   Provenance = "processed"
	ProvenanceUnprocessed Provenance = "unprocessed"
)

// tradeDateLayouts are the accepted text forms for trade_date, tried in order.
// The first layout is also the canonical output form.
var tradeDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// PriceRecord is a single row loaded from a price dataset.
type PriceRecord struct {
	Id        string
	StockCode int
	TradeDate time.Time
	Close     float64
}

// ComparisonPoint is a projected row of the merged comparison table:
// one close price, on one date, from one of the two datasets.
type ComparisonPoint struct {
	TradeDate time.Time  `json:"trade_date"`
	Close     float64    `json:"close"`
	Type      Provenance `json:"type"`
}

// MarshalJSON emits the trade date in its canonical text form so the chart
// data stays readable and re-parseable.
func (p ComparisonPoint) MarshalJSON() ([]byte, error) {
	type point struct {
		TradeDate string     `json:"trade_date"`
		Close     float64    `json:"close"`
		Type      Provenance `json:"type"`
	}

	return json.Marshal(point{
		TradeDate: FormatTradeDate(p.TradeDate),
		Close:     p.Close,
		Type:      p.Type,
	})
}

// ParseTradeDate parses a trade date from its text form.
func ParseTradeDate(s string) (time.Time, error) {
	for _, layout := range tradeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeInvalidTradeDate, "unparseable trade date: %q", s)
}

// FormatTradeDate formats a trade date in its canonical text form.
func FormatTradeDate(t time.Time) string {
	return t.Format(tradeDateLayouts[0])
}
