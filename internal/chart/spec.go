// Package chart builds a declarative Vega-Lite specification comparing close
// prices before and after data cleaning, and serializes it to a JSON file.
package chart

import (
	"fmt"

	"github.com/marketlens/stockcompare/internal/types"
)

const schemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a layered Vega-Lite specification.
type Spec struct {
	Schema string  `json:"$schema"`
	Title  string  `json:"title"`
	Data   Data    `json:"data"`
	Layer  []Layer `json:"layer"`
}

type Data struct {
	Values []types.ComparisonPoint `json:"values"`
}

// Layer is one unit spec of the layered chart. Both layers share the same
// encoding and differ only in mark type.
type Layer struct {
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
	Params   []Param  `json:"params,omitempty"`
}

type Mark struct {
	Type    string  `json:"type"`
	Opacity float64 `json:"opacity,omitempty"`
	Size    float64 `json:"size,omitempty"`
}

type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

// Channel binds a data field to a visual channel.
type Channel struct {
	Field  string `json:"field"`
	Type   string `json:"type"`
	Title  string `json:"title,omitempty"`
	Format string `json:"format,omitempty"`
}

// Param declares an interaction parameter. Binding an interval selection to
// scales is what makes the chart pan/zoom-enabled.
type Param struct {
	Name   string `json:"name"`
	Select Select `json:"select"`
	Bind   string `json:"bind,omitempty"`
}

type Select struct {
	Type string `json:"type"`
}

// comparisonEncoding is the shared encoding of both layers: date on x,
// close on y, provenance on color, all three in the tooltip.
func comparisonEncoding() Encoding {
	return Encoding{
		X: &Channel{
			Field: "trade_date",
			Type:  "temporal",
			Title: "Trade date",
		},
		Y: &Channel{
			Field: "close",
			Type:  "quantitative",
			Title: "Close",
		},
		Color: &Channel{
			Field: "type",
			Type:  "nominal",
			Title: "Dataset",
		},
		Tooltip: []Channel{
			{Field: "trade_date", Type: "temporal", Title: "Date", Format: "%Y-%m-%d"},
			{Field: "close", Type: "quantitative", Title: "Close", Format: ".2f"},
			{Field: "type", Type: "nominal", Title: "Dataset"},
		},
	}
}

// NewComparisonSpec builds the layered line-and-point chart for the merged
// comparison table.
func NewComparisonSpec(points []types.ComparisonPoint, stockCode int, period types.Period) Spec {
	return Spec{
		Schema: schemaURL,
		Title:  fmt.Sprintf("Stock %d: %s close before vs after cleaning", stockCode, period),
		Data: Data{
			Values: points,
		},
		Layer: []Layer{
			{
				Mark:     Mark{Type: "line"},
				Encoding: comparisonEncoding(),
				Params: []Param{
					{
						Name:   "grid",
						Select: Select{Type: "interval"},
						Bind:   "scales",
					},
				},
			},
			{
				Mark:     Mark{Type: "point", Opacity: 0.6, Size: 30},
				Encoding: comparisonEncoding(),
			},
		},
	}
}
