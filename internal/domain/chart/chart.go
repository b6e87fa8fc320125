// Package chart builds declarative Vega-Lite chart specifications for the
// dashboard count series.
package chart

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/okian/govdash/internal/domain/model"
)

// SchemaURL is the Vega-Lite schema every spec declares.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is the subset of a Vega-Lite unit spec the dashboard needs.
type Spec struct {
	Schema   string   `json:"$schema"`
	Title    string   `json:"title,omitempty"`
	Width    string   `json:"width"`
	Data     Data     `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
}

// Data holds inline rows.
type Data struct {
	Values []map[string]any `json:"values"`
}

// Mark is the graphical primitive.
type Mark struct {
	Type    string `json:"type"`
	Point   bool   `json:"point,omitempty"`
	Tooltip bool   `json:"tooltip,omitempty"`
}

// Encoding maps data fields to channels.
type Encoding struct {
	X Channel `json:"x"`
	Y Channel `json:"y"`
}

// Channel is a field with its measurement type.
type Channel struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// Bar returns a bar chart of series, x = date:T, y = <field>:Q.
func Bar(title string, series model.CountSeries) Spec {
	return newSpec(title, series, Mark{Type: "bar", Tooltip: true})
}

// Line returns a line chart of series; withPoints overlays point marks.
func Line(title string, series model.CountSeries, withPoints bool) Spec {
	return newSpec(title, series, Mark{Type: "line", Point: withPoints, Tooltip: true})
}

func newSpec(title string, series model.CountSeries, mark Mark) Spec {
	values := make([]map[string]any, len(series.Points))
	for i, p := range series.Points {
		values[i] = map[string]any{
			"date":       p.Date.Format("2006-01-02"),
			series.Field: p.Count,
		}
	}
	return Spec{
		Schema: SchemaURL,
		Title:  title,
		Width:  "container",
		Data:   Data{Values: values},
		Mark:   mark,
		Encoding: Encoding{
			X: Channel{Field: "date", Type: "temporal"},
			Y: Channel{Field: series.Field, Type: "quantitative"},
		},
	}
}

// JSON encodes the spec.
func (s Spec) JSON() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode chart spec: %w", err)
	}
	return b, nil
}

// Script returns the spec as a JavaScript literal for inline embedding.
func (s Spec) Script() (template.JS, error) {
	b, err := s.JSON()
	if err != nil {
		return "", err
	}
	return template.JS(b), nil //nolint:gosec // marshalled JSON is a valid JS literal
}
