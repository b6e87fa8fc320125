// Package model contains domain models passed between layers.
package model

import (
	"html/template"
	"time"
)

// SummaryColumn is the single column name of a summary table.
const SummaryColumn = "summary_html"

// Summary is one markup-bearing text blob returned by a webhook.
type Summary struct {
	HTML string `json:"summary_html"`
}

// SummaryTable wraps a fetched texts array, one row per item in payload order.
type SummaryTable struct {
	Source string    `json:"source"`
	Rows   []Summary `json:"rows"`
}

// NewSummaryTable builds a table from the raw texts of source.
func NewSummaryTable(source string, texts []string) SummaryTable {
	rows := make([]Summary, len(texts))
	for i, t := range texts {
		rows[i] = Summary{HTML: t}
	}
	return SummaryTable{Source: source, Rows: rows}
}

// Len returns the number of rows.
func (t SummaryTable) Len() int { return len(t.Rows) }

// Columns returns the column names of the table.
func (t SummaryTable) Columns() []string { return []string{SummaryColumn} }

// CountPoint is a (date, count) pair of a daily series.
type CountPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// CountSeries is a date-indexed count series. Field names the value column
// when the series is charted, e.g. "eo_count".
type CountSeries struct {
	Name   string       `json:"name"`
	Field  string       `json:"field"`
	Points []CountPoint `json:"points"`
}

// Metric is a headline number shown as a card.
type Metric struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ChartPanel is a titled chart ready for embedding.
type ChartPanel struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Spec  template.JS `json:"-"`
	Data  CountSeries `json:"data"`
}

// SummarySection is a collapsible block of rendered summaries.
type SummarySection struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Items []template.HTML `json:"items"`
}

// Dashboard is the assembled view of one render.
type Dashboard struct {
	Title       string           `json:"title"`
	Subtitle    template.HTML    `json:"subtitle"`
	Metrics     []Metric         `json:"metrics"`
	Charts      []ChartPanel     `json:"charts"`
	Sections    []SummarySection `json:"sections"`
	GeneratedAt time.Time        `json:"generated_at"`
}
