// Package snapshot renders a dashboard view as a plain-text report for
// terminals and cron mail.
package snapshot

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/govdash/internal/domain/markup"
	"github.com/okian/govdash/internal/domain/model"
)

// Section names accepted by Write.
const (
	SectionMetrics  = "metrics"
	SectionCharts   = "charts"
	SectionEO       = "eo"
	SectionCongress = "congress"
)

// AllSections lists every section in report order.
var AllSections = []string{SectionMetrics, SectionCharts, SectionEO, SectionCongress}

// sectionIDs maps report sections onto dashboard section IDs.
var sectionIDs = map[string]string{
	SectionEO:       "eo-texts",
	SectionCongress: "congress-texts",
}

// ParseSections validates names and returns them in report order with
// duplicates removed. An empty list selects every section.
func ParseSections(names []string) ([]string, error) {
	if len(names) == 0 {
		return AllSections, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "all" {
			return AllSections, nil
		}
		if !isSection(n) {
			return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSection, n, strings.Join(AllSections, ", "))
		}
		want[n] = true
	}
	out := make([]string, 0, len(want))
	for _, s := range AllSections {
		if want[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

func isSection(name string) bool {
	for _, s := range AllSections {
		if s == name {
			return true
		}
	}
	return false
}

// Write renders the selected sections of d to w.
func Write(w io.Writer, d model.Dashboard, sections []string) error {
	r := &report{w: w}
	r.heading(d.Title, '=')
	if sub := markup.PlainText(d.Subtitle); sub != "" {
		r.line(sub)
	}
	r.line("Generated " + d.GeneratedAt.Format("2006-01-02 15:04 MST"))

	for _, s := range sections {
		r.blank()
		switch s {
		case SectionMetrics:
			r.metrics(d.Metrics)
		case SectionCharts:
			r.charts(d.Charts)
		case SectionEO, SectionCongress:
			r.texts(findSection(d.Sections, sectionIDs[s]))
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSection, s)
		}
	}
	if r.err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, r.err)
	}
	return nil
}

func findSection(sections []model.SummarySection, id string) model.SummarySection {
	for _, s := range sections {
		if s.ID == id {
			return s
		}
	}
	return model.SummarySection{ID: id, Title: id}
}

// report accumulates the first write error so callers check once.
type report struct {
	w   io.Writer
	err error
}

func (r *report) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *report) line(s string) { r.printf("%s\n", s) }

func (r *report) blank() { r.printf("\n") }

func (r *report) heading(s string, underline rune) {
	r.line(s)
	r.line(strings.Repeat(string(underline), len([]rune(s))))
}

func (r *report) metrics(ms []model.Metric) {
	r.heading("Metrics", '-')
	r.table(func(tw *tabwriter.Writer) {
		for _, m := range ms {
			_, _ = fmt.Fprintf(tw, "%s\t%d\n", m.Label, m.Value)
		}
	})
}

func (r *report) charts(panels []model.ChartPanel) {
	for i, p := range panels {
		if i > 0 {
			r.blank()
		}
		r.heading(p.Title, '-')
		r.table(func(tw *tabwriter.Writer) {
			_, _ = fmt.Fprintf(tw, "date\t%s\t\n", p.Data.Field)
			for _, pt := range p.Data.Points {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", pt.Date.Format("2006-01-02"), pt.Count, strings.Repeat("#", pt.Count))
			}
		})
	}
}

func (r *report) texts(s model.SummarySection) {
	r.heading(fmt.Sprintf("%s (%d)", s.Title, len(s.Items)), '-')
	if len(s.Items) == 0 {
		r.line("No entries.")
		return
	}
	for i, item := range s.Items {
		r.printf("%d. %s\n", i+1, markup.PlainText(item))
	}
}

func (r *report) table(fill func(tw *tabwriter.Writer)) {
	if r.err != nil {
		return
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fill(tw)
	r.err = tw.Flush()
}
