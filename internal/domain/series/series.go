// Package series synthesizes the placeholder daily count series shown on the
// dashboard until a real analytics source exists.
package series

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/govdash/internal/domain/model"
)

// Days is the length of every placeholder series.
const Days = 7

// Series names and value fields.
const (
	ExecutiveOrdersName  = "executive_orders"
	ExecutiveOrdersField = "eo_count"
	LegislativeName      = "legislative"
	LegislativeField     = "leg_count"
)

var (
	executiveOrderValues = [Days]int{5, 3, 4, 6, 2, 8, 7}
	legislativeValues    = [Days]int{10, 12, 9, 15, 11, 14, 13}
)

// Generate returns one point per value on consecutive UTC days, the last
// point dated today according to clock.
func Generate(clock clockwork.Clock, name, field string, counts []int) model.CountSeries {
	today := Today(clock)
	points := make([]model.CountPoint, len(counts))
	for i, c := range counts {
		points[i] = model.CountPoint{
			Date:  today.AddDate(0, 0, i-len(counts)+1),
			Count: c,
		}
	}
	return model.CountSeries{Name: name, Field: field, Points: points}
}

// ExecutiveOrderCounts is the placeholder executive orders per day.
func ExecutiveOrderCounts(clock clockwork.Clock) model.CountSeries {
	return Generate(clock, ExecutiveOrdersName, ExecutiveOrdersField, executiveOrderValues[:])
}

// LegislativeCounts is the placeholder legislative updates per day.
func LegislativeCounts(clock clockwork.Clock) model.CountSeries {
	return Generate(clock, LegislativeName, LegislativeField, legislativeValues[:])
}

// Today truncates clock's current time to midnight UTC. Series points are
// calendar days, so they never carry the time of day of the view.
func Today(clock clockwork.Clock) time.Time {
	now := clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
