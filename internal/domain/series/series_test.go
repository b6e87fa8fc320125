package series_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/govdash/internal/domain/series"
)

func TestPlaceholderSeries(t *testing.T) {
	convey.Convey("Given a fake clock in the afternoon", t, func() {
		now := time.Date(2026, time.March, 1, 15, 4, 5, 0, time.UTC)
		clock := clockwork.NewFakeClockAt(now)

		convey.Convey("When generating executive order counts", func() {
			s := series.ExecutiveOrderCounts(clock)

			convey.Convey("Then it has 7 points on consecutive days ending today", func() {
				convey.So(s.Points, convey.ShouldHaveLength, series.Days)
				convey.So(s.Field, convey.ShouldEqual, "eo_count")
				last := s.Points[len(s.Points)-1].Date
				convey.So(last, convey.ShouldEqual, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
				convey.So(s.Points[0].Date, convey.ShouldEqual, time.Date(2026, time.February, 23, 0, 0, 0, 0, time.UTC))
				for i := 1; i < len(s.Points); i++ {
					convey.So(s.Points[i].Date.Sub(s.Points[i-1].Date), convey.ShouldEqual, 24*time.Hour)
				}
			})

			convey.Convey("And the counts are the fixed values", func() {
				counts := make([]int, 0, len(s.Points))
				for _, p := range s.Points {
					counts = append(counts, p.Count)
				}
				convey.So(counts, convey.ShouldResemble, []int{5, 3, 4, 6, 2, 8, 7})
			})
		})

		convey.Convey("When generating legislative counts", func() {
			s := series.LegislativeCounts(clock)

			convey.Convey("Then the values and field differ but the dates match", func() {
				convey.So(s.Points, convey.ShouldHaveLength, series.Days)
				convey.So(s.Field, convey.ShouldEqual, "leg_count")
				convey.So(s.Points[0].Count, convey.ShouldEqual, 10)
				convey.So(s.Points[6].Count, convey.ShouldEqual, 13)
				convey.So(s.Points[6].Date, convey.ShouldEqual, series.Today(clock))
			})
		})

		convey.Convey("When the clock moves past midnight", func() {
			before := series.ExecutiveOrderCounts(clock)
			clock.Advance(9 * time.Hour)
			after := series.ExecutiveOrderCounts(clock)

			convey.Convey("Then the window shifts by one day", func() {
				convey.So(after.Points[0].Date, convey.ShouldEqual, before.Points[1].Date)
				convey.So(after.Points[6].Date, convey.ShouldEqual, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
			})
		})
	})

	convey.Convey("Given a clock in a non-UTC zone", t, func() {
		loc := time.FixedZone("EST", -5*60*60)
		clock := clockwork.NewFakeClockAt(time.Date(2026, time.January, 1, 22, 0, 0, 0, loc))

		convey.Convey("Then today is taken in UTC", func() {
			convey.So(series.Today(clock), convey.ShouldEqual, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC))
		})
	})

	convey.Convey("Given arbitrary counts", t, func() {
		clock := clockwork.NewFakeClock()
		s := series.Generate(clock, "custom", "n", []int{1, 2, 3})

		convey.Convey("Then the series length follows the input", func() {
			convey.So(s.Points, convey.ShouldHaveLength, 3)
			convey.So(s.Points[2].Date, convey.ShouldEqual, series.Today(clock))
		})
	})
}
