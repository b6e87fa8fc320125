package model_test

import (
	"testing"

	"github.com/okian/govdash/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewSummaryTable(t *testing.T) {
	convey.Convey("Given the texts of a webhook payload", t, func() {
		convey.Convey("When wrapping two texts", func() {
			table := model.NewSummaryTable("executive_orders", []string{"a", "b"})

			convey.Convey("Then the table has exactly two rows in order", func() {
				convey.So(table.Len(), convey.ShouldEqual, 2)
				convey.So(table.Rows[0].HTML, convey.ShouldEqual, "a")
				convey.So(table.Rows[1].HTML, convey.ShouldEqual, "b")
				convey.So(table.Source, convey.ShouldEqual, "executive_orders")
				convey.So(table.Columns(), convey.ShouldResemble, []string{"summary_html"})
			})
		})

		convey.Convey("When wrapping an empty array", func() {
			table := model.NewSummaryTable("congress", []string{})

			convey.Convey("Then the table is empty but not nil", func() {
				convey.So(table.Len(), convey.ShouldEqual, 0)
				convey.So(table.Rows, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the source slice is modified afterwards", func() {
			texts := []string{"<p>original</p>"}
			table := model.NewSummaryTable("congress", texts)
			texts[0] = "changed"

			convey.Convey("Then the table keeps the fetched value", func() {
				convey.So(table.Rows[0].HTML, convey.ShouldEqual, "<p>original</p>")
			})
		})
	})
}
