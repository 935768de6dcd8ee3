package ranking_test

import (
	"testing"

	"github.com/okian/jobmatch/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRanker(t *testing.T) {
	Convey("Given an empty ranker", t, func() {
		r := ranking.New[string](4)

		Convey("Then queries on it are safe", func() {
			So(r.IsEmpty(), ShouldBeTrue)
			So(r.PeekMaxScore(), ShouldEqual, 0.0)
			_, ok := r.PeekMax()
			So(ok, ShouldBeFalse)
			_, _, ok = r.PopMax()
			So(ok, ShouldBeFalse)
			So(r.TopK(3), ShouldBeEmpty)
		})

		Convey("When scored items are added", func() {
			r.Add("farm", 41.5)
			r.Add("java", 83.2)
			r.Add("cook", 12)
			r.Add("tailor", 60)
			r.Add("welder", 55)

			Convey("Then the max is at the top", func() {
				item, ok := r.PeekMax()
				So(ok, ShouldBeTrue)
				So(item, ShouldEqual, "java")
				So(r.PeekMaxScore(), ShouldEqual, 83.2)
			})

			Convey("Then TopK is descending and leaves the ranker untouched", func() {
				top := r.TopK(3)
				So(top, ShouldResemble, []ranking.Scored[string]{
					{Item: "java", Score: 83.2},
					{Item: "tailor", Score: 60},
					{Item: "welder", Score: 55},
				})
				So(r.Len(), ShouldEqual, 5)
				So(r.TopK(3), ShouldResemble, top)
			})

			Convey("Then TopK larger than the heap returns everything", func() {
				So(r.TopK(50), ShouldHaveLength, 5)
				So(r.TopK(0), ShouldBeEmpty)
				So(r.TopK(-1), ShouldBeEmpty)
			})

			Convey("Then popping drains in descending order", func() {
				var scores []float64
				for !r.IsEmpty() {
					_, s, ok := r.PopMax()
					So(ok, ShouldBeTrue)
					scores = append(scores, s)
				}
				So(scores, ShouldResemble, []float64{83.2, 60, 55, 41.5, 12})
			})

			Convey("Then clear empties the heap", func() {
				r.Clear()
				So(r.IsEmpty(), ShouldBeTrue)
				So(r.TopK(1), ShouldBeEmpty)
			})
		})

		Convey("When items share a score", func() {
			for _, s := range []string{"first", "second", "third", "fourth"} {
				r.Add(s, 50)
			}
			r.Add("best", 70)

			Convey("Then ties come out in insertion order", func() {
				top := r.TopK(5)
				names := make([]string, 0, len(top))
				for _, e := range top {
					names = append(names, e.Item)
				}
				So(names, ShouldResemble, []string{"best", "first", "second", "third", "fourth"})
			})
		})
	})
}
