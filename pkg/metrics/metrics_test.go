package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{1, 5, 10}),
			WithConstLabels(map[string]string{"env": "test"}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then they are applied to the manager", func() {
			So(m.namespace, ShouldEqual, "test")
			So(m.subsystem, ShouldEqual, "unit")
			So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
			So(m.Registry(), ShouldEqual, registry)
		})

		Convey("Then empty values keep the defaults", func() {
			d := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(nil))
			So(d.namespace, ShouldEqual, "jobmatch")
			So(d.subsystem, ShouldEqual, "engine")
			So(d.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			So(d.Registry(), ShouldNotBeNil)
		})

		Convey("Then const labels appear on every series", func() {
			m.UpdateIndexSizes(1, 2, 3, 4, 5)
			var buf bytes.Buffer
			So(m.WriteText(&buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, `test_unit_jobs{env="test"} 1`)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager()
		var buf bytes.Buffer
		render := func() string {
			buf.Reset()
			So(m.WriteText(&buf), ShouldBeNil)
			return buf.String()
		}

		Convey("When registrations are recorded", func() {
			m.RecordRegistration("job")
			m.RecordRegistration("job")
			m.RecordRegistration("user")

			Convey("Then they are counted by kind", func() {
				out := render()
				So(out, ShouldContainSubstring, `jobmatch_engine_registrations_total{kind="job"} 2`)
				So(out, ShouldContainSubstring, `jobmatch_engine_registrations_total{kind="user"} 1`)
			})
		})

		Convey("When queries are recorded", func() {
			m.RecordQuery("recommend", 3*time.Millisecond, 3)
			m.RecordQuery("recommend", time.Millisecond, 0)
			m.RecordQuery("search_title", time.Millisecond, 2)

			Convey("Then counts, latency and result sizes are exposed", func() {
				out := render()
				So(out, ShouldContainSubstring, `jobmatch_engine_queries_total{operation="recommend"} 2`)
				So(out, ShouldContainSubstring, `jobmatch_engine_query_latency_milliseconds_count{operation="recommend"} 2`)
				So(out, ShouldContainSubstring, `jobmatch_engine_query_results_sum{operation="recommend"} 3`)
				So(out, ShouldContainSubstring, `jobmatch_engine_query_results_count{operation="search_title"} 1`)
			})
		})

		Convey("When index sizes are updated", func() {
			m.UpdateIndexSizes(16, 5, 16, 14, 5)

			Convey("Then every gauge reflects the latest value", func() {
				out := render()
				So(out, ShouldContainSubstring, "jobmatch_engine_jobs 16")
				So(out, ShouldContainSubstring, "jobmatch_engine_users 5")
				So(out, ShouldContainSubstring, "jobmatch_engine_unique_titles 16")
				So(out, ShouldContainSubstring, "jobmatch_engine_unique_skills 14")
				So(out, ShouldContainSubstring, "jobmatch_engine_locations 5")
			})
		})

		Convey("When store operations succeed and fail", func() {
			m.RecordStoreOp("save", time.Millisecond, nil)
			m.RecordStoreOp("load", time.Millisecond, errors.New("boom"))

			Convey("Then the status label separates them", func() {
				out := render()
				So(out, ShouldContainSubstring, `jobmatch_engine_store_operations_total{operation="save",status="ok"} 1`)
				So(out, ShouldContainSubstring, `jobmatch_engine_store_operations_total{operation="load",status="error"} 1`)
			})
		})

		Convey("When a batch run and an error are recorded", func() {
			m.RecordBatch(4, 10*time.Millisecond)
			m.RecordError("store", "save")

			Convey("Then both are exposed", func() {
				out := render()
				So(out, ShouldContainSubstring, "jobmatch_engine_batch_workers 4")
				So(out, ShouldContainSubstring, "jobmatch_engine_batch_duration_milliseconds_count 1")
				So(out, ShouldContainSubstring, `jobmatch_engine_errors_by_component_total{component="store",error_type="save"} 1`)
			})
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the global manager", t, func() {
		m := Default()
		So(m, ShouldNotBeNil)
		So(m, ShouldEqual, Default())
		So(m.Registry(), ShouldNotBeNil)

		Convey("When recording on it", func() {
			m.RecordRegistration("road")
			m.RecordQuery("near", time.Millisecond, 6)

			Convey("Then its registry renders them", func() {
				var buf bytes.Buffer
				So(m.WriteText(&buf), ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, `jobmatch_engine_registrations_total{kind="road"}`)
				So(buf.String(), ShouldContainSubstring, "# TYPE jobmatch_engine_jobs gauge")
			})
		})
	})
}
