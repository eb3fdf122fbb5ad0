package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "spf")
				So(manager.subsystem, ShouldEqual, "analyzer")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})

		Convey("When empty options are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "spf")
				So(manager.subsystem, ShouldEqual, "analyzer")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording records read", func() {
			m.RecordRecordsRead(SourceCurricular, 3)
			m.RecordRecordsRead(SourceCurricular, 2)
			m.RecordRecordsRead(SourceExtracurricular, 4)

			Convey("Then counters accumulate per source", func() {
				So(testutil.ToFloat64(m.recordsRead.WithLabelValues(SourceCurricular)), ShouldEqual, 5)
				So(testutil.ToFloat64(m.recordsRead.WithLabelValues(SourceExtracurricular)), ShouldEqual, 4)
			})
		})

		Convey("When recording parse fallbacks", func() {
			m.RecordParseFallback(SourceCurricular, "exam_score")
			m.RecordParseFallback(SourceCurricular, "exam_score")

			Convey("Then they are counted per field", func() {
				So(testutil.ToFloat64(m.parseFallbacks.WithLabelValues(SourceCurricular, "exam_score")), ShouldEqual, 2)
			})
		})

		Convey("When recording lookups and rows", func() {
			m.RecordCorrelationLookup(true)
			m.RecordCorrelationLookup(false)
			m.RecordCorrelationLookup(false)
			m.RecordRowsWritten(3, 7)

			Convey("Then hits, misses and rows are tracked", func() {
				So(testutil.ToFloat64(m.correlationLookups.WithLabelValues("hit")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.correlationLookups.WithLabelValues("miss")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.rowsWritten.WithLabelValues("3")), ShouldEqual, 7)
			})
		})

		Convey("When recording a run", func() {
			m.RecordRun(OutcomeSuccess, 20*time.Millisecond)

			Convey("Then the outcome and timestamp are set", func() {
				So(testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSuccess)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.lastRunUnixTS), ShouldBeGreaterThan, 0)
				So(testutil.CollectAndCount(m.runDuration), ShouldEqual, 1)
			})
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("Then the package helpers should not panic", func() {
			So(func() {
				RecordRecordsRead(SourceCurricular, 1)
				RecordParseFallback(SourceExtracurricular, "sleep_hours")
				RecordCorrelationLookup(true)
				RecordRowsWritten(1, 1)
				RecordRun(OutcomeInvalidTask, time.Millisecond)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})

		Convey("When writing the textfile", func() {
			RecordRecordsRead(SourceCurricular, 1)
			path := filepath.Join(t.TempDir(), "spf.prom")
			err := WriteTextfile(path)

			Convey("Then the file should hold the exposition text", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "spf_analyzer_records_read_total")
			})
		})

		Convey("When the textfile directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "spf.prom"))

			Convey("Then an export error is returned", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			})
		})
	})
}
