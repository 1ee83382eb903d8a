package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When options carry empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be preserved", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "joust")
				So(manager.subsystem, ShouldEqual, "ranking")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording engine metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordSessionStarted("10")
					RecordSessionCompleted()
					RecordSessionFinalized()
					RecordVote()
					RecordVoteFailure("invalid_winner")
					RecordVoteRetry()
					RecordVoteLatency(1.5)
					RecordPoolCreated()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store and HTTP metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordStoreOpLatency("record_vote", 0.4)
					RecordStoreConflict()
					RecordHTTPRequest("/api/v1/rankings", "POST", "200")
					RecordHTTPRequestDuration("/api/v1/rankings", "POST", "200", 12.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When updating gauges", func() {
			Convey("Then updates should not panic", func() {
				So(func() {
					UpdateSessionsStored(7)
					UpdateCatalogItems(75)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should gather the registered metrics", func() {
				So(registry, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
