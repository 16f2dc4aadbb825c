package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/Saibalraj/Number-Guessing-Game/pkg/metrics"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("game"),
			metrics.WithPrometheusRegistry(reg),
		)
		So(m, ShouldNotBeNil)

		Convey("Then its metrics register and gather", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["test_game_rounds_started_total"], ShouldBeTrue)
			So(names["test_game_leaderboard_size"], ShouldBeTrue)
			So(names["test_game_persistence_errors_total"], ShouldBeTrue)
		})
	})

	Convey("Given the global helpers", t, func() {
		Convey("Then they record without panicking", func() {
			So(metrics.RecordRoundStarted, ShouldNotPanic)
			So(metrics.RecordRoundWon, ShouldNotPanic)
			So(metrics.RecordRoundTimedOut, ShouldNotPanic)
			So(metrics.RecordGuess, ShouldNotPanic)
			So(metrics.RecordInvalidGuess, ShouldNotPanic)
			So(metrics.RecordScore, ShouldNotPanic)
			So(func() { metrics.RecordImported(3) }, ShouldNotPanic)
			So(func() { metrics.UpdateLeaderboardSize(12) }, ShouldNotPanic)
			So(metrics.RecordPersistenceError, ShouldNotPanic)
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
