package app_test

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Saibalraj/Number-Guessing-Game/internal/app"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/round"
	"github.com/Saibalraj/Number-Guessing-Game/pkg/logger"
)

const testSeed = 7

// secretFor replays the engine's seeded draw so the tests can win on demand.
func secretFor(lvl level.Level) int {
	rng := rand.New(rand.NewSource(testSeed))
	return lvl.Min() + rng.Intn(lvl.Max()-lvl.Min()+1)
}

func newService(t *testing.T, opts ...app.Option) *app.Service {
	t.Helper()
	dir := t.TempDir()
	base := []app.Option{
		app.WithScorePath(filepath.Join(dir, "scores.csv")),
		app.WithSettingsPath(filepath.Join(dir, "settings.env")),
		app.WithEngine(round.New(round.WithRandSource(rand.NewSource(testSeed)))),
		app.WithTickInterval(5 * time.Millisecond),
	}
	return app.New(append(base, opts...)...)
}

func TestMain(m *testing.M) {
	_ = logger.Init(io.Discard)
	m.Run()
}

func TestWinningFlow(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a round starts at the default level", func() {
			snap := svc.StartRound(ctx)
			So(snap.State, ShouldEqual, round.Active)
			So(snap.Level, ShouldEqual, level.Medium)

			Convey("And the winning guess lands", func() {
				out, err := svc.Guess(ctx, strconv.Itoa(secretFor(level.Medium)))
				So(err, ShouldBeNil)
				So(out.Feedback, ShouldEqual, round.Correct)

				Convey("Then recording the score puts it on the leaderboard", func() {
					So(svc.RecordScore(ctx, "Tester"), ShouldBeNil)

					entries := svc.Leaderboard(ctx)
					So(len(entries), ShouldEqual, 1)
					So(entries[0].Name, ShouldEqual, "Tester")
					So(entries[0].Level, ShouldEqual, level.Medium)
					So(entries[0].Attempts, ShouldEqual, 1)
				})

				Convey("And an empty name records as Player", func() {
					So(svc.RecordScore(ctx, ""), ShouldBeNil)
					So(svc.Leaderboard(ctx)[0].Name, ShouldEqual, "Player")
				})
			})

			Convey("And a non-numeric guess arrives", func() {
				_, err := svc.Guess(ctx, "banana")

				Convey("Then it is rejected without touching the round", func() {
					So(errors.Is(err, round.ErrNotANumber), ShouldBeTrue)
					So(svc.RoundState().Attempts, ShouldEqual, 0)
				})
			})

			Convey("And recording before resolution is refused", func() {
				err := svc.RecordScore(ctx, "Eager")
				So(errors.Is(err, app.ErrRoundNotResolved), ShouldBeTrue)
			})
		})
	})
}

func TestTimeoutFlow(t *testing.T) {
	Convey("Given a started service on the Easy level", t, func() {
		ctx := context.Background()
		svc := newService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		So(svc.SetLevel(ctx, level.Easy), ShouldBeNil)

		Convey("When a round runs out of time", func() {
			svc.StartRound(ctx)

			var timedOut bool
			deadline := time.After(2 * time.Second)
			for !timedOut {
				select {
				case ev := <-svc.Events():
					if ev.Kind == app.EventTimeout {
						timedOut = true
						So(ev.Secret, ShouldBeBetweenOrEqual, level.Easy.Min(), level.Easy.Max())
					}
				case <-deadline:
					t.Fatal("timed out waiting for the round to time out")
				}
			}

			Convey("Then the round state shows the full budget consumed", func() {
				snap := svc.RoundState()
				So(snap.State, ShouldEqual, round.TimedOut)
				So(snap.ElapsedSeconds, ShouldEqual, level.Easy.TimeSeconds())
			})

			Convey("And the lost round can still be recorded", func() {
				So(svc.RecordScore(ctx, "Loser"), ShouldBeNil)
				So(svc.Leaderboard(ctx)[0].TimeSeconds, ShouldEqual, level.Easy.TimeSeconds())
			})
		})

		Convey("When a new round starts over a running one", func() {
			svc.StartRound(ctx)
			snap := svc.StartRound(ctx)

			Convey("Then the new round begins with a full countdown", func() {
				So(snap.State, ShouldEqual, round.Active)
				So(snap.Remaining, ShouldEqual, level.Easy.TimeSeconds())
			})
		})
	})
}

func TestImportExport(t *testing.T) {
	Convey("Given a service with one recorded score", t, func() {
		ctx := context.Background()
		svc := newService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		svc.StartRound(ctx)
		_, err := svc.Guess(ctx, strconv.Itoa(secretFor(level.Medium)))
		So(err, ShouldBeNil)
		So(svc.RecordScore(ctx, "Original"), ShouldBeNil)

		Convey("When the leaderboard is exported and imported elsewhere", func() {
			exportPath := filepath.Join(t.TempDir(), "export.csv")
			So(svc.ExportScores(ctx, exportPath), ShouldBeNil)

			other := newService(t)
			So(other.Start(ctx), ShouldBeNil)
			defer other.Stop()

			merged, ierr := other.ImportScores(ctx, exportPath)

			Convey("Then the record merges additively", func() {
				So(ierr, ShouldBeNil)
				So(merged, ShouldEqual, 1)
				So(other.Leaderboard(ctx)[0].Name, ShouldEqual, "Original")
			})
		})

		Convey("When importing a missing file", func() {
			_, ierr := svc.ImportScores(ctx, filepath.Join(t.TempDir(), "nope.csv"))

			Convey("Then a recoverable error surfaces", func() {
				So(errors.Is(ierr, app.ErrReadImport), ShouldBeTrue)
				So(len(svc.Leaderboard(ctx)), ShouldEqual, 1)
			})
		})

		Convey("When clearing all scores", func() {
			So(svc.ClearScores(ctx), ShouldBeNil)
			So(svc.Leaderboard(ctx), ShouldBeEmpty)
		})
	})
}

func TestSettingsPersistAcrossRestarts(t *testing.T) {
	Convey("Given a service whose settings change", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		scorePath := filepath.Join(dir, "scores.csv")
		settingsPath := filepath.Join(dir, "settings.env")

		svc := app.New(
			app.WithScorePath(scorePath),
			app.WithSettingsPath(settingsPath),
		)
		So(svc.Start(ctx), ShouldBeNil)
		So(svc.SetMuted(ctx, true), ShouldBeNil)
		So(svc.SetLevel(ctx, level.Hard), ShouldBeNil)
		svc.Stop()

		Convey("When a fresh service starts on the same paths", func() {
			again := app.New(
				app.WithScorePath(scorePath),
				app.WithSettingsPath(settingsPath),
			)
			So(again.Start(ctx), ShouldBeNil)
			defer again.Stop()

			Convey("Then the preferences survived", func() {
				prefs := again.Settings()
				So(prefs.Muted, ShouldBeTrue)
				So(prefs.LastLevel, ShouldEqual, level.Hard)
			})
		})
	})
}
