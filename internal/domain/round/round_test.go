package round_test

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/round"
)

const testSeed = 1

// secretFor replays the engine's draw for a seeded source, so tests know
// the answer without the engine exposing it mid-round.
func secretFor(lvl level.Level) int {
	rng := rand.New(rand.NewSource(testSeed))
	return lvl.Min() + rng.Intn(lvl.Max()-lvl.Min()+1)
}

func TestEngineLifecycle(t *testing.T) {
	Convey("Given an idle engine", t, func() {
		e := round.New()

		Convey("Then guesses are no-ops", func() {
			_, err := e.Guess("42")
			So(errors.Is(err, round.ErrRoundNotActive), ShouldBeTrue)
		})

		Convey("And ticks are no-ops", func() {
			_, err := e.Tick()
			So(errors.Is(err, round.ErrRoundNotActive), ShouldBeTrue)
		})

		Convey("When a round starts", func() {
			snap := e.Start(level.Easy)

			Convey("Then the engine is active with a fresh countdown", func() {
				So(snap.State, ShouldEqual, round.Active)
				So(snap.RoundID, ShouldNotBeEmpty)
				So(snap.Remaining, ShouldEqual, 15)
				So(snap.Attempts, ShouldEqual, 0)
			})

			Convey("And the secret stays hidden while active", func() {
				So(snap.Secret, ShouldEqual, 0)
				So(e.Snapshot().Secret, ShouldEqual, 0)
			})
		})
	})
}

func TestGuessComparison(t *testing.T) {
	Convey("Given an active round with a known secret", t, func() {
		e := round.New(round.WithRandSource(rand.NewSource(testSeed)))
		e.Start(level.Medium)
		secret := secretFor(level.Medium)

		Convey("When guessing below the secret", func() {
			out, err := e.Guess(strconv.Itoa(secret - 1))
			So(err, ShouldBeNil)

			Convey("Then the round stays active and reports too low", func() {
				So(out.Feedback, ShouldEqual, round.TooLow)
				So(out.Attempts, ShouldEqual, 1)
				So(e.Snapshot().State, ShouldEqual, round.Active)
			})
		})

		Convey("When guessing above the secret", func() {
			out, err := e.Guess(strconv.Itoa(secret + 1))
			So(err, ShouldBeNil)

			Convey("Then the round stays active and reports too high", func() {
				So(out.Feedback, ShouldEqual, round.TooHigh)
				So(out.Attempts, ShouldEqual, 1)
				So(e.Snapshot().State, ShouldEqual, round.Active)
			})
		})

		Convey("When guessing the secret after two misses", func() {
			_, _ = e.Guess("0")
			_, _ = e.Guess("99999")
			out, err := e.Guess(strconv.Itoa(secret))
			So(err, ShouldBeNil)

			Convey("Then the round resolves won with three attempts", func() {
				So(out.Feedback, ShouldEqual, round.Correct)
				So(out.Attempts, ShouldEqual, 3)
				So(out.Secret, ShouldEqual, secret)
				So(e.Snapshot().State, ShouldEqual, round.Won)
			})

			Convey("And further guesses are no-ops", func() {
				_, gerr := e.Guess(strconv.Itoa(secret))
				So(errors.Is(gerr, round.ErrRoundNotActive), ShouldBeTrue)
				So(e.Snapshot().Attempts, ShouldEqual, 3)
			})
		})

		Convey("When submitting non-numeric input", func() {
			_, err := e.Guess("forty-two")

			Convey("Then it is rejected without consuming an attempt", func() {
				So(errors.Is(err, round.ErrNotANumber), ShouldBeTrue)
				So(e.Snapshot().Attempts, ShouldEqual, 0)
				So(e.Snapshot().State, ShouldEqual, round.Active)
			})
		})

		Convey("When guessing range boundaries and out-of-range values", func() {
			Convey("Then they are evaluated by comparison, never rejected", func() {
				for _, raw := range []string{"1", "100", "0", "99999", "-5"} {
					_, err := e.Guess(raw)
					So(err, ShouldBeNil)
				}
				So(e.Snapshot().Attempts, ShouldEqual, 5)
			})
		})
	})
}

func TestWinElapsedTime(t *testing.T) {
	Convey("Given a round with a controllable clock", t, func() {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
		e := round.New(
			round.WithRandSource(rand.NewSource(testSeed)),
			round.WithClock(func() time.Time { return now }),
		)
		e.Start(level.Medium)
		secret := secretFor(level.Medium)

		Convey("When the winning guess lands 7.9 seconds in", func() {
			now = now.Add(7900 * time.Millisecond)
			out, err := e.Guess(strconv.Itoa(secret))
			So(err, ShouldBeNil)

			Convey("Then elapsed time rounds down to whole seconds", func() {
				So(out.ElapsedSeconds, ShouldEqual, 7)
			})
		})
	})
}

func TestTimeout(t *testing.T) {
	Convey("Given an active Easy round (15 second budget)", t, func() {
		e := round.New()
		e.Start(level.Easy)

		Convey("When 14 ticks elapse", func() {
			for i := 0; i < 14; i++ {
				snap, err := e.Tick()
				So(err, ShouldBeNil)
				So(snap.State, ShouldEqual, round.Active)
			}
			So(e.Snapshot().Remaining, ShouldEqual, 1)

			Convey("And the 15th tick lands", func() {
				snap, err := e.Tick()
				So(err, ShouldBeNil)

				Convey("Then the round times out exactly then", func() {
					So(snap.State, ShouldEqual, round.TimedOut)
					So(snap.Remaining, ShouldEqual, 0)
				})

				Convey("And elapsed time is the full allotment", func() {
					So(snap.ElapsedSeconds, ShouldEqual, 15)
				})

				Convey("And the secret is revealed", func() {
					So(snap.Secret, ShouldBeBetweenOrEqual, 1, 50)
				})

				Convey("And later ticks are no-ops", func() {
					_, terr := e.Tick()
					So(errors.Is(terr, round.ErrRoundNotActive), ShouldBeTrue)
				})
			})
		})
	})
}

func TestSecretWithinRange(t *testing.T) {
	Convey("Given many rounds at every level", t, func() {
		e := round.New()

		Convey("Then the drawn secret always lands inside the level range", func() {
			for _, lvl := range level.Levels() {
				for i := 0; i < 100; i++ {
					e.Start(lvl)
					// Run the countdown out to expose the answer.
					for !e.Snapshot().State.Resolved() {
						_, _ = e.Tick()
					}
					got := e.Snapshot().Secret
					So(got, ShouldBeBetweenOrEqual, lvl.Min(), lvl.Max())
				}
			}
		})
	})
}
