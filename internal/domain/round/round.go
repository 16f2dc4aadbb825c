// Package round drives a single guessing round from start to resolution.
//
// The engine is a small state machine: Idle until a round starts, Active
// while guesses and clock ticks arrive, then Won or TimedOut. It owns no
// scheduler; the host calls Tick once per second while a round is Active.
// Guess, Tick, and Start are mutually exclusive so a tick firing on another
// goroutine can never interleave with a guess.
package round

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
)

// State tags the round lifecycle.
type State int

// Round states. Won and TimedOut are terminal for the round.
const (
	Idle State = iota
	Active
	Won
	TimedOut
)

// Resolved reports whether the round has reached a terminal state.
func (s State) Resolved() bool { return s == Won || s == TimedOut }

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Won:
		return "won"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Feedback is the engine's answer to one numeric guess.
type Feedback int

// Guess feedback values.
const (
	TooLow Feedback = iota
	TooHigh
	Correct
)

func (f Feedback) String() string {
	switch f {
	case TooLow:
		return "too low"
	case TooHigh:
		return "too high"
	case Correct:
		return "correct"
	default:
		return "unknown"
	}
}

// Outcome describes the result of one accepted guess.
type Outcome struct {
	Feedback       Feedback
	Attempts       int // attempts taken so far, including this guess
	ElapsedSeconds int // whole seconds since round start; set on a win
	Secret         int // revealed on a win, zero otherwise
}

// Snapshot is a read-only view of the engine state.
type Snapshot struct {
	State          State
	RoundID        string
	Level          level.Level
	Remaining      int // seconds left on the countdown
	Attempts       int
	Secret         int // exposed only once the round is resolved
	ElapsedSeconds int // filled at resolution
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRandSource sets the randomness source used to draw secrets. Tests use
// a seeded source for deterministic rounds.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.rng = rand.New(src) //nolint:gosec // game randomness, not security material
		}
	}
}

// WithClock sets the wall-clock function used to measure elapsed time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine holds the state of one guessing round.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time

	state     State
	id        string
	lvl       level.Level
	secret    int
	attempts  int
	remaining int
	startedAt time.Time
	elapsed   int
}

// New constructs an Idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // game randomness, not security material
		now:   time.Now,
		state: Idle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a new round at the given level, replacing whatever round came
// before. The secret is drawn uniformly from the level's inclusive range.
// The caller must have stopped any tick source belonging to the prior round
// before calling Start.
func (e *Engine) Start(lvl level.Level) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Active
	e.id = uuid.NewString()
	e.lvl = lvl
	e.secret = lvl.Min() + e.rng.Intn(lvl.Max()-lvl.Min()+1)
	e.attempts = 0
	e.remaining = lvl.TimeSeconds()
	e.startedAt = e.now()
	e.elapsed = 0
	return e.snapshotLocked()
}

// Guess evaluates one guess against the secret. Non-numeric input is
// rejected with ErrNotANumber without consuming an attempt. A numeric guess
// always consumes an attempt; there is no range check, so boundary and
// out-of-range values are evaluated by plain comparison.
func (e *Engine) Guess(raw string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Active {
		return Outcome{}, ErrRoundNotActive
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}

	e.attempts++
	switch {
	case value == e.secret:
		e.state = Won
		e.elapsed = int(e.now().Sub(e.startedAt).Seconds())
		return Outcome{Feedback: Correct, Attempts: e.attempts, ElapsedSeconds: e.elapsed, Secret: e.secret}, nil
	case value < e.secret:
		return Outcome{Feedback: TooLow, Attempts: e.attempts}, nil
	default:
		return Outcome{Feedback: TooHigh, Attempts: e.attempts}, nil
	}
}

// Tick applies one one-second decrement to the countdown. When the countdown
// reaches zero the round resolves as timed out and the elapsed time is the
// level's full allotment. Ticks outside an Active round are no-ops.
func (e *Engine) Tick() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Active {
		return e.snapshotLocked(), ErrRoundNotActive
	}
	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.state = TimedOut
		e.elapsed = e.lvl.TimeSeconds()
	}
	return e.snapshotLocked(), nil
}

// Snapshot returns a read-only view of the current round.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		State:          e.state,
		RoundID:        e.id,
		Level:          e.lvl,
		Remaining:      e.remaining,
		Attempts:       e.attempts,
		ElapsedSeconds: e.elapsed,
	}
	// The answer stays hidden while the round can still be won.
	if e.state.Resolved() {
		s.Secret = e.secret
	}
	return s
}
