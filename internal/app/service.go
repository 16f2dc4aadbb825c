// Package app wires the round engine, the leaderboard store, and the
// settings file together behind the operation set the shell drives.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Saibalraj/Number-Guessing-Game/internal/adapters/repository"
	"github.com/Saibalraj/Number-Guessing-Game/internal/adapters/settings"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/round"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/score"
	"github.com/Saibalraj/Number-Guessing-Game/pkg/logger"
	"github.com/Saibalraj/Number-Guessing-Game/pkg/metrics"
)

// defaultTickInterval is the countdown cadence. The engine never decrements
// on its own; this service drives Tick while a round is active.
const defaultTickInterval = time.Second

// eventBuffer bounds the round event channel. Ticks are dropped rather than
// blocked on when the shell lags behind.
const eventBuffer = 64

// EventKind tags round events delivered to the shell.
type EventKind int

// Round event kinds.
const (
	EventTick EventKind = iota
	EventTimeout
)

// Event is one asynchronous round notification.
type Event struct {
	Kind      EventKind
	Remaining int         // seconds left, for EventTick
	Secret    int         // revealed answer, for EventTimeout
	Level     level.Level // level of the round that timed out
}

// Service implements the game operations for the interactive shell.
type Service struct {
	mu sync.Mutex

	engine *round.Engine
	store  repository.Store
	prefs  settings.Settings

	scorePath    string
	settingsPath string
	tickInterval time.Duration

	events     chan Event
	cancelTick context.CancelFunc
	tickDone   chan struct{}

	started bool
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStore sets the leaderboard store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the round engine.
func WithEngine(engine *round.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithScorePath sets the leaderboard file path.
func WithScorePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.scorePath = path
		}
	}
}

// WithSettingsPath sets the settings file path.
func WithSettingsPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.settingsPath = path
		}
	}
}

// WithTickInterval overrides the countdown cadence. Tests shorten it.
func WithTickInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		engine:       round.New(),
		store:        repository.NewFileStore(),
		prefs:        settings.Defaults(),
		scorePath:    "guess_highscores.csv",
		settingsPath: "guess_settings.env",
		tickInterval: defaultTickInterval,
		events:       make(chan Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads settings and the persisted leaderboard. Persistence failures
// are logged and survived; the in-memory state stays authoritative.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}

	prefs, err := settings.Load(ctx, s.settingsPath)
	if err != nil {
		metrics.RecordPersistenceError()
		s.log.Warn(ctx, "loading settings failed, using defaults", logger.Error(err))
	}
	s.prefs = prefs

	if err := s.store.Load(ctx, s.scorePath); err != nil {
		metrics.RecordPersistenceError()
		s.log.Warn(ctx, "loading leaderboard failed, starting empty", logger.Error(err))
	}
	metrics.UpdateLeaderboardSize(s.store.Count(ctx))

	s.started = true
	s.log.Info(ctx, "game service started",
		logger.String("scoreFile", s.scorePath),
		logger.String("settingsFile", s.settingsPath),
		logger.Bool("muted", s.prefs.Muted),
		logger.String("level", s.prefs.LastLevel.Name()),
	)
	return nil
}

// Stop cancels any running countdown and closes the event channel.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.stopTickerLocked()
	close(s.events)
	s.started = false
}

// Events returns the channel carrying tick and timeout notifications.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Settings returns the current preference pair.
func (s *Service) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetMuted updates and persists the mute flag.
func (s *Service) SetMuted(ctx context.Context, muted bool) error {
	s.mu.Lock()
	s.prefs.Muted = muted
	prefs := s.prefs
	s.mu.Unlock()
	return s.saveSettings(ctx, prefs)
}

// SetLevel updates and persists the active difficulty. It takes effect on
// the next round; the current round keeps its level.
func (s *Service) SetLevel(ctx context.Context, lvl level.Level) error {
	s.mu.Lock()
	s.prefs.LastLevel = lvl
	prefs := s.prefs
	s.mu.Unlock()
	return s.saveSettings(ctx, prefs)
}

// StartRound begins a new round at the configured level. Any previous
// round's tick source is stopped and awaited first, so a stale tick can
// never touch the new round.
func (s *Service) StartRound(ctx context.Context) round.Snapshot {
	s.mu.Lock()
	s.stopTickerLocked()

	snap := s.engine.Start(s.prefs.LastLevel)
	metrics.RecordRoundStarted()

	tickCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancelTick = cancel
	s.tickDone = done
	go s.runTicker(tickCtx, done)
	s.mu.Unlock()

	s.log.Info(ctx, "round started",
		logger.String("roundID", snap.RoundID),
		logger.String("level", snap.Level.Name()),
		logger.Int("timeLimit", snap.Level.TimeSeconds()),
	)
	return snap
}

// Guess submits one guess to the engine. Non-numeric input surfaces
// round.ErrNotANumber without consuming an attempt.
func (s *Service) Guess(ctx context.Context, raw string) (round.Outcome, error) {
	out, err := s.engine.Guess(raw)
	if err != nil {
		if errors.Is(err, round.ErrNotANumber) {
			metrics.RecordInvalidGuess()
		}
		return out, err
	}

	metrics.RecordGuess()
	if out.Feedback == round.Correct {
		metrics.RecordRoundWon()
		s.mu.Lock()
		s.stopTickerLocked()
		s.mu.Unlock()
		s.log.Info(ctx, "round won",
			logger.Int("attempts", out.Attempts),
			logger.Int("elapsedSeconds", out.ElapsedSeconds),
			logger.Int("secret", out.Secret),
		)
	}
	return out, nil
}

// RoundState returns a read-only snapshot of the current round.
func (s *Service) RoundState() round.Snapshot {
	return s.engine.Snapshot()
}

// RecordScore adds a completed round to the leaderboard under the given
// player name and persists the store. An empty name records as "Player".
func (s *Service) RecordScore(ctx context.Context, name string) error {
	snap := s.engine.Snapshot()
	if !snap.State.Resolved() {
		return ErrRoundNotResolved
	}
	if name == "" {
		name = "Player"
	}
	rec := score.Record{
		Name:        name,
		Level:       snap.Level,
		Attempts:    snap.Attempts,
		TimeSeconds: snap.ElapsedSeconds,
		When:        time.Now().Truncate(time.Minute),
		Secret:      snap.Secret,
	}
	s.store.Add(ctx, rec)
	metrics.RecordScore()
	return s.saveScores(ctx)
}

// Leaderboard returns the ranked records, best first.
func (s *Service) Leaderboard(ctx context.Context) []score.Record {
	return s.store.Entries(ctx)
}

// ImportScores merges records from the CSV file at path into the
// leaderboard and persists the result. Malformed lines are dropped; the
// return value is the number of records that merged.
func (s *Service) ImportScores(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadImport, err)
	}
	merged := s.store.ImportMerge(ctx, string(data))
	if merged > 0 {
		metrics.RecordImported(merged)
		if err := s.saveScores(ctx); err != nil {
			return merged, err
		}
	}
	return merged, nil
}

// ExportScores writes the current leaderboard to an arbitrary path.
func (s *Service) ExportScores(ctx context.Context, path string) error {
	text := s.store.Export(ctx)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		metrics.RecordPersistenceError()
		return fmt.Errorf("%w: %v", ErrWriteExport, err)
	}
	return nil
}

// ClearScores deletes every record and persists the empty leaderboard.
func (s *Service) ClearScores(ctx context.Context) error {
	s.store.Clear(ctx)
	return s.saveScores(ctx)
}

// runTicker drives the engine countdown until the round resolves or the
// round context is cancelled.
func (s *Service) runTicker(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(s.tickInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			snap, err := s.engine.Tick()
			if err != nil {
				// Round already resolved by a winning guess.
				return
			}
			if snap.State == round.TimedOut {
				metrics.RecordRoundTimedOut()
				s.emit(Event{Kind: EventTimeout, Secret: snap.Secret, Level: snap.Level})
				return
			}
			s.emit(Event{Kind: EventTick, Remaining: snap.Remaining})
		}
	}
}

// emit delivers an event without ever blocking the ticker.
func (s *Service) emit(e Event) {
	select {
	case s.events <- e:
	default:
	}
}

// stopTickerLocked cancels the running ticker goroutine and waits for it to
// exit. Caller holds s.mu.
func (s *Service) stopTickerLocked() {
	if s.cancelTick == nil {
		return
	}
	s.cancelTick()
	<-s.tickDone
	s.cancelTick = nil
	s.tickDone = nil
}

// saveScores persists the leaderboard and refreshes the size gauge.
// Failures are recoverable: they are logged, counted, and returned, and the
// in-memory leaderboard remains usable.
func (s *Service) saveScores(ctx context.Context) error {
	metrics.UpdateLeaderboardSize(s.store.Count(ctx))
	if err := s.store.Save(ctx, s.scorePath); err != nil {
		metrics.RecordPersistenceError()
		s.log.Error(ctx, "saving leaderboard failed", logger.Error(err))
		return err
	}
	return nil
}

// saveSettings persists the preference pair.
func (s *Service) saveSettings(ctx context.Context, prefs settings.Settings) error {
	if err := settings.Save(ctx, s.settingsPath, prefs); err != nil {
		metrics.RecordPersistenceError()
		s.log.Error(ctx, "saving settings failed", logger.Error(err))
		return err
	}
	return nil
}
