// Package metrics provides Prometheus metrics for the guessing game.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the game.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Round metrics
	roundsStarted  prometheus.Counter
	roundsWon      prometheus.Counter
	roundsTimedOut prometheus.Counter
	guesses        prometheus.Counter
	invalidGuesses prometheus.Counter

	// Leaderboard metrics
	scoresRecorded  prometheus.Counter
	recordsImported prometheus.Counter
	leaderboardSize prometheus.Gauge

	// Persistence health
	persistenceErrors prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "guess",
		subsystem: "game",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.roundsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_started_total",
		Help:      "Total number of rounds started",
	})

	m.roundsWon = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_won_total",
		Help:      "Total number of rounds resolved with a correct guess",
	})

	m.roundsTimedOut = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_timed_out_total",
		Help:      "Total number of rounds that ran out of time",
	})

	m.guesses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "guesses_total",
		Help:      "Total number of numeric guesses submitted",
	})

	m.invalidGuesses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "invalid_guesses_total",
		Help:      "Total number of rejected non-numeric guesses",
	})

	m.scoresRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_recorded_total",
		Help:      "Total number of score records added to the leaderboard",
	})

	m.recordsImported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_imported_total",
		Help:      "Total number of records merged in via CSV import",
	})

	m.leaderboardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_size",
		Help:      "Current number of records on the leaderboard",
	})

	m.persistenceErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_errors_total",
		Help:      "Total number of leaderboard or settings persistence failures",
	})
}

// RecordRoundStarted increments the rounds started counter.
func RecordRoundStarted() {
	globalManager.roundsStarted.Inc()
}

// RecordRoundWon increments the rounds won counter.
func RecordRoundWon() {
	globalManager.roundsWon.Inc()
}

// RecordRoundTimedOut increments the timed-out rounds counter.
func RecordRoundTimedOut() {
	globalManager.roundsTimedOut.Inc()
}

// RecordGuess increments the numeric guesses counter.
func RecordGuess() {
	globalManager.guesses.Inc()
}

// RecordInvalidGuess increments the rejected guesses counter.
func RecordInvalidGuess() {
	globalManager.invalidGuesses.Inc()
}

// RecordScore increments the scores recorded counter.
func RecordScore() {
	globalManager.scoresRecorded.Inc()
}

// RecordImported adds n to the imported records counter.
func RecordImported(n int) {
	globalManager.recordsImported.Add(float64(n))
}

// UpdateLeaderboardSize sets the leaderboard size gauge.
func UpdateLeaderboardSize(size int) {
	globalManager.leaderboardSize.Set(float64(size))
}

// RecordPersistenceError increments the persistence failures counter.
func RecordPersistenceError() {
	globalManager.persistenceErrors.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
