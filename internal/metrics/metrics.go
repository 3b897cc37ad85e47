// Package metrics exports session activity to prometheus.
//
// Labels are bounded: events are labelled by type only, never per player.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomz197/nyanko/internal/game"
)

// Metrics holds the collectors of one registry.
type Metrics struct {
	events         *prometheus.CounterVec
	finalScore     prometheus.Histogram
	recoveries     prometheus.Histogram
	bestScore      prometheus.Gauge
	activeSessions prometheus.Gauge
	rejected       *prometheus.CounterVec
	tickDuration   prometheus.Histogram

	mu   sync.Mutex
	best int
}

// New registers the collectors with reg. Use prometheus.DefaultRegisterer
// to serve them from promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nyanko_events_total",
			Help: "Session events by type",
		}, []string{"type"}),

		finalScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nyanko_final_score",
			Help:    "Score at game over",
			Buckets: prometheus.LinearBuckets(0, 250, 12),
		}),

		recoveries: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nyanko_recovery_presses",
			Help:    "Presses needed by each successful recovery",
			Buckets: prometheus.LinearBuckets(3, 1, 10),
		}),

		bestScore: f.NewGauge(prometheus.GaugeOpts{
			Name: "nyanko_best_score",
			Help: "Highest score seen by this process",
		}),

		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "nyanko_active_sessions",
			Help: "Currently connected players",
		}),

		// Bounded: "rate_limit", "capacity"
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nyanko_sessions_rejected_total",
			Help: "Connections turned away before a session started",
		}, []string{"reason"}),

		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nyanko_tick_duration_seconds",
			Help:    "Time spent in one simulation tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
		}),
	}

	for _, t := range game.EventTypes() {
		m.events.WithLabelValues(t.String())
	}
	return m
}

// Notify implements game.Observer.
func (m *Metrics) Notify(e game.Event) {
	m.events.WithLabelValues(e.Type.String()).Inc()

	switch e.Type {
	case game.EventRecovered:
		m.recoveries.Observe(float64(e.Required))
	case game.EventGameOver:
		m.finalScore.Observe(float64(e.Score))
		m.ObserveBest(e.HighScore)
	case game.EventSessionStarted:
		m.ObserveBest(e.HighScore)
	}
}

// ObserveBest raises the best score gauge to score if it is higher.
func (m *Metrics) ObserveBest(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best {
		m.best = score
		m.bestScore.Set(float64(score))
	}
}

// SessionStarted counts a connected player. Call the returned func on disconnect.
func (m *Metrics) SessionStarted() (done func()) {
	m.activeSessions.Inc()
	return m.activeSessions.Dec
}

// Rejected counts a refused connection. reason must be one of "rate_limit"
// or "capacity".
func (m *Metrics) Rejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// RecordTick records how long one tick took.
func (m *Metrics) RecordTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
}
