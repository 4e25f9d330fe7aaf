// Package metrics holds the prometheus collectors of the maze service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "maze3d"

// Game collects maze generation and movement statistics.
type Game struct {
	generations        prometheus.Counter
	generationDuration prometheus.Histogram
	steps              *prometheus.CounterVec
	rejections         *prometheus.CounterVec
	sessions           prometheus.Gauge
}

// NewGame creates the game collectors and registers them with reg.
func NewGame(reg prometheus.Registerer) *Game {
	m := &Game{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maze_generations_total",
			Help:      "Mazes generated, including resets.",
		}),
		generationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "maze_generation_seconds",
			Help:      "Time spent generating a maze.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movement_steps_total",
			Help:      "Movement requests resolved, by direction.",
		}, []string{"direction"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movement_axis_rejections_total",
			Help:      "Requested axis components zeroed by a wall or the maze boundary.",
		}, []string{"axis"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Live game sessions.",
		}),
	}

	reg.MustRegister(m.generations, m.generationDuration, m.steps, m.rejections, m.sessions)
	return m
}

// ObserveGeneration records one maze generation taking seconds.
func (m *Game) ObserveGeneration(seconds float64) {
	m.generations.Inc()
	m.generationDuration.Observe(seconds)
}

// ObserveStep records a resolved movement and which axes were rejected.
func (m *Game) ObserveStep(direction string, rejectedX, rejectedZ bool) {
	m.steps.WithLabelValues(direction).Inc()
	if rejectedX {
		m.rejections.WithLabelValues("x").Inc()
	}
	if rejectedZ {
		m.rejections.WithLabelValues("z").Inc()
	}
}

// SessionStarted bumps the live session gauge.
func (m *Game) SessionStarted() {
	m.sessions.Inc()
}

// SessionEnded lowers the live session gauge.
func (m *Game) SessionEnded() {
	m.sessions.Dec()
}
