package trackers

import (
	ts "github.com/cosimrl/cartpoleql/timestep"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus exports training progress as Prometheus metrics. Every
// non-first TimeStep counts as one environment step, and every last
// TimeStep finishes an episode, labelled by the reason it ended.
type Prometheus struct {
	// Counters
	episodes *prometheus.CounterVec
	steps    prometheus.Counter

	// Histograms
	episodeLength prometheus.Histogram
}

// NewPrometheus creates a new Prometheus tracker and registers its
// metrics with reg
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		episodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cartpoleql_episodes_total",
			Help: "Total number of finished episodes by end reason",
		}, []string{"end"}),
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "cartpoleql_steps_total",
			Help: "Total number of environment steps taken",
		}),
		episodeLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cartpoleql_episode_length",
			Help:    "Number of steps survived per episode",
			Buckets: prometheus.LinearBuckets(25, 25, 20),
		}),
	}
}

// Track updates the metrics with a TimeStep
func (p *Prometheus) Track(t ts.TimeStep) {
	if t.First() {
		return
	}
	p.steps.Inc()

	if t.Last() {
		p.episodes.WithLabelValues(t.EndType().String()).Inc()
		p.episodeLength.Observe(float64(t.Number))
	}
}
