package experiment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smartcab"

// metrics holds the Prometheus metrics of an experiment
type metrics struct {
	trials      prometheus.Counter
	successes   prometheus.Counter
	steps       prometheus.Counter
	trialReturn prometheus.Gauge
	trialLength prometheus.Gauge
	exploration prometheus.Gauge
	tableSize   prometheus.Gauge
}

// newMetrics creates the metrics of an experiment and registers them
// with reg. If reg is nil, the metrics are not registered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		trials: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trials_total",
				Help:      "Number of finished trials",
			},
		),
		successes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "successes_total",
				Help:      "Number of trials in which the destination was reached",
			},
		),
		steps: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Number of agent-environment steps",
			},
		),
		trialReturn: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "trial_return",
				Help:      "Cumulative reward of the most recent trial",
			},
		),
		trialLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "trial_length",
				Help:      "Number of steps in the most recent trial",
			},
		),
		exploration: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "exploration",
				Help:      "Exploration intensity of the agent [0,1]",
			},
		),
		tableSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "table_entries",
				Help:      "Number of materialized state-action values",
			},
		),
	}
}
