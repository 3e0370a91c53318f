package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"uiflow/domain/events"
	"uiflow/pkg/memo"
)

// Namespace prefixes every metric name
const Namespace = "uiflow"

// Collector holds all Prometheus metrics for an editor process
type Collector struct {
	registry *prometheus.Registry

	// Bus metrics
	Commands        *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	Queries         *prometheus.CounterVec
	QueryDuration   *prometheus.HistogramVec

	// Business metrics
	Events *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "commands_total",
				Help:      "Total number of editor commands by outcome",
			},
			[]string{"command", "status"},
		),
		CommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "command_duration_seconds",
				Help:      "Editor command duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "queries_total",
				Help:      "Total number of read model queries by outcome",
			},
			[]string{"query", "status"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "query_duration_seconds",
				Help:      "Read model query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "domain_events_total",
				Help:      "Total number of published domain events",
			},
			[]string{"type"},
		),
	}

	c.registry.MustRegister(
		c.Commands,
		c.CommandDuration,
		c.Queries,
		c.QueryDuration,
		c.Events,
	)
	return c
}

// Registry returns the registry the metrics are registered with
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveCommand records one dispatched command
func (c *Collector) ObserveCommand(command string, duration time.Duration, err error) {
	c.Commands.WithLabelValues(command, status(err)).Inc()
	c.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// ObserveQuery records one answered query
func (c *Collector) ObserveQuery(query string, duration time.Duration, err error) {
	c.Queries.WithLabelValues(query, status(err)).Inc()
	c.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// CountEvent is an event bus handler counting events by type
func (c *Collector) CountEvent(ctx context.Context, event events.DomainEvent) error {
	c.Events.WithLabelValues(event.GetEventType()).Inc()
	return nil
}

// WatchCache exports the hit and miss counters of a memo cache
func (c *Collector) WatchCache(cache *memo.Cache) error {
	hits := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "memo_hits_total",
			Help:      "Total number of memoized values served from cache",
		},
		func() float64 { return float64(cache.Stats().Hits) },
	)
	misses := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "memo_misses_total",
			Help:      "Total number of memoized values computed",
		},
		func() float64 { return float64(cache.Stats().Misses) },
	)
	entries := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "memo_entries",
			Help:      "Number of values currently memoized",
		},
		func() float64 { return float64(cache.Len()) },
	)

	for _, m := range []prometheus.Collector{hits, misses, entries} {
		if err := c.registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Sample is one gathered metric value
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot gathers counters and gauges. Histograms report their sample count.
func (c *Collector) Snapshot() ([]Sample, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: map[string]string{}}
			for _, lp := range m.GetLabel() {
				s.Labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				s.Value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				s.Value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			samples = append(samples, s)
		}
	}
	return samples, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
