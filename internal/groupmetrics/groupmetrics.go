// Package groupmetrics exposes a parser group's pool occupancy and
// parse outcomes as Prometheus collectors, since the group already
// tracks exactly the counters an operator would want to alarm on.
package groupmetrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles every metric a HttpParserGroup reports.
type Collectors struct {
	PoolSize        prometheus.Gauge
	ParsersCreated  prometheus.Counter
	ParsersOverCap  prometheus.Counter
	RequestsOK      prometheus.Counter
	RequestsErrored prometheus.Counter
}

// New builds a fresh, unregistered Collectors under namespace.
func New(namespace string) *Collectors {
	return &Collectors{
		PoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "parser_pool_size",
			Help:      "Current number of pooled HTTP parsers held by the free list.",
		}),
		ParsersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parsers_created_total",
			Help:      "Total parsers constructed by the group, pooled or not.",
		}),
		ParsersOverCap: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parsers_over_cap_total",
			Help:      "Parsers constructed beyond the pool cap; never returned to the free list.",
		}),
		RequestsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_completed_total",
			Help:      "Requests that reached on_request_end.",
		}),
		RequestsErrored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_errored_total",
			Help:      "Requests that reached on_parsing_error.",
		}),
	}
}

// Register registers every collector against reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, coll := range []prometheus.Collector{
		c.PoolSize, c.ParsersCreated, c.ParsersOverCap, c.RequestsOK, c.RequestsErrored,
	} {
		if err := reg.Register(coll); err != nil {
			return err
		}
	}
	return nil
}
