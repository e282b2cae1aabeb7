package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/devicedetector/pkg/classifier"
	"github.com/dmitrymomot/devicedetector/pkg/resultcache"
)

// DefaultNamespace prefixes every metric name when none is given.
const DefaultNamespace = "uadetect"

// Reload statuses.
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

// Collector records classification, cache and reload metrics on its own
// registry. It implements classifier.Observer and resultcache.Observer.
//
// Metrics:
//   - <ns>_classifications_total{classifier,outcome}
//   - <ns>_cache_requests_total{classifier,result}
//   - <ns>_rule_reloads_total{status}
//   - <ns>_rules{classifier}: rules of the active rule-sets
type Collector struct {
	registry *prometheus.Registry

	classifications *prometheus.CounterVec
	cacheRequests   *prometheus.CounterVec
	reloads         *prometheus.CounterVec
	rules           *prometheus.GaugeVec
}

var (
	_ classifier.Observer  = (*Collector)(nil)
	_ resultcache.Observer = (*Collector)(nil)
)

// NewCollector registers the detector metrics on registry. A nil registry
// gets a fresh one; an empty namespace selects DefaultNamespace.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: registry,
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifications_total",
				Help:      "Total number of classifications by classifier and outcome",
			},
			[]string{"classifier", "outcome"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Total number of result cache lookups by classifier and result",
			},
			[]string{"classifier", "result"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_reloads_total",
				Help:      "Total number of rule-set reloads by status",
			},
			[]string{"status"},
		),
		rules: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rules",
				Help:      "Number of rules in the active rule-set of each classifier",
			},
			[]string{"classifier"},
		),
	}

	registry.MustRegister(c.classifications, c.cacheRequests, c.reloads, c.rules)
	return c
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveClassification counts one classification.
func (c *Collector) ObserveClassification(name string, outcome classifier.Outcome) {
	c.classifications.WithLabelValues(name, string(outcome)).Inc()
}

// ObserveCacheLookup counts one result cache lookup.
func (c *Collector) ObserveCacheLookup(name string, result resultcache.Result) {
	c.cacheRequests.WithLabelValues(name, string(result)).Inc()
}

// ObserveReload counts a reload attempt; err is the reload result.
func (c *Collector) ObserveReload(err error) {
	status := ReloadSuccess
	if err != nil {
		status = ReloadFailure
	}
	c.reloads.WithLabelValues(status).Inc()
}

// SetRules records the size of the active rule-set of a classifier.
func (c *Collector) SetRules(name string, n int) {
	c.rules.WithLabelValues(name).Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
