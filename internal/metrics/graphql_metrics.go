package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GraphQLMetrics records what the API surface does per operation.
type GraphQLMetrics interface {
	ObserveOperation(operation string, outcome string, took time.Duration)
	IncResolverError(field string, code string)
	IncAuthzDenied(scope string)
}

type graphQLMetrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	errors     *prometheus.CounterVec
	denied     *prometheus.CounterVec
}

func NewGraphQLMetrics(registry prometheus.Registerer) GraphQLMetrics {
	factory := promauto.With(registry)

	return &graphQLMetrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphql_operations_total",
				Help: "GraphQL operations handled, by operation name and outcome",
			},
			[]string{"operation", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphql_operation_duration_seconds",
				Help:    "Time spent executing a GraphQL operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphql_resolver_errors_total",
				Help: "Resolver errors by field and error code",
			},
			[]string{"field", "code"},
		),
		denied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphql_authz_denied_total",
				Help: "Refused authorization checks by scope",
			},
			[]string{"scope"},
		),
	}
}

func (m *graphQLMetrics) ObserveOperation(operation string, outcome string, took time.Duration) {
	if operation == "" {
		operation = "anonymous"
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(took.Seconds())
}

func (m *graphQLMetrics) IncResolverError(field string, code string) {
	if code == "" {
		code = "internal"
	}
	m.errors.WithLabelValues(field, code).Inc()
}

func (m *graphQLMetrics) IncAuthzDenied(scope string) {
	m.denied.WithLabelValues(scope).Inc()
}

// Noop discards everything. Used by tests and tools that have no registry.
type Noop struct{}

func (Noop) ObserveOperation(string, string, time.Duration) {}
func (Noop) IncResolverError(string, string)                {}
func (Noop) IncAuthzDenied(string)                          {}
