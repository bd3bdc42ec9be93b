package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transition kinds recorded by RecordTransition.
const (
	TransitionEdge     = "edge"
	TransitionFallback = "fallback"
)

// Metrics collects counters and histograms for session traversal.
//
// Metrics exposed (all namespaced with "chatbot_"):
//
//	messages_total            counter    user messages received
//	transitions_total         counter    moves, labelled by kind (edge, fallback)
//	match_distance            histogram  edit distance of the winning keyword
//	replies_total             counter    answers delivered to the reply sink
//	resource_operations_total counter    avatar handle operations (clone, move, release)
//	errors_total              counter    failed operations, labelled by reason
type Metrics struct {
	messages    prometheus.Counter
	transitions *prometheus.CounterVec
	distance    prometheus.Histogram
	replies     prometheus.Counter
	resources   *prometheus.CounterVec
	errors      *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with registry.
// A nil registry falls back to prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		messages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chatbot",
			Name:      "messages_total",
			Help:      "User messages received by the session",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatbot",
			Name:      "transitions_total",
			Help:      "Session moves between nodes, by kind",
		}, []string{"kind"}),
		distance: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chatbot",
			Name:      "match_distance",
			Help:      "Edit distance between the message and the winning keyword",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		replies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "chatbot",
			Name:      "replies_total",
			Help:      "Answers delivered to the reply sink",
		}),
		resources: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatbot",
			Name:      "resource_operations_total",
			Help:      "Operations on the session's owned resource",
		}, []string{"op"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatbot",
			Name:      "errors_total",
			Help:      "Failed session operations, by reason",
		}, []string{"reason"}),
	}
}

// RecordMessage counts an incoming user message.
func (m *Metrics) RecordMessage() {
	if m == nil {
		return
	}
	m.messages.Inc()
}

// RecordTransition counts a move of the given kind.
func (m *Metrics) RecordTransition(kind string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(kind).Inc()
}

// RecordDistance observes the winning edit distance.
func (m *Metrics) RecordDistance(d int) {
	if m == nil {
		return
	}
	m.distance.Observe(float64(d))
}

// RecordReply counts a delivered answer.
func (m *Metrics) RecordReply() {
	if m == nil {
		return
	}
	m.replies.Inc()
}

// RecordResource counts an operation on the owned resource.
func (m *Metrics) RecordResource(op string) {
	if m == nil {
		return
	}
	m.resources.WithLabelValues(op).Inc()
}

// RecordError counts a failure.
func (m *Metrics) RecordError(reason string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(reason).Inc()
}
