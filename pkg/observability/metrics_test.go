package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.RecordMessage()
	m.RecordMessage()
	m.RecordTransition(TransitionEdge)
	m.RecordTransition(TransitionFallback)
	m.RecordTransition(TransitionFallback)
	m.RecordDistance(1)
	m.RecordReply()
	m.RecordResource("clone")
	m.RecordError("empty_answer_set")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.messages))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues(TransitionEdge)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues(TransitionFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.replies))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resources.WithLabelValues("clone")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("empty_answer_set")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.distance))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordMessage()
		m.RecordTransition(TransitionEdge)
		m.RecordDistance(3)
		m.RecordReply()
		m.RecordResource("move")
		m.RecordError("x")
	})
}
