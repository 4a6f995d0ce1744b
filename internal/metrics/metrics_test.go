package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.DocumentAction("approve", 2)
	m.DocumentAction("approve", 0)
	m.Reminder("sent")
	m.Reminder("failed")
	m.DocumentsRequested(3, true)
	m.Export()
	m.TemplateSaved("Tax")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documentActions.WithLabelValues("approve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remindersSent.WithLabelValues("failed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.documentRequests.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.csvExports))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.templatesSaved.WithLabelValues("Tax")))

	_, err = New(reg)
	assert.Error(t, err, "second registration on the same registry must fail")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DocumentAction("approve", 1)
		m.Reminder("sent")
		m.DocumentsRequested(1, false)
		m.Export()
		m.TemplateSaved("Tax")
	})
}
