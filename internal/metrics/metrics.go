// Package metrics holds the Document Center domain counters.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics records document lifecycle events. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	documentActions  *prometheus.CounterVec
	remindersSent    *prometheus.CounterVec
	documentRequests *prometheus.CounterVec
	csvExports       prometheus.Counter
	templatesSaved   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		documentActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doccenter",
			Name:      "document_actions_total",
			Help:      "Documents affected by each action (approve, reject, move, ...).",
		}, []string{"action"}),
		remindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doccenter",
			Name:      "reminders_total",
			Help:      "Reminder e-mails by delivery status.",
		}, []string{"status"}),
		documentRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doccenter",
			Name:      "document_requests_total",
			Help:      "Requested documents created, by whether an e-mail was sent.",
		}, []string{"email"}),
		csvExports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doccenter",
			Name:      "activity_exports_total",
			Help:      "Activity log CSV exports.",
		}),
		templatesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doccenter",
			Name:      "signature_templates_saved_total",
			Help:      "Signature templates saved, by category.",
		}, []string{"category"}),
	}
	for _, c := range []prometheus.Collector{
		m.documentActions, m.remindersSent, m.documentRequests, m.csvExports, m.templatesSaved,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DocumentAction adds n to the counter of action.
func (m *Metrics) DocumentAction(action string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.documentActions.WithLabelValues(action).Add(float64(n))
}

// Reminder counts one reminder with its delivery status.
func (m *Metrics) Reminder(status string) {
	if m == nil {
		return
	}
	m.remindersSent.WithLabelValues(status).Inc()
}

// DocumentsRequested adds n requested documents.
func (m *Metrics) DocumentsRequested(n int, emailed bool) {
	if m == nil || n <= 0 {
		return
	}
	label := "false"
	if emailed {
		label = "true"
	}
	m.documentRequests.WithLabelValues(label).Add(float64(n))
}

// Export counts one activity log export.
func (m *Metrics) Export() {
	if m == nil {
		return
	}
	m.csvExports.Inc()
}

// TemplateSaved counts one saved signature template.
func (m *Metrics) TemplateSaved(category string) {
	if m == nil {
		return
	}
	m.templatesSaved.WithLabelValues(category).Inc()
}
