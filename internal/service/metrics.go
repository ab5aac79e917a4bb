package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the domain counters exported by the service.
type Metrics struct {
	documentsStored prometheus.Counter
	completions     *prometheus.CounterVec
}

// NewMetrics creates and registers the service counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		documentsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docqa_documents_stored_total",
			Help: "Total number of documents extracted and stored.",
		}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docqa_completions_total",
			Help: "Total number of completion calls by outcome.",
		}, []string{"outcome"}),
	}
	for _, c := range []prometheus.Collector{m.documentsStored, m.completions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) documentStored() {
	if m != nil {
		m.documentsStored.Inc()
	}
}

func (m *Metrics) completion(outcome string) {
	if m != nil {
		m.completions.WithLabelValues(outcome).Inc()
	}
}
