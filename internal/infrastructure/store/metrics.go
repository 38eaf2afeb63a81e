package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

type registerer = prometheus.Registerer

// WithMetrics registers write/scan/batch counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

type metrics struct {
	writes  *prometheus.CounterVec
	scans   *prometheus.CounterVec
	batches prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitcircles_store_writes_total",
			Help: "Durable single-key writes per partition.",
		}, []string{"partition"}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitcircles_store_scans_total",
			Help: "Prefix scans per partition.",
		}, []string{"partition"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gitcircles_store_batch_commits_total",
			Help: "Atomic multi-partition batch commits.",
		}),
	}
	reg.MustRegister(m.writes, m.scans, m.batches)
	return m
}

func (m *metrics) write(partition []byte) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(string(partition)).Inc()
}

func (m *metrics) scan(partition []byte) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(string(partition)).Inc()
}

func (m *metrics) batch() {
	if m == nil {
		return
	}
	m.batches.Inc()
}
