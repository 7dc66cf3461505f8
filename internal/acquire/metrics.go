package acquire

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomePresent    = "present"
	outcomeDownloaded = "downloaded"
	outcomeFailed     = "failed"
)

// Metrics counts acquisition outcomes and downloaded archive bytes.
type Metrics struct {
	acquisitions  *prometheus.CounterVec
	downloadBytes prometheus.Counter
}

// NewMetrics creates the acquisition counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		acquisitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "omnisharp",
				Subsystem: "runtime",
				Name:      "acquisitions_total",
				Help:      "Runtime acquisitions by outcome (present, downloaded, failed).",
			},
			[]string{"outcome"},
		),
		downloadBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "omnisharp",
				Subsystem: "runtime",
				Name:      "download_bytes_total",
				Help:      "Bytes of release archives downloaded.",
			},
		),
	}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.acquisitions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) addBytes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.downloadBytes.Add(float64(n))
}
