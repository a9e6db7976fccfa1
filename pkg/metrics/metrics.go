package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PSPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "connector",
			Name:      "psp_requests_total",
			Help:      "Total requests to the Monext API per endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	LedgerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "connector",
			Name:      "ledger_requests_total",
			Help:      "Total requests to the commerce ledger per endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	ReconciliationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "connector",
			Name:      "reconciliations_total",
			Help:      "Payment outcome reconciliations per channel and result",
		},
		[]string{"channel", "result"},
	)

	PSPUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "connector",
			Name:      "psp_up",
			Help:      "1 when the last Monext health check succeeded, 0 otherwise",
		},
	)
)

func init() {
	prometheus.MustRegister(PSPRequestsTotal, LedgerRequestsTotal, ReconciliationsTotal, PSPUp)
}

// Helpers so call sites stay one-liners.
func IncPSPRequest(endpoint, outcome string) {
	PSPRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func IncLedgerRequest(endpoint, outcome string) {
	LedgerRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func IncReconciliation(channel, result string) {
	ReconciliationsTotal.WithLabelValues(channel, result).Inc()
}

func SetPSPUp(up bool) {
	if up {
		PSPUp.Set(1)
		return
	}
	PSPUp.Set(0)
}
