package summary

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

var summarizeRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "textdigest_summarize_requests_total",
		Help: "Total number of POST /summarize requests by result (ok, rejected, failed)",
	},
	[]string{"result"},
)

func recordResult(result string) {
	summarizeRequestsTotal.WithLabelValues(result).Inc()
}
