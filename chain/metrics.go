package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "covenant",
	Subsystem: "chain",
	Name:      "calls_total",
	Help:      "Contract calls processed by the host, by function and result.",
}, []string{"function", "result"})

func observeCall(function string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	callsTotal.WithLabelValues(function, result).Inc()
}
