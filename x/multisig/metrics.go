package multisig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters are advisory. A call that is rolled back by the host after the
// wallet returned is still counted.
var (
	submittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "covenant",
		Subsystem: "multisig",
		Name:      "operations_submitted_total",
		Help:      "Operations submitted, by kind.",
	}, []string{"kind"})

	executedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "covenant",
		Subsystem: "multisig",
		Name:      "operations_executed_total",
		Help:      "Operations executed, by kind.",
	}, []string{"kind"})

	canceledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "covenant",
		Subsystem: "multisig",
		Name:      "operations_canceled_total",
		Help:      "Operations canceled by their creator.",
	})

	votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "covenant",
		Subsystem: "multisig",
		Name:      "votes_total",
		Help:      "Owner confirmations and revocations.",
	}, []string{"action"})
)
