package ledger

import "github.com/prometheus/client_golang/prometheus"

var allocationRuns = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_allocation_runs_total",
		Help: "How many allocation runs have been recorded.",
	},
)

var allocatedCents = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_allocated_cents_total",
		Help: "Sum of all cents distributed to funds by allocation runs.",
	},
)

var transfers = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_transfers_total",
		Help: "How many transfers between funds have been created.",
	},
)

var periodTransitions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_period_transitions_total",
		Help: "How many period state transitions happened, partitioned by resulting status.",
	},
	[]string{"status"},
)

// Collectors returns all Prometheus collectors of the ledger.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		allocationRuns,
		allocatedCents,
		transfers,
		periodTransitions,
	}
}
