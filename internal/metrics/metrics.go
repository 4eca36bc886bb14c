package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the operator console's two engines.
var (
	FulfillmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillments_total",
			Help: "Fulfillment attempts by terminal outcome",
		},
		[]string{"outcome"},
	)

	CheckRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "check_runs_total",
			Help: "Total number of verification runs",
		},
	)

	CheckItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "check_items_total",
			Help: "Checked stock items by result status",
		},
		[]string{"status"},
	)

	MailboxRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailbox_request_duration_seconds",
			Help:    "Duration of mailbox source adapter calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	StockDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_deleted_total",
			Help: "Stock items removed by bulk delete",
		},
	)
)

// Register registers all metrics with the given registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		FulfillmentsTotal,
		CheckRunsTotal,
		CheckItemsTotal,
		MailboxRequestDuration,
		StockDeletedTotal,
	)
}
