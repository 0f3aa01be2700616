package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	Transactions        *prometheus.CounterVec
	TransactionErrors   *prometheus.CounterVec
	TransactionDuration *prometheus.HistogramVec
	TransactionAmount   *prometheus.HistogramVec
	Retries             prometheus.Counter

	// Inventory metrics
	BatchesCreated    prometheus.Counter
	BatchesExpired    prometheus.Counter
	UnitsAllocated    *prometheus.CounterVec
	AllocationsFailed prometheus.Counter

	// Ledger metrics
	BalanceCacheHits    prometheus.Counter
	BalanceCacheMisses  prometheus.Counter
	ReconciliationRuns  *prometheus.CounterVec
	OutboxPublished     *prometheus.CounterVec
	OutboxPublishErrors prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics on reg instead of the global registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Transactions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costledger_transactions_total",
				Help: "Committed transaction operations by type and operation",
			},
			[]string{"type", "operation"},
		),
		TransactionErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costledger_transaction_errors_total",
				Help: "Rejected transaction operations by error kind",
			},
			[]string{"operation", "kind"},
		),
		TransactionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "costledger_transaction_duration_seconds",
				Help:    "Duration of a transaction unit of work including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		TransactionAmount: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "costledger_transaction_amount",
				Help:    "Transaction total amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		Retries: f.NewCounter(prometheus.CounterOpts{
			Name: "costledger_unit_of_work_retries_total",
			Help: "Units of work retried after a serialization failure, deadlock or version conflict",
		}),

		BatchesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "costledger_batches_created_total",
			Help: "Purchase batches created",
		}),
		BatchesExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "costledger_batches_expired_total",
			Help: "Batches marked expired",
		}),
		UnitsAllocated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costledger_units_allocated_total",
				Help: "Units consumed from batches by transaction type",
			},
			[]string{"type"},
		),
		AllocationsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "costledger_allocations_failed_total",
			Help: "Allocations rejected for insufficient inventory",
		}),

		BalanceCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "costledger_balance_cache_hits_total",
			Help: "Account balance reads served from cache",
		}),
		BalanceCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "costledger_balance_cache_misses_total",
			Help: "Account balance reads that went to storage",
		}),
		ReconciliationRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costledger_reconciliation_runs_total",
				Help: "Reconciliation runs by outcome",
			},
			[]string{"outcome"},
		),
		OutboxPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "costledger_outbox_published_total",
				Help: "Outbox events published by event type",
			},
			[]string{"event_type"},
		),
		OutboxPublishErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "costledger_outbox_publish_errors_total",
			Help: "Outbox events that failed to publish",
		}),
	}
}
