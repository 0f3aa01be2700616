package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistererRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegisterer(registry)

	if m.Transactions == nil || m.TransactionErrors == nil || m.UnitsAllocated == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.Transactions.WithLabelValues("sale", "create").Inc()
	m.Retries.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.Transactions.WithLabelValues("sale", "create")); got != 1 {
		t.Fatalf("expected sale/create counter 1, got %v", got)
	}
}

func TestNewWithRegistererTwiceOnSeparateRegistries(t *testing.T) {
	a := NewWithRegisterer(prometheus.NewRegistry())
	b := NewWithRegisterer(prometheus.NewRegistry())

	a.Retries.Inc()

	if testutil.ToFloat64(b.Retries) != 0 {
		t.Fatal("registries must not share collectors")
	}
}
