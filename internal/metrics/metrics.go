package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apidocs_catalog_loads_total",
		Help: "Catalog load attempts by result.",
	}, []string{"result"})

	CatalogEndpoints = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "apidocs_catalog_endpoints",
		Help: "Number of endpoints in the current catalog snapshot.",
	})

	ViewDerivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apidocs_view_derivations_total",
		Help: "Filtered views derived from the catalog.",
	})

	ViewDerivationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "apidocs_view_derivation_duration_seconds",
		Help:    "Time spent filtering and sorting the catalog.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	TestRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apidocs_test_requests_total",
		Help: "Ad-hoc endpoint test requests by outcome.",
	}, []string{"outcome"})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apidocs_exports_total",
		Help: "Markdown exports by format.",
	}, []string{"format"})
)
