// Package metrics exposes Prometheus counters for document operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_operations_total",
		Help: "Document operations by name and outcome.",
	}, []string{"op", "outcome"})

	exportPages = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "radar_export_pages",
		Help:    "Pages per report export.",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	})
)

// RecordOperation counts one Save/Load/Reset/Export/Import outcome.
func RecordOperation(op string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	operations.WithLabelValues(op, outcome).Inc()
}

// RecordExportPages observes the page count of a finished export.
func RecordExportPages(pages int) {
	exportPages.Observe(float64(pages))
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
