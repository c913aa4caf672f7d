// Package metrics defines the Prometheus instruments exposed by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds reused
// across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Metrics holds all Prometheus instruments for the scraping pipeline.
type Metrics struct {
	// SearchesTotal counts search-provider queries issued, per provider.
	SearchesTotal *prometheus.CounterVec
	// PagesScannedTotal counts candidate pages fetched and scanned.
	PagesScannedTotal prometheus.Counter
	// ScrapeErrorsTotal counts failures, partitioned by stage
	// (search, fetch, upload, archive).
	ScrapeErrorsTotal *prometheus.CounterVec
	// LeadsUploadedTotal counts confirmed uploads to the contacts API.
	LeadsUploadedTotal prometheus.Counter
	// PageFetchSeconds observes the latency of candidate-page fetches.
	PageFetchSeconds prometheus.Histogram
}

// New registers and returns the pipeline metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prospector_searches_total",
			Help: "The total number of search-provider queries issued",
		}, []string{"provider"}),
		PagesScannedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "prospector_pages_scanned_total",
			Help: "The total number of candidate pages fetched and scanned",
		}),
		ScrapeErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prospector_errors_total",
			Help: "The total number of errors encountered, by stage",
		}, []string{"stage"}),
		LeadsUploadedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "prospector_leads_uploaded_total",
			Help: "The total number of leads uploaded to the contacts API",
		}),
		PageFetchSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prospector_page_fetch_seconds",
			Help:    "Latency of candidate-page fetches",
			Buckets: DefaultBuckets,
		}),
	}
}
