package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the search proxy.
type Metrics struct {
	SearchesTotal  prometheus.Counter
	TokenRefreshes prometheus.Counter
	OffersReturned prometheus.Counter
	SearchDuration prometheus.Histogram
	ErrorsTotal    *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "The total number of flight searches handled",
		}),
		TokenRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "The total number of provider token exchanges performed",
		}),
		OffersReturned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_returned_total",
			Help:      "The total number of travel options returned to callers",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time taken to complete a flight search",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors by operation",
		}, []string{"operation"}),
	}
}
