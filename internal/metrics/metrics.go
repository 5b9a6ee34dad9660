package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	FetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chm",
		Name:      "fetch_total",
		Help:      "Total number of snapshot fetches by kind and result",
	}, []string{"kind", "result"})

	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chm",
		Name:      "fetch_duration_seconds",
		Help:      "Latency of snapshot fetches by kind",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	ReportedErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chm",
		Name:      "reported_errors_total",
		Help:      "Total number of fetch errors forwarded to the error reporter",
	})

	LoadCycles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chm",
		Name:      "load_cycles_total",
		Help:      "Total number of load cycles started by a health-check token",
	})

	StaleResults = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chm",
		Name:      "stale_results_total",
		Help:      "Results that arrived after a newer load cycle had started",
	})
)

// Register registers metrics into the default Prometheus registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(FetchTotal)
		prometheus.MustRegister(FetchDuration)
		prometheus.MustRegister(ReportedErrors)
		prometheus.MustRegister(LoadCycles)
		prometheus.MustRegister(StaleResults)
	})
}

// Handler registers the collectors and returns the /metrics HTTP handler.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// Result maps a fetch error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
