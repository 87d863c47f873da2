package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BotUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meterbot", Name: "updates_total", Help: "Processed telegram updates",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meterbot", Name: "handler_errors_total", Help: "Handler errors",
	})
	ResidentsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meterbot", Name: "residents_registered_total", Help: "Completed registrations",
	})
	ReadingsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meterbot", Name: "readings_saved_total", Help: "Persisted meter readings",
	})
	ExportsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "meterbot", Name: "exports_total", Help: "Generated xlsx exports",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "meterbot", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(BotUpdates, HandlerErrors, ResidentsRegistered, ReadingsSaved, ExportsGenerated, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
