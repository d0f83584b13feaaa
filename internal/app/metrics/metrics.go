package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics, exposed on the status server's /metrics endpoint.
var (
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "audionotes",
		Name:      "cycles_total",
		Help:      "Scan-and-process cycles completed.",
	})

	FilesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "audionotes",
		Name:      "files_processed_total",
		Help:      "Recordings transcribed, persisted and archived.",
	})

	FilesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audionotes",
		Name:      "files_failed_total",
		Help:      "Per-file failures by pipeline stage.",
	}, []string{"stage"})

	PendingFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "audionotes",
		Name:      "pending_files",
		Help:      "Recordings waiting in the watched directory at last scan.",
	})
)
