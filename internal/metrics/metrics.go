package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all hackctl metrics
const namespace = "hackctl"

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// AppInfo is a gauge that exposes application version information as labels
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// Init records build information and registers the Go runtime collectors.
// Safe to call more than once.
func Init(version, commit, buildDate string) {
	AppInfo.Reset()
	AppInfo.WithLabelValues(version, commit, buildDate).Set(1)

	registerOnce(collectors.NewGoCollector())
	registerOnce(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

func registerOnce(c prometheus.Collector) {
	if err := Registry.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}
	}
}
