package cli

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/cityforest/pkg/metrics"
	"github.com/matzehuels/cityforest/pkg/observability"
)

// metricsSink is a collector on its own registry that receives the
// process-wide hooks until stop is called.
type metricsSink struct {
	*metrics.Collector
}

// startMetrics installs a fresh collector.
func startMetrics() (*metricsSink, error) {
	c, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}
	c.Install()
	return &metricsSink{Collector: c}, nil
}

// stop detaches the collector from the hooks.
func (m *metricsSink) stop() {
	observability.Reset()
}
