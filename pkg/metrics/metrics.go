// Package metrics registers and exposes the engine's Prometheus
// activity counters and gauges.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratearb_reloads_total", Help: "Total graph reloads performed",
	})
	Vertices = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ratearb_vertices", Help: "Current vertex count of the rate graph",
	})
	Edges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ratearb_edges", Help: "Current edge count of the rate graph",
	})
	PruneInputTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratearb_prune_input_total", Help: "Total instruments submitted to the pruner",
	})
	PruneOutputTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratearb_prune_output_total", Help: "Total instruments surviving the pruner",
	})
	SearchIterationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratearb_search_iterations_total", Help: "Total expansion iterations run across all searches",
	})
	CycleLRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ratearb_cycle_lrate", Help: "Log-rate of the most recently found cycle",
	})
	OpportunitiesFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratearb_opportunities_found_total", Help: "Total cycles found with negative log-rate",
	})
)

// Register creates a fresh registry with every engine metric plus the
// standard Go/process collectors, and returns it.
func Register() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		ReloadsTotal, Vertices, Edges, PruneInputTotal, PruneOutputTotal,
		SearchIterationsTotal, CycleLRate, OpportunitiesFoundTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	return reg
}

// Handler returns the promhttp handler for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
