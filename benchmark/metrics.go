package benchmark

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NodesGeneratedTotal counts source nodes whose adjacency was generated.
	NodesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphgen_nodes_generated_total",
			Help: "Total number of source nodes generated",
		},
		[]string{"edge_label"},
	)

	// EdgesWrittenTotal counts encoded edges handed to a sink.
	EdgesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphgen_edges_written_total",
			Help: "Total number of encoded edges handed to a sink",
		},
		[]string{"edge_label"},
	)

	// DuplicateEdgesDroppedTotal counts edges skipped by the adjacent-duplicate filter.
	DuplicateEdgesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphgen_duplicate_edges_dropped_total",
			Help: "Total number of sampled edges dropped as adjacent duplicates",
		},
		[]string{"edge_label"},
	)

	// SinkFlushSeconds tracks how long sink flushes take.
	SinkFlushSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphgen_sink_flush_seconds",
			Help:    "Duration of sink flushes",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		},
		[]string{"sink"},
	)
)
