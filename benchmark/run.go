package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yourusername/go-graph-bench/datagen"
	"github.com/yourusername/go-graph-bench/db/schemas/adjacency/models"
)

// RunPlan selects what one run generates.
type RunPlan struct {
	EdgeLabel string
	Kind      datagen.EdgeKind
	// Sources is the number of source nodes, ids [0, Sources).
	Sources int64
	// DestSize is the number of destination ids targets are drawn from.
	DestSize int64
}

// NewRunPlan resolves label to its edge kind.
func NewRunPlan(label string, sources, destSize int64) (RunPlan, error) {
	canonical, kind, err := datagen.ParseEdgeLabel(label)
	if err != nil {
		return RunPlan{}, err
	}
	return RunPlan{EdgeLabel: canonical, Kind: kind, Sources: sources, DestSize: destSize}, nil
}

type RunStats struct {
	Nodes             int64
	Edges             int64
	Dropped           int64
	MeanOutDegree     float64
	OutDegreeVariance float64
	MaxOutDegree      int
	StartedAt         time.Time
	Elapsed           time.Duration
}

// Run generates the adjacency of every source node in plan and writes it to
// sink, flushing once at the end. It stops at the first generator or sink
// error, or when ctx is done.
func Run(ctx context.Context, gen *datagen.Generator, sink Sink, plan RunPlan, logger zerolog.Logger) (RunStats, error) {
	stats := RunStats{StartedAt: time.Now()}
	if plan.Sources < 0 {
		return stats, fmt.Errorf("negative source count %d", plan.Sources)
	}

	logger.Info().
		Str("edge_label", plan.EdgeLabel).
		Str("kind", plan.Kind.String()).
		Str("distribution", gen.Distribution().Name()).
		Int64("sources", plan.Sources).
		Int64("dest_size", plan.DestSize).
		Msg("generation started")

	nodes := NodesGeneratedTotal.WithLabelValues(plan.EdgeLabel)
	edges := EdgesWrittenTotal.WithLabelValues(plan.EdgeLabel)
	dropped := DuplicateEdgesDroppedTotal.WithLabelValues(plan.EdgeLabel)

	degrees := make([]float64, 0, plan.Sources)
	for id := int64(0); id < plan.Sources; id++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		res, err := gen.Generate(plan.DestSize, plan.Kind)
		if err != nil {
			return stats, fmt.Errorf("node %d: %w", id, err)
		}
		row := models.NodeAdjacency{
			NodeID:    id,
			EdgeLabel: plan.EdgeLabel,
			Adjacency: res.Adjacency,
			OutDegree: res.EdgeCount,
		}
		if err := sink.Write(ctx, row); err != nil {
			return stats, fmt.Errorf("write node %d: %w", id, err)
		}

		nodes.Inc()
		edges.Add(float64(res.EdgeCount))
		dropped.Add(float64(res.Dropped))
		stats.Nodes++
		stats.Edges += int64(res.EdgeCount)
		stats.Dropped += int64(res.Dropped)
		if res.EdgeCount > stats.MaxOutDegree {
			stats.MaxOutDegree = res.EdgeCount
		}
		degrees = append(degrees, float64(res.EdgeCount))
	}

	if err := sink.Flush(ctx); err != nil {
		return stats, fmt.Errorf("flush: %w", err)
	}

	switch len(degrees) {
	case 0:
	case 1:
		stats.MeanOutDegree = degrees[0]
	default:
		stats.MeanOutDegree, stats.OutDegreeVariance = stat.MeanVariance(degrees, nil)
	}
	stats.Elapsed = time.Since(stats.StartedAt)

	logger.Info().
		Int64("nodes", stats.Nodes).
		Int64("edges", stats.Edges).
		Int64("dropped", stats.Dropped).
		Float64("mean_out_degree", stats.MeanOutDegree).
		Float64("out_degree_stddev", math.Sqrt(stats.OutDegreeVariance)).
		Int("max_out_degree", stats.MaxOutDegree).
		Dur("elapsed", stats.Elapsed).
		Msg("generation finished")
	return stats, nil
}

// RunParams is stored as JSON alongside each recorded run.
type RunParams struct {
	AvgDegree    float64 `json:"avg_degree"`
	MaxDegree    int     `json:"max_degree,omitempty"`
	Sources      int64   `json:"sources"`
	DestSize     int64   `json:"dest_size"`
	StringLength int     `json:"string_length,omitempty"`
	BatchSize    int     `json:"batch_size,omitempty"`
}

// RecordRun inserts a generation_runs row for a finished run.
func RecordRun(ctx context.Context, db *gorm.DB, distribution, label string, seed int64, params RunParams, stats RunStats) (models.GenerationRun, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return models.GenerationRun{}, err
	}
	run := models.GenerationRun{
		ID:           uuid.New(),
		Distribution: distribution,
		EdgeLabel:    label,
		Seed:         seed,
		Params:       datatypes.JSON(raw),
		Nodes:        stats.Nodes,
		Edges:        stats.Edges,
		Dropped:      stats.Dropped,
		StartedAt:    stats.StartedAt,
		FinishedAt:   stats.StartedAt.Add(stats.Elapsed),
	}
	if err := db.WithContext(ctx).Create(&run).Error; err != nil {
		return run, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}
