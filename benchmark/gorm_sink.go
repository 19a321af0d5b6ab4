package benchmark

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/go-graph-bench/db/schemas/adjacency/models"
)

// GormSink upserts adjacency rows in batches. It is not safe for concurrent use.
type GormSink struct {
	db        *gorm.DB
	batchSize int
	explain   bool

	pending []models.NodeAdjacency
	timings []StepTiming
}

type GormSinkOption func(*GormSink)

// WithExplain records the EXPLAIN plan of every flush. It needs a live database.
func WithExplain() GormSinkOption {
	return func(s *GormSink) { s.explain = true }
}

func NewGormSink(db *gorm.DB, batchSize int, opts ...GormSinkOption) *GormSink {
	if batchSize <= 0 {
		batchSize = 1
	}
	s := &GormSink{db: db, batchSize: batchSize}
	for _, opt := range opts {
		opt(s)
	}
	s.pending = make([]models.NodeAdjacency, 0, batchSize)
	return s
}

func (s *GormSink) Write(ctx context.Context, row models.NodeAdjacency) error {
	s.pending = append(s.pending, row)
	if len(s.pending) >= s.batchSize {
		return s.Flush(ctx)
	}
	return nil
}

func (s *GormSink) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	tx := s.db.WithContext(ctx)

	t0 := time.Now()
	res := upsertAdjacency(tx, s.pending)
	elapsed := time.Since(t0)
	SinkFlushSeconds.WithLabelValues("gorm").Observe(elapsed.Seconds())

	timing := StepTiming{
		Label:    "upsert_adjacency",
		SQL:      res.Statement.SQL.String(),
		Rows:     len(s.pending),
		Duration: elapsed,
	}
	// Vars carry every adjacency buffer of the batch; keep them only when explaining.
	if s.explain && res.Error == nil {
		timing.Vars = res.Statement.Vars
		timing.Explain = GetExplainPlan(tx, timing.SQL, timing.Vars)
	}
	s.timings = append(s.timings, timing)
	if res.Error != nil {
		return res.Error
	}

	s.pending = s.pending[:0]
	return nil
}

// Timings returns one entry per flush.
func (s *GormSink) Timings() []StepTiming {
	return s.timings
}

func upsertAdjacency(tx *gorm.DB, rows []models.NodeAdjacency) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "node_id"}, {Name: "edge_label"}},
		DoUpdates: clause.AssignmentColumns([]string{"adjacency", "out_degree"}),
	}).Create(&rows)
}
