package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GenerationRun records the parameters and totals of one load.
type GenerationRun struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Distribution string         `gorm:"column:distribution;size:32"`
	EdgeLabel    string         `gorm:"column:edge_label;size:64"`
	Seed         int64          `gorm:"column:seed"`
	Params       datatypes.JSON `gorm:"column:params;type:jsonb"`
	Nodes        int64          `gorm:"column:nodes"`
	Edges        int64          `gorm:"column:edges"`
	Dropped      int64          `gorm:"column:dropped"`
	StartedAt    time.Time      `gorm:"column:started_at"`
	FinishedAt   time.Time      `gorm:"column:finished_at"`
}

func (GenerationRun) TableName() string {
	return "generation_runs"
}
