package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/yourusername/go-graph-bench/datagen"
)

// GenConfig describes one generation run. Every field can be set through a
// GRAPHGEN_* variable and overridden by CLI flags.
type GenConfig struct {
	Sources      int64   `envconfig:"SOURCES" default:"1000"`
	DestSize     int64   `envconfig:"DEST_SIZE" default:"1000"`
	AvgDegree    float64 `envconfig:"AVG_DEGREE" default:"20"`
	MaxDegree    int     `envconfig:"MAX_DEGREE" default:"500"`
	Distribution string  `envconfig:"DISTRIBUTION" default:"pareto"`
	EdgeLabel    string  `envconfig:"EDGE_LABEL" default:"Colleagues"`
	Seed         int64   `envconfig:"SEED"`
	StringLength int     `envconfig:"STRING_LENGTH" default:"10"`
	BatchSize    int     `envconfig:"BATCH_SIZE" default:"500"`
	ResultsCSV   string  `envconfig:"RESULTS_CSV" default:"load_timings.csv"`
}

const genEnvPrefix = "GRAPHGEN"

func LoadGenConfig() (GenConfig, error) {
	var cfg GenConfig
	if err := envconfig.Process(genEnvPrefix, &cfg); err != nil {
		return GenConfig{}, fmt.Errorf("failed to read generator config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields the distribution constructors do not.
func (c GenConfig) Validate() error {
	if c.Sources < 0 {
		return &datagen.ConfigurationError{Param: "sources", Value: c.Sources, Reason: "must not be negative"}
	}
	if c.DestSize <= 0 || c.DestSize > datagen.MaxNodeID+1 {
		return &datagen.ConfigurationError{Param: "dest_size", Value: c.DestSize, Reason: "must be in [1, 2^48]"}
	}
	if c.BatchSize <= 0 {
		return &datagen.ConfigurationError{Param: "batch_size", Value: c.BatchSize, Reason: "must be positive"}
	}
	if _, _, err := datagen.ParseEdgeLabel(c.EdgeLabel); err != nil {
		return err
	}
	_, err := c.BuildDistribution()
	return err
}

// BuildDistribution builds the configured degree distribution.
func (c GenConfig) BuildDistribution() (datagen.DegreeDistribution, error) {
	return datagen.NewDistribution(c.Distribution, c.AvgDegree, c.MaxDegree)
}
