package datagen

import (
	"fmt"
	"math/rand"
	"strings"
)

// DegreeDistribution decides how many edges a source node gets and which
// destination ids they point at.
type DegreeDistribution interface {
	// Name is the label used in config and run bookkeeping.
	Name() string
	// SampleDegreeCount maps a uniform draw u in [0,1) to an out-degree.
	SampleDegreeCount(u float64) int
	// SampleTargetID returns the id for edge index out of edgeCount in a
	// destination space of destSize ids. state belongs to the caller and
	// carries per-source bookkeeping between calls.
	SampleTargetID(state *SampleState, destSize, edgeCount, index int64, rng *rand.Rand) (int64, error)
}

// SampleState is the per-source scratch space threaded through
// SampleTargetID. A zero value is ready to use.
type SampleState struct {
	// shift counts how many collapsed windows have been widened so far for
	// the current source. Reset when index 0 is sampled.
	shift int64
}

// Shift returns the number of window widenings applied to the current source.
func (s *SampleState) Shift() int64 { return s.shift }

const (
	DistributionUniform = "uniform"
	DistributionPareto  = "pareto"
)

// NewDistribution builds the named distribution. maxDegree is ignored by the
// uniform law.
func NewDistribution(name string, averageDegree float64, maxDegree int) (DegreeDistribution, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DistributionUniform:
		return NewUniform(averageDegree)
	case DistributionPareto:
		return NewPareto(averageDegree, maxDegree)
	default:
		return nil, &ConfigurationError{Param: "distribution", Value: name, Reason: fmt.Sprintf("want %q or %q", DistributionUniform, DistributionPareto)}
	}
}
