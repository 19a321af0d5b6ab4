package datagen

import (
	"math"
	"math/rand"
)

const (
	// ParetoMinValue is the xmin of the out-degree law.
	ParetoMinValue = 20
	// paretoTargetMinFraction sizes the target-id xmin relative to the
	// destination space.
	paretoTargetMinFraction = 0.04
)

// Pareto draws heavy-tailed out-degrees and skews targets toward low ids,
// which approximates preferential attachment. The shape is chosen so the
// uncapped mean out-degree equals the configured average.
type Pareto struct {
	averageDegree float64
	maxDegree     int
	shape         float64
}

func NewPareto(averageDegree float64, maxDegree int) (*Pareto, error) {
	if math.IsNaN(averageDegree) || math.IsInf(averageDegree, 0) || averageDegree <= 0 {
		return nil, &ConfigurationError{Param: "average_degree", Value: averageDegree, Reason: "must be positive and finite"}
	}
	if maxDegree < 1 {
		return nil, &ConfigurationError{Param: "max_degree", Value: maxDegree, Reason: "must be at least 1"}
	}
	return &Pareto{
		averageDegree: averageDegree,
		maxDegree:     maxDegree,
		shape:         (averageDegree + ParetoMinValue) / averageDegree,
	}, nil
}

func (p *Pareto) Name() string { return DistributionPareto }

// Shape returns k = (averageDegree + 20) / averageDegree.
func (p *Pareto) Shape() float64 { return p.shape }

func (p *Pareto) MaxDegree() int { return p.maxDegree }

// ParetoInverseCDF is the Pareto quantile function shifted so its minimum is 0.
func ParetoInverseCDF(x, k, xmin float64) float64 {
	return xmin/math.Pow(1-x, 1/k) - xmin
}

func (p *Pareto) SampleDegreeCount(u float64) int {
	v := math.Floor(ParetoInverseCDF(u, p.shape, ParetoMinValue))
	if math.IsNaN(v) || v >= float64(p.maxDegree) {
		return p.maxDegree
	}
	return int(v)
}

func (p *Pareto) SampleTargetID(state *SampleState, destSize, edgeCount, index int64, rng *rand.Rand) (int64, error) {
	if err := checkSampleArgs(destSize, edgeCount, index); err != nil {
		return 0, err
	}
	if state == nil {
		state = &SampleState{}
	}
	start, end := p.Window(state, destSize, edgeCount, index)
	return start + rng.Int63n(end-start), nil
}

// Window returns the clamped, end-exclusive id range for edge index and
// updates state. Windows follow equal-probability slices of a Pareto law
// over the destination space, so low ids get narrow windows. A window whose
// bounds collapse is widened by one and every later window of the same
// source is shifted by the same amount, keeping the windows contiguous.
func (p *Pareto) Window(state *SampleState, destSize, edgeCount, index int64) (start, end int64) {
	if index == 0 {
		state.shift = 0
	}
	n := float64(destSize)
	xmin := n * paretoTargetMinFraction
	scale := 1 - math.Pow(xmin/n, p.shape)
	bound := func(i int64) int64 {
		return int64(math.Floor(ParetoInverseCDF(float64(i)*scale/float64(edgeCount), p.shape, xmin)))
	}

	start = bound(index) + state.shift
	if index == edgeCount-1 {
		end = destSize - 1
	} else {
		end = bound(index+1) + state.shift
	}
	if start == end {
		state.shift++
		end++
	}

	if start > destSize-1 {
		start = destSize - 1
	}
	if start < 0 {
		start = 0
	}
	if end > destSize {
		end = destSize
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}
