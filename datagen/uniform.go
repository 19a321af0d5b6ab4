package datagen

import (
	"math"
	"math/bits"
	"math/rand"
)

// Uniform spreads out-degrees evenly over [0, 2*AverageDegree) and draws
// targets uniformly inside each edge's sampling window.
type Uniform struct {
	averageDegree float64
}

func NewUniform(averageDegree float64) (*Uniform, error) {
	if math.IsNaN(averageDegree) || averageDegree <= 0 {
		return nil, &ConfigurationError{Param: "average_degree", Value: averageDegree, Reason: "must be positive"}
	}
	return &Uniform{averageDegree: averageDegree}, nil
}

func (u *Uniform) Name() string { return DistributionUniform }

func (u *Uniform) AverageDegree() float64 { return u.averageDegree }

func (u *Uniform) SampleDegreeCount(x float64) int {
	return int(math.Floor(x * 2 * u.averageDegree))
}

func (u *Uniform) SampleTargetID(_ *SampleState, destSize, edgeCount, index int64, rng *rand.Rand) (int64, error) {
	if err := checkSampleArgs(destSize, edgeCount, index); err != nil {
		return 0, err
	}
	start, end := SamplingWindow(destSize, edgeCount, index)
	if start >= end {
		return 0, &SamplingError{destSize, edgeCount, index, "empty window, more edges than destination ids"}
	}
	return start + rng.Int63n(end-start), nil
}

// SamplingWindow returns the end-exclusive slice of [0, destSize) assigned to
// edge index out of edgeCount:
//
//	[ceil(index*destSize/edgeCount), floor((index+1)*destSize/edgeCount)+1)
//
// with the end clamped to destSize. Consecutive windows overlap by at most
// one id and together cover the whole space.
func SamplingWindow(destSize, edgeCount, index int64) (start, end int64) {
	start, rem := mulDiv(index, destSize, edgeCount)
	if rem != 0 {
		start++
	}
	end, _ = mulDiv(index+1, destSize, edgeCount)
	end++
	if end > destSize {
		end = destSize
	}
	return start, end
}

// mulDiv returns a*b/c and its remainder without overflowing the product.
// Callers guarantee 0 <= a <= c so the quotient fits in b.
func mulDiv(a, b, c int64) (q, rem int64) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	uq, ur := bits.Div64(hi, lo, uint64(c))
	return int64(uq), int64(ur)
}
