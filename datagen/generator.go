package datagen

import (
	"fmt"
	"math/rand"
)

// Options tunes a Generator.
type Options struct {
	// Seed makes a run reproducible. Every random stream of the generator
	// is derived from it.
	Seed int64
	// StringLength is the label length on attributed edges.
	StringLength int
}

// Result is the adjacency produced for one source node.
type Result struct {
	Adjacency []byte
	// EdgeCount is the number of edges actually encoded.
	EdgeCount int
	// Requested is the sampled out-degree before clamping and filtering.
	Requested int
	// Dropped counts edges skipped because they repeated the previous target.
	Dropped int
}

// Generator samples and encodes the adjacency of one source node at a time.
// It is not safe for concurrent use.
type Generator struct {
	dist         DegreeDistribution
	degreeRng    *rand.Rand
	targetRng    *rand.Rand
	attrRng      *rand.Rand
	strs         *StringGenerator
	stringLength int

	// base offsets every target id of the run, drawn once.
	base  uint64
	state SampleState
}

func NewGenerator(dist DegreeDistribution, opts Options) (*Generator, error) {
	if dist == nil {
		return nil, &ConfigurationError{Param: "distribution", Value: nil, Reason: "required"}
	}
	if opts.StringLength < 0 {
		return nil, &ConfigurationError{Param: "string_length", Value: opts.StringLength, Reason: "must not be negative"}
	}
	if opts.StringLength == 0 {
		opts.StringLength = DefaultStringLength
	}

	root := rand.New(rand.NewSource(opts.Seed))
	g := &Generator{
		dist:         dist,
		degreeRng:    rand.New(rand.NewSource(root.Int63())),
		targetRng:    rand.New(rand.NewSource(root.Int63())),
		attrRng:      rand.New(rand.NewSource(root.Int63())),
		stringLength: opts.StringLength,
	}
	g.strs = NewStringGenerator(root.Int63())
	g.base = root.Uint64()
	return g, nil
}

// Distribution returns the law the generator samples from.
func (g *Generator) Distribution() DegreeDistribution { return g.dist }

// Generate samples an out-degree, draws that many targets in [0, destSize)
// and encodes them with kind. A target equal to the previously accepted one
// is skipped. The out-degree is clamped to destSize so every edge has a
// non-empty window. An empty destination space or a zero out-degree yields
// an empty result.
func (g *Generator) Generate(destSize int64, kind EdgeKind) (Result, error) {
	if destSize > MaxNodeID+1 {
		return Result{}, &ConfigurationError{Param: "dest_size", Value: destSize, Reason: "ids must fit in 48 bits"}
	}
	enc, err := NewEncoder(kind, g.attrRng, g.strs, g.stringLength)
	if err != nil {
		return Result{}, err
	}

	requested := g.dist.SampleDegreeCount(g.degreeRng.Float64())
	res := Result{Requested: requested}
	if destSize <= 0 || requested <= 0 {
		return res, nil
	}

	edgeCount := int64(requested)
	if edgeCount > destSize {
		edgeCount = destSize
	}
	offset := int64(g.base % uint64(destSize))

	prev := int64(-1)
	for i := int64(0); i < edgeCount; i++ {
		target, err := g.dist.SampleTargetID(&g.state, destSize, edgeCount, i, g.targetRng)
		if err != nil {
			return Result{}, fmt.Errorf("sample edge %d of %d: %w", i, edgeCount, err)
		}
		target += offset
		if target > destSize-1 {
			target -= destSize
		}
		if target == prev {
			res.Dropped++
			continue
		}
		prev = target
		enc.Append(target)
	}

	res.Adjacency = enc.Bytes()
	res.EdgeCount = enc.Count()
	return res, nil
}
