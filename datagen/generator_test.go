package datagen

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed degrees and target ids.
type scripted struct {
	degree  int
	targets []int64
	next    int
	err     error
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) SampleDegreeCount(float64) int { return s.degree }

func (s *scripted) SampleTargetID(_ *SampleState, _, _, _ int64, _ *rand.Rand) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	id := s.targets[s.next%len(s.targets)]
	s.next++
	return id, nil
}

// fixedDegree keeps the uniform target law but forces the out-degree.
type fixedDegree struct {
	*Uniform
	degree int
}

func (f fixedDegree) SampleDegreeCount(float64) int { return f.degree }

func newTestGenerator(t *testing.T, dist DegreeDistribution, seed int64) *Generator {
	t.Helper()
	g, err := NewGenerator(dist, Options{Seed: seed})
	require.NoError(t, err)
	return g
}

func TestGeneratePlainDeterministic(t *testing.T) {
	const destSize = 100
	u, err := NewUniform(40)
	require.NoError(t, err)

	run := func() []Result {
		g := newTestGenerator(t, u, 42)
		var out []Result
		for i := 0; i < 25; i++ {
			res, err := g.Generate(destSize, EdgePlain)
			require.NoError(t, err)
			out = append(out, res)
		}
		return out
	}

	first, second := run(), run()
	require.Equal(t, first, second)

	total := 0
	for _, res := range first {
		require.Len(t, res.Adjacency, 8*res.EdgeCount)
		assert.Equal(t, min(res.Requested, destSize), res.EdgeCount+res.Dropped)

		edges, err := Decode(EdgePlain, res.Adjacency)
		require.NoError(t, err)
		require.Len(t, edges, res.EdgeCount)
		for i, e := range edges {
			require.GreaterOrEqual(t, e.Target, int64(0))
			require.Less(t, e.Target, int64(destSize))
			if i > 0 {
				require.NotEqual(t, edges[i-1].Target, e.Target, "consecutive duplicate at %d", i)
			}
		}
		total += res.EdgeCount
	}
	assert.Positive(t, total)
}

func TestGenerateDifferentSeedsDiverge(t *testing.T) {
	u, err := NewUniform(40)
	require.NoError(t, err)
	a, err := newTestGenerator(t, u, 1).Generate(1000, EdgePlain)
	require.NoError(t, err)
	b, err := newTestGenerator(t, u, 2).Generate(1000, EdgePlain)
	require.NoError(t, err)
	assert.NotEqual(t, a.Adjacency, b.Adjacency)
}

func TestGenerateDropsAdjacentDuplicates(t *testing.T) {
	const destSize = 50
	dist := &scripted{degree: 5, targets: []int64{3, 3, 4, 3, 3}}
	g := newTestGenerator(t, dist, 9)

	res, err := g.Generate(destSize, EdgePlain)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Requested)
	assert.Equal(t, 3, res.EdgeCount)
	assert.Equal(t, 2, res.Dropped)
	require.Len(t, res.Adjacency, 3*8)

	edges, err := Decode(EdgePlain, res.Adjacency)
	require.NoError(t, err)
	require.Len(t, edges, 3)
	// 3, 4, 3 after the run's common offset: only adjacent repeats go.
	assert.Equal(t, edges[0].Target, edges[2].Target)
	assert.Equal(t, int64(1), (edges[1].Target-edges[0].Target+destSize)%destSize)
}

func TestGenerateClampsEdgeCountToDestSize(t *testing.T) {
	u, err := NewUniform(1)
	require.NoError(t, err)
	g := newTestGenerator(t, fixedDegree{Uniform: u, degree: 12}, 5)

	res, err := g.Generate(10, EdgePlain)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Requested)
	assert.Equal(t, 10, res.EdgeCount+res.Dropped)

	edges, err := Decode(EdgePlain, res.Adjacency)
	require.NoError(t, err)
	for _, e := range edges {
		assert.GreaterOrEqual(t, e.Target, int64(0))
		assert.Less(t, e.Target, int64(10))
	}
}

func TestGenerateEmpty(t *testing.T) {
	u, err := NewUniform(10)
	require.NoError(t, err)

	res, err := newTestGenerator(t, fixedDegree{Uniform: u, degree: 4}, 1).Generate(0, EdgePlain)
	require.NoError(t, err)
	assert.Empty(t, res.Adjacency)
	assert.Zero(t, res.EdgeCount)

	res, err = newTestGenerator(t, fixedDegree{Uniform: u, degree: 0}, 1).Generate(10, EdgeAttributed)
	require.NoError(t, err)
	assert.Empty(t, res.Adjacency)
	assert.Zero(t, res.EdgeCount)
}

func TestGenerateAttributedRoundTrip(t *testing.T) {
	const destSize = 200
	p, err := NewPareto(20, 150)
	require.NoError(t, err)

	plain := newTestGenerator(t, p, 77)
	g, err := NewGenerator(p, Options{Seed: 77, StringLength: 12})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		want, err := plain.Generate(destSize, EdgePlain)
		require.NoError(t, err)
		res, err := g.Generate(destSize, EdgeAttributed)
		require.NoError(t, err)

		plainEdges, err := Decode(EdgePlain, want.Adjacency)
		require.NoError(t, err)
		edges, err := Decode(EdgeAttributed, res.Adjacency)
		require.NoError(t, err)
		require.Len(t, edges, res.EdgeCount)
		require.Len(t, edges, len(plainEdges), "attributes must not perturb target sampling")

		for j, e := range edges {
			assert.Equal(t, plainEdges[j].Target, e.Target)
			assert.GreaterOrEqual(t, e.Weight, int32(0))
			assert.Less(t, e.Weight, int32(MaxAttributeWeight))
			assert.GreaterOrEqual(t, e.Fraction, 0.0)
			assert.Less(t, e.Fraction, 1.0)
			assert.Len(t, e.Label, 12)
			assert.Regexp(t, "^[A-Z]+$", e.Label)
		}
	}
}

func TestGenerateTaggedIDRoundTrip(t *testing.T) {
	u, err := NewUniform(8)
	require.NoError(t, err)
	res, err := newTestGenerator(t, fixedDegree{Uniform: u, degree: 6}, 3).Generate(1000, EdgeTaggedID)
	require.NoError(t, err)
	require.Len(t, res.Adjacency, 8*res.EdgeCount)

	edges, err := Decode(EdgeTaggedID, res.Adjacency)
	require.NoError(t, err)
	require.Len(t, edges, res.EdgeCount)
	for _, e := range edges {
		assert.Less(t, e.Target, int64(1000))
	}

	_, err = Decode(EdgeAttributed, res.Adjacency)
	assert.Error(t, err)
}

func TestGenerateRejectsOversizedSpace(t *testing.T) {
	u, err := NewUniform(8)
	require.NoError(t, err)
	_, err = newTestGenerator(t, u, 1).Generate(MaxNodeID+2, EdgePlain)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	u, err := NewUniform(8)
	require.NoError(t, err)
	_, err = newTestGenerator(t, u, 1).Generate(10, EdgeKind(9))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGenerateSurfacesSamplingError(t *testing.T) {
	boom := &SamplingError{DestSize: 10, EdgeCount: 2, Index: 0, Reason: "boom"}
	g := newTestGenerator(t, &scripted{degree: 2, err: boom}, 1)
	_, err := g.Generate(10, EdgePlain)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSampling)
	assert.True(t, errors.Is(err, boom))
}

func TestNewGeneratorValidates(t *testing.T) {
	_, err := NewGenerator(nil, Options{})
	assert.ErrorIs(t, err, ErrConfiguration)

	u, err := NewUniform(1)
	require.NoError(t, err)
	_, err = NewGenerator(u, Options{StringLength: -1})
	assert.ErrorIs(t, err, ErrConfiguration)
}
