package benchmark

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/go-graph-bench/db/schemas/adjacency/models"
)

func plainAdjacency(ids ...uint64) []byte {
	var buf []byte
	for _, id := range ids {
		buf = binary.LittleEndian.AppendUint64(buf, id)
	}
	return buf
}

func TestMemorySinkDegrees(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()

	require.NoError(t, sink.Write(ctx, models.NodeAdjacency{NodeID: 0, EdgeLabel: "Colleagues", Adjacency: plainAdjacency(1, 2, 1), OutDegree: 3}))
	require.NoError(t, sink.Write(ctx, models.NodeAdjacency{NodeID: 1, EdgeLabel: "Colleagues", Adjacency: plainAdjacency(1), OutDegree: 1}))
	require.NoError(t, sink.Write(ctx, models.NodeAdjacency{NodeID: 2, EdgeLabel: "Colleagues", OutDegree: 0}))
	require.NoError(t, sink.Flush(ctx))

	assert.Equal(t, 3, sink.Rows())
	assert.Equal(t, 3, sink.OutDegree("Colleagues", 0))
	assert.Equal(t, 1, sink.OutDegree("Colleagues", 1))
	assert.Equal(t, 0, sink.OutDegree("Colleagues", 2))
	assert.Equal(t, 3, sink.InDegree("Colleagues", 1), "parallel lines and self loops count")
	assert.Equal(t, 1, sink.InDegree("Colleagues", 2))
	assert.Equal(t, 0, sink.InDegree("Manager", 1))

	assert.Equal(t, []TargetCount{{ID: 1, InDegree: 3}, {ID: 2, InDegree: 1}}, sink.TopTargets("Colleagues", 5))
	assert.Equal(t, []TargetCount{{ID: 1, InDegree: 3}}, sink.TopTargets("Colleagues", 1))
}

func TestMemorySinkRejectsBadRows(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()

	err := sink.Write(ctx, models.NodeAdjacency{NodeID: 0, EdgeLabel: "Friends"})
	assert.Error(t, err)

	err = sink.Write(ctx, models.NodeAdjacency{NodeID: 0, EdgeLabel: "Colleagues", Adjacency: []byte{1, 2}, OutDegree: 1})
	assert.Error(t, err)

	err = sink.Write(ctx, models.NodeAdjacency{NodeID: 0, EdgeLabel: "Colleagues", Adjacency: plainAdjacency(4), OutDegree: 2})
	assert.ErrorContains(t, err, "out degree 2")

	assert.Zero(t, sink.Rows())
}
