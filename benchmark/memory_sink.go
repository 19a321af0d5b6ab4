package benchmark

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/yourusername/go-graph-bench/datagen"
	"github.com/yourusername/go-graph-bench/db/schemas/adjacency/models"
)

// MemorySink decodes every row back into an in-memory multigraph, one per
// edge label. Source and target ids share the label's id space. Repeated
// targets become parallel lines.
type MemorySink struct {
	mu     sync.Mutex
	graphs map[string]*multi.DirectedGraph
	rows   int
}

func NewMemorySink() *MemorySink {
	return &MemorySink{graphs: make(map[string]*multi.DirectedGraph)}
}

func (s *MemorySink) Write(_ context.Context, row models.NodeAdjacency) error {
	_, kind, err := datagen.ParseEdgeLabel(row.EdgeLabel)
	if err != nil {
		return err
	}
	edges, err := datagen.Decode(kind, row.Adjacency)
	if err != nil {
		return fmt.Errorf("node %d: %w", row.NodeID, err)
	}
	if len(edges) != row.OutDegree {
		return fmt.Errorf("node %d: out degree %d but %d encoded edges", row.NodeID, row.OutDegree, len(edges))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.graphs[row.EdgeLabel]
	if !ok {
		g = multi.NewDirectedGraph()
		s.graphs[row.EdgeLabel] = g
	}
	if g.Node(row.NodeID) == nil {
		g.AddNode(multi.Node(row.NodeID))
	}
	for _, e := range edges {
		g.SetLine(g.NewLine(multi.Node(row.NodeID), multi.Node(e.Target)))
	}
	s.rows++
	return nil
}

func (s *MemorySink) Flush(context.Context) error { return nil }

// Rows returns the number of rows written.
func (s *MemorySink) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// Graph returns the multigraph for label, or nil.
func (s *MemorySink) Graph(label string) *multi.DirectedGraph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graphs[label]
}

// OutDegree counts the lines leaving id under label.
func (s *MemorySink) OutDegree(label string, id int64) int {
	g := s.Graph(label)
	if g == nil {
		return 0
	}
	n := 0
	for _, to := range graph.NodesOf(g.From(id)) {
		n += g.Lines(id, to.ID()).Len()
	}
	return n
}

// InDegree counts the lines reaching id under label.
func (s *MemorySink) InDegree(label string, id int64) int {
	g := s.Graph(label)
	if g == nil {
		return 0
	}
	n := 0
	for _, from := range graph.NodesOf(g.To(id)) {
		n += g.Lines(from.ID(), id).Len()
	}
	return n
}

type TargetCount struct {
	ID       int64
	InDegree int
}

// TopTargets returns the n most referenced targets under label, highest
// in-degree first and ties by id.
func (s *MemorySink) TopTargets(label string, n int) []TargetCount {
	g := s.Graph(label)
	if g == nil {
		return nil
	}
	var out []TargetCount
	for _, node := range graph.NodesOf(g.Nodes()) {
		if d := s.InDegree(label, node.ID()); d > 0 {
			out = append(out, TargetCount{ID: node.ID(), InDegree: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].InDegree != out[j].InDegree {
			return out[i].InDegree > out[j].InDegree
		}
		return out[i].ID < out[j].ID
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
