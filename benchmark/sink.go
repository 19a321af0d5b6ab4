package benchmark

import (
	"context"

	"github.com/yourusername/go-graph-bench/db/schemas/adjacency/models"
)

// Sink persists generated adjacency rows. Write may buffer; Flush must
// leave nothing pending.
type Sink interface {
	Write(ctx context.Context, row models.NodeAdjacency) error
	Flush(ctx context.Context) error
}
