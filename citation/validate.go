package citation

import (
	"errors"
	"fmt"

	"github.com/ejacobg/edgraph/graph"
	"github.com/hashicorp/go-multierror"
)

// ErrChronology is reported by Validate for an edge whose citing vertex was
// issued before the vertex it cites.
var ErrChronology = errors.New("citing vertex precedes cited vertex")

// Validate checks every stored edge and reports all edges that reference a
// vertex without a time entry or that point forward in time. The graph is
// usable either way; Validate only lets callers fail fast on dirty input.
func (g *Graph) Validate() error {
	var err error
	g.adj.cited.scan(func(src, dst uint64) bool {
		srcTime, srcOK := g.times.get(src)
		dstTime, dstOK := g.times.get(dst)
		switch {
		case !srcOK:
			err = multierror.Append(err, fmt.Errorf("edge %d -> %d: citing vertex %d: %w", src, dst, src, graph.ErrUnknownVertex))
		case !dstOK:
			err = multierror.Append(err, fmt.Errorf("edge %d -> %d: cited vertex %d: %w", src, dst, dst, graph.ErrUnknownVertex))
		case srcTime < dstTime:
			err = multierror.Append(err, fmt.Errorf("edge %d -> %d (%d < %d): %w", src, dst, srcTime, dstTime, ErrChronology))
		}
		return true
	})
	return err
}
