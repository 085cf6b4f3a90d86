package inmem

import "github.com/ejacobg/edgraph/graph"

// edgeIterator is a graph.EdgeIterator implementation for the in-memory source.
type edgeIterator struct {
	edges []graph.Edge
	curr  int
}

// Next implements graph.EdgeIterator.
func (i *edgeIterator) Next() bool {
	if i.curr >= len(i.edges) {
		return false
	}
	i.curr++
	return true
}

// Error implements graph.EdgeIterator.
func (i *edgeIterator) Error() error {
	return nil
}

// Close implements graph.EdgeIterator.
func (i *edgeIterator) Close() error {
	return nil
}

// Edge implements graph.EdgeIterator.
func (i *edgeIterator) Edge() *graph.Edge {
	// Hand out a copy so callers cannot modify the stored record.
	edge := i.edges[i.curr-1]
	return &edge
}
