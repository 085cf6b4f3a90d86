package cdb

import (
	"database/sql"
	"fmt"

	"github.com/ejacobg/edgraph/graph"
)

// vertexIterator is a graph.VertexIterator implementation for the cdb source.
type vertexIterator struct {
	rows          *sql.Rows
	lastErr       error
	latchedVertex *graph.Vertex
}

// Next implements graph.VertexIterator.
func (i *vertexIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	v := new(graph.Vertex)
	i.lastErr = i.rows.Scan(&v.ID, &v.Time)
	if i.lastErr != nil {
		return false
	}

	i.latchedVertex = v
	return true
}

// Error implements graph.VertexIterator.
func (i *vertexIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

// Close implements graph.VertexIterator.
func (i *vertexIterator) Close() error {
	err := i.rows.Close()
	if err != nil {
		return fmt.Errorf("vertex iterator: %w", err)
	}
	return nil
}

// Vertex implements graph.VertexIterator.
func (i *vertexIterator) Vertex() *graph.Vertex {
	return i.latchedVertex
}
