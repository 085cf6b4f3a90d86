package graph

import "github.com/google/uuid"

// Score is one row of a disruption panel: the measures of a vertex as of a
// cutoff year.
type Score struct {
	// The batch run that produced this row.
	RunID uuid.UUID

	Vertex     uint64
	VertexTime uint64

	// The cutoff year of the panel.
	Year uint64

	// Disruption is only meaningful when Defined is true. A vertex with no
	// later citers (direct or through its predecessors) has an undefined
	// score.
	Disruption float64
	Defined    bool

	// Radicalness is Disruption weighted by Indegree.
	Radicalness float64
	Indegree    int
}
