package scorer

import (
	"sync"

	"github.com/ejacobg/edgraph/graph"
	"github.com/ejacobg/edgraph/pipeline"
)

var (
	_ pipeline.Payload = (*scorePayload)(nil)

	// A batch run creates one payload per (vertex, year) pair; recycle
	// them to keep allocations down.
	payloadPool = sync.Pool{
		New: func() interface{} { return new(scorePayload) },
	}
)

type scorePayload struct {
	// Vertex, VertexTime, Year and RunID are populated by the panel source;
	// the remaining fields by the score calculator.
	graph.Score
}

// Clone implements pipeline.Payload.
func (p *scorePayload) Clone() pipeline.Payload {
	newP := payloadPool.Get().(*scorePayload)
	newP.Score = p.Score
	return newP
}

// MarkAsProcessed implements pipeline.Payload
func (p *scorePayload) MarkAsProcessed() {
	p.Score = graph.Score{}
	payloadPool.Put(p)
}
