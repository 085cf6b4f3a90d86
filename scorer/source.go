package scorer

import (
	"context"

	"github.com/ejacobg/edgraph/graph"
	"github.com/ejacobg/edgraph/pipeline"
	"github.com/google/uuid"
)

type panelVertex struct {
	id, time uint64
}

// panelSource emits one payload for every (vertex, year) pair where the
// vertex was issued in or before the year, looping over years first.
type panelSource struct {
	runID    uuid.UUID
	vertices []panelVertex
	toYear   uint64

	year uint64
	idx  int
	done bool
	cur  panelVertex
}

// newPanelSource selects the vertices of g with IDs in [fromID, toID) that
// were issued no earlier than fromYear.
func newPanelSource(g Graph, runID uuid.UUID, fromID, toID, fromYear, toYear uint64) (*panelSource, error) {
	var vertices []panelVertex
	for _, id := range g.Vertices() {
		if id < fromID || id >= toID {
			continue
		}
		t, err := g.Time(id)
		if err != nil {
			return nil, err
		}
		if t < fromYear || t > toYear {
			continue
		}
		vertices = append(vertices, panelVertex{id: id, time: t})
	}

	return &panelSource{
		runID:    runID,
		vertices: vertices,
		toYear:   toYear,
		year:     fromYear,
	}, nil
}

func (ps *panelSource) Error() error { return nil }

func (ps *panelSource) Next(ctx context.Context) bool {
	for !ps.done {
		if ctx.Err() != nil {
			return false
		}
		for ps.idx < len(ps.vertices) {
			v := ps.vertices[ps.idx]
			ps.idx++
			if v.time <= ps.year {
				ps.cur = v
				return true
			}
		}

		ps.idx = 0
		if ps.year == ps.toYear {
			ps.done = true
		} else {
			ps.year++
		}
	}
	return false
}

func (ps *panelSource) Payload() pipeline.Payload {
	p := payloadPool.Get().(*scorePayload)
	p.Score = graph.Score{
		RunID:      ps.runID,
		Vertex:     ps.cur.id,
		VertexTime: ps.cur.time,
		Year:       ps.year,
	}
	return p
}

// ScoreWriter is implemented by objects that can store panel rows.
type ScoreWriter interface {
	// WriteScore stores a single panel row.
	WriteScore(score *graph.Score) error
}

// scoreSink hands every row to the output and keeps a running summary.
type scoreSink struct {
	out     ScoreWriter
	summary *summaryBuilder
}

func (s *scoreSink) Consume(_ context.Context, p pipeline.Payload) error {
	payload := p.(*scorePayload)
	if err := s.out.WriteScore(&payload.Score); err != nil {
		return err
	}

	if payload.Defined {
		rowsTotal.WithLabelValues("defined").Inc()
	} else {
		rowsTotal.WithLabelValues("undefined").Inc()
	}
	s.summary.add(&payload.Score)
	return nil
}
