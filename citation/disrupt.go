package citation

import (
	"fmt"
	"math"

	"github.com/ejacobg/edgraph/graph"
)

// Disrupt returns the disruption score of v as of endTime (Funk &
// Owen-Smith, 2017).
//
// Let F be the vertices citing v up to endTime, B_i the vertices citing any
// of v's predecessors up to endTime, and I the union of both restricted to
// vertices issued strictly after v. Each member of I scores +1 if it cites v
// only, -1 if it cites v and one of its predecessors and 0 if it cites only
// predecessors. The result is the mean over I and lies in [-1, 1].
//
// If I is empty the score is undefined: Disrupt returns NaN together with
// graph.ErrUndefinedScore.
func (g *Graph) Disrupt(v, endTime uint64) (float64, error) {
	focalTime, err := g.Time(v)
	if err != nil {
		return math.NaN(), fmt.Errorf("disrupt: %w", err)
	}

	forward, err := g.citingUntil(v, endTime)
	if err != nil {
		return math.NaN(), fmt.Errorf("disrupt: %w", err)
	}
	fSet := makeSet(forward)

	bSet := make(map[uint64]struct{})
	for _, pred := range g.adj.citedBy(v) {
		predCiting, err := g.citingUntil(pred, endTime)
		if err != nil {
			return math.NaN(), fmt.Errorf("disrupt: predecessor %d: %w", pred, err)
		}
		for _, c := range predCiting {
			bSet[c] = struct{}{}
		}
	}

	union := make(map[uint64]struct{}, len(fSet)+len(bSet))
	for c := range fSet {
		union[c] = struct{}{}
	}
	for c := range bSet {
		union[c] = struct{}{}
	}

	var n, sum float64
	for c := range union {
		// Every member of the union was reached through citingUntil, so its
		// time is known.
		t, _ := g.times.get(c)
		if t <= focalTime {
			continue
		}
		n++

		_, inF := fSet[c]
		_, inB := bSet[c]
		isF, isB := indicator(inF), indicator(inB)
		sum += -2*isF*isB + isF
	}

	if n == 0 {
		return math.NaN(), fmt.Errorf("disrupt: vertex %d as of %d: %w", v, endTime, graph.ErrUndefinedScore)
	}
	return sum / n, nil
}

func makeSet(ids []uint64) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
