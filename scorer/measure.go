package scorer

import (
	"errors"
	"fmt"

	"github.com/ejacobg/edgraph/graph"
	"gonum.org/v1/gonum/stat"
)

// Graph is implemented by objects that can answer the queries needed to
// score a vertex.
type Graph interface {
	// Vertices returns the IDs of all vertices in a stable order.
	Vertices() []uint64

	// Time returns the issue time of a vertex.
	Time(v uint64) (uint64, error)

	// Indegree returns the number of citations v received up to endTime.
	Indegree(v, endTime uint64) (int, error)

	// Disrupt returns the disruption score of v as of endTime.
	Disrupt(v, endTime uint64) (float64, error)
}

// Measure returns the panel row of vertex v for the given cutoff year. An
// undefined disruption score is not an error: the row is returned with
// Defined set to false.
func Measure(g Graph, v, year uint64) (*graph.Score, error) {
	t, err := g.Time(v)
	if err != nil {
		return nil, err
	}

	score := &graph.Score{Vertex: v, VertexTime: t, Year: year}
	if err = fillMeasures(g, score); err != nil {
		return nil, err
	}
	return score, nil
}

// fillMeasures computes the indegree, disruption and radicalness of the
// vertex and year already set on score.
func fillMeasures(g Graph, score *graph.Score) error {
	indeg, err := g.Indegree(score.Vertex, score.Year)
	if err != nil {
		return err
	}
	score.Indegree = indeg

	d, err := g.Disrupt(score.Vertex, score.Year)
	switch {
	case errors.Is(err, graph.ErrUndefinedScore):
		score.Defined = false
		score.Disruption = 0
		score.Radicalness = 0
	case err != nil:
		return err
	default:
		score.Defined = true
		score.Disruption = d
		score.Radicalness = d * float64(indeg)
	}
	return nil
}

// Timeline returns the panel rows of v for every year in [fromYear, toYear].
func Timeline(g Graph, v, fromYear, toYear uint64) ([]*graph.Score, error) {
	if fromYear > toYear {
		return nil, fmt.Errorf("timeline: from year %d is after to year %d", fromYear, toYear)
	}

	var rows []*graph.Score
	for year := fromYear; ; year++ {
		score, err := Measure(g, v, year)
		if err != nil {
			return nil, fmt.Errorf("timeline: year %d: %w", year, err)
		}
		rows = append(rows, score)
		if year == toYear {
			break
		}
	}
	return rows, nil
}

// Trend is the least-squares line fitted through the defined disruption
// scores of a timeline: Disruption = Intercept + Slope*Year.
type Trend struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	Points    int     `json:"points"`
}

// FitTrend fits a Trend through the defined rows. It returns false if fewer
// than two rows are defined.
func FitTrend(rows []*graph.Score) (Trend, bool) {
	var xs, ys []float64
	for _, row := range rows {
		if !row.Defined {
			continue
		}
		xs = append(xs, float64(row.Year))
		ys = append(ys, row.Disruption)
	}
	if len(xs) < 2 {
		return Trend{Points: len(xs)}, false
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Trend{Intercept: alpha, Slope: beta, Points: len(xs)}, true
}
