package scorer

import (
	"math"
	"sort"
	"time"

	"github.com/ejacobg/edgraph/graph"
	"github.com/google/uuid"
)

// Summary describes a completed batch run.
type Summary struct {
	RunID uuid.UUID

	// Rows is the number of rows written, Undefined how many of them have
	// an undefined score and Skipped the number of (vertex, year) pairs
	// dropped because of unknown vertices.
	Rows      int
	Undefined int
	Skipped   int

	Years   []YearSummary
	Elapsed time.Duration
}

// YearSummary aggregates the defined scores of a single panel year.
type YearSummary struct {
	Year      uint64
	Rows      int
	Undefined int

	// Mean, Min and Max are NaN when no score of the year is defined.
	Mean float64
	Min  float64
	Max  float64
}

type yearAgg struct {
	rows, undefined int
	sum, min, max   float64
}

type summaryBuilder struct {
	years map[uint64]*yearAgg
}

func newSummaryBuilder() *summaryBuilder {
	return &summaryBuilder{years: make(map[uint64]*yearAgg)}
}

func (b *summaryBuilder) add(s *graph.Score) {
	agg := b.years[s.Year]
	if agg == nil {
		agg = &yearAgg{min: math.Inf(1), max: math.Inf(-1)}
		b.years[s.Year] = agg
	}

	agg.rows++
	if !s.Defined {
		agg.undefined++
		return
	}
	agg.sum += s.Disruption
	agg.min = math.Min(agg.min, s.Disruption)
	agg.max = math.Max(agg.max, s.Disruption)
}

func (b *summaryBuilder) build(runID uuid.UUID) *Summary {
	sum := &Summary{RunID: runID}
	for year, agg := range b.years {
		ys := YearSummary{Year: year, Rows: agg.rows, Undefined: agg.undefined}
		if defined := agg.rows - agg.undefined; defined > 0 {
			ys.Mean = agg.sum / float64(defined)
			ys.Min, ys.Max = agg.min, agg.max
		} else {
			ys.Mean, ys.Min, ys.Max = math.NaN(), math.NaN(), math.NaN()
		}

		sum.Rows += agg.rows
		sum.Undefined += agg.undefined
		sum.Years = append(sum.Years, ys)
	}

	sort.Slice(sum.Years, func(i, j int) bool { return sum.Years[i].Year < sum.Years[j].Year })
	return sum
}
