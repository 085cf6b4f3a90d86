package scorer_test

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/ejacobg/edgraph/citation"
	"github.com/ejacobg/edgraph/graph"
	"github.com/ejacobg/edgraph/partition"
	"github.com/ejacobg/edgraph/scorer"
	"github.com/ejacobg/edgraph/scorer/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ScorerTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type ScorerTestSuite struct{}

// scenarioGraph returns 1:2000, 2:2001, 3:2002, 4:2003 where 2 and 3 cite 1
// and 4 cites 2.
func scenarioGraph() *citation.Graph {
	return citation.New(
		[]graph.Vertex{{ID: 1, Time: 2000}, {ID: 2, Time: 2001}, {ID: 3, Time: 2002}, {ID: 4, Time: 2003}},
		[]graph.Edge{{Src: 2, Dst: 1}, {Src: 3, Dst: 1}, {Src: 4, Dst: 2}},
	)
}

type recordingWriter struct {
	mu   sync.Mutex
	rows []graph.Score
}

func (w *recordingWriter) WriteScore(s *graph.Score) error {
	w.mu.Lock()
	w.rows = append(w.rows, *s)
	w.mu.Unlock()
	return nil
}

func (w *recordingWriter) sorted() []graph.Score {
	sort.Slice(w.rows, func(i, j int) bool {
		if w.rows[i].Year != w.rows[j].Year {
			return w.rows[i].Year < w.rows[j].Year
		}
		return w.rows[i].Vertex < w.rows[j].Vertex
	})
	return w.rows
}

func (s *ScorerTestSuite) TestRunScenario(c *gc.C) {
	out := new(recordingWriter)
	sc, err := scorer.New(scorer.Config{
		Graph:    scenarioGraph(),
		Output:   out,
		FromYear: 2000,
		ToYear:   2003,
		Workers:  3,
	})
	c.Assert(err, gc.IsNil)

	summary, err := sc.Run(context.TODO())
	c.Assert(err, gc.IsNil)

	rows := out.sorted()
	c.Assert(rows, gc.HasLen, 10)
	runID := rows[0].RunID
	c.Assert(runID, gc.Not(gc.Equals), uuid.Nil)
	c.Assert(summary.RunID, gc.Equals, runID)

	type row struct {
		vertex, year uint64
		defined      bool
		disruption   float64
		indegree     int
	}
	exp := []row{
		{1, 2000, false, 0, 0},
		{1, 2001, true, 1, 1},
		{2, 2001, false, 0, 0},
		{1, 2002, true, 1, 2},
		{2, 2002, true, 0, 0},
		{3, 2002, false, 0, 0},
		{1, 2003, true, 1, 2},
		{2, 2003, true, 0.5, 1},
		{3, 2003, false, 0, 0},
		{4, 2003, false, 0, 0},
	}
	for i, e := range exp {
		got := rows[i]
		comment := gc.Commentf("row %d: %+v", i, got)
		c.Assert(got.RunID, gc.Equals, runID, comment)
		c.Assert(got.Vertex, gc.Equals, e.vertex, comment)
		c.Assert(got.Year, gc.Equals, e.year, comment)
		c.Assert(got.Defined, gc.Equals, e.defined, comment)
		c.Assert(got.Disruption, gc.Equals, e.disruption, comment)
		c.Assert(got.Indegree, gc.Equals, e.indegree, comment)
		c.Assert(got.Radicalness, gc.Equals, e.disruption*float64(e.indegree), comment)
	}

	c.Assert(summary.Rows, gc.Equals, 10)
	c.Assert(summary.Undefined, gc.Equals, 5)
	c.Assert(summary.Skipped, gc.Equals, 0)
	c.Assert(summary.Years, gc.HasLen, 4)
	c.Assert(math.IsNaN(summary.Years[0].Mean), gc.Equals, true)
	c.Assert(summary.Years[2], gc.DeepEquals, scorer.YearSummary{Year: 2002, Rows: 3, Undefined: 1, Mean: 0.5, Min: 0, Max: 1})
	c.Assert(summary.Years[3].Mean, gc.Equals, 0.75)
}

func (s *ScorerTestSuite) TestVerticesBeforeFromYearAreSkipped(c *gc.C) {
	out := new(recordingWriter)
	sc, err := scorer.New(scorer.Config{
		Graph:    scenarioGraph(),
		Output:   out,
		FromYear: 2002,
		ToYear:   2002,
	})
	c.Assert(err, gc.IsNil)

	_, err = sc.Run(context.TODO())
	c.Assert(err, gc.IsNil)
	rows := out.sorted()
	c.Assert(rows, gc.HasLen, 1)
	c.Assert(rows[0].Vertex, gc.Equals, uint64(3))
}

func (s *ScorerTestSuite) TestPartitionedRuns(c *gc.C) {
	high := uint64(1)<<63 + 1
	g := citation.New([]graph.Vertex{{ID: 1, Time: 2000}, {ID: high, Time: 2000}}, nil)

	for p, expVertex := range []uint64{1, high} {
		out := new(recordingWriter)
		sc, err := scorer.New(scorer.Config{
			Graph:             g,
			Output:            out,
			FromYear:          2000,
			ToYear:            2000,
			PartitionDetector: partition.Fixed{Partition: p, NumPartitions: 2},
		})
		c.Assert(err, gc.IsNil)

		_, err = sc.Run(context.TODO())
		c.Assert(err, gc.IsNil)
		c.Assert(out.rows, gc.HasLen, 1)
		c.Assert(out.rows[0].Vertex, gc.Equals, expVertex)
	}
}

func (s *ScorerTestSuite) TestUnknownCiter(c *gc.C) {
	g := citation.New([]graph.Vertex{{ID: 1, Time: 2000}}, []graph.Edge{{Src: 99, Dst: 1}})

	sc, err := scorer.New(scorer.Config{Graph: g, Output: new(recordingWriter), FromYear: 2000, ToYear: 2001})
	c.Assert(err, gc.IsNil)
	_, err = sc.Run(context.TODO())
	c.Assert(errors.Is(err, graph.ErrUnknownVertex), gc.Equals, true)

	out := new(recordingWriter)
	sc, err = scorer.New(scorer.Config{Graph: g, Output: out, FromYear: 2000, ToYear: 2001, SkipUnknownVertices: true})
	c.Assert(err, gc.IsNil)
	summary, err := sc.Run(context.TODO())
	c.Assert(err, gc.IsNil)
	c.Assert(out.rows, gc.HasLen, 0)
	c.Assert(summary.Skipped, gc.Equals, 2)
}

func (s *ScorerTestSuite) TestCancelledRun(c *gc.C) {
	out := new(recordingWriter)
	sc, err := scorer.New(scorer.Config{
		Graph:    scenarioGraph(),
		Output:   out,
		FromYear: 2000,
		ToYear:   2003,
	})
	c.Assert(err, gc.IsNil)

	ctx, cancelFn := context.WithCancel(context.Background())
	cancelFn()

	summary, err := sc.Run(ctx)
	c.Assert(err, gc.ErrorMatches, "scorer: run interrupted: context canceled")
	c.Assert(errors.Is(err, context.Canceled), gc.Equals, true)
	c.Assert(summary, gc.IsNil)
}

func (s *ScorerTestSuite) TestOutputError(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	expErr := errors.New("disk full")
	out := mocks.NewMockScoreWriter(ctrl)
	out.EXPECT().WriteScore(gomock.Any()).Return(expErr).Times(1)

	sc, err := scorer.New(scorer.Config{Graph: scenarioGraph(), Output: out, FromYear: 2000, ToYear: 2003, Workers: 1})
	c.Assert(err, gc.IsNil)
	_, err = sc.Run(context.TODO())
	c.Assert(errors.Is(err, expErr), gc.Equals, true)
}

func (s *ScorerTestSuite) TestMeasureWithMockGraph(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	g := mocks.NewMockGraph(ctrl)
	g.EXPECT().Time(uint64(7)).Return(uint64(1999), nil)
	g.EXPECT().Indegree(uint64(7), uint64(2005)).Return(4, nil)
	g.EXPECT().Disrupt(uint64(7), uint64(2005)).Return(-0.25, nil)

	score, err := scorer.Measure(g, 7, 2005)
	c.Assert(err, gc.IsNil)
	c.Assert(*score, gc.DeepEquals, graph.Score{
		Vertex: 7, VertexTime: 1999, Year: 2005,
		Disruption: -0.25, Defined: true, Radicalness: -1, Indegree: 4,
	})

	g.EXPECT().Time(uint64(8)).Return(uint64(0), graph.ErrUnknownVertex)
	_, err = scorer.Measure(g, 8, 2005)
	c.Assert(errors.Is(err, graph.ErrUnknownVertex), gc.Equals, true)
}

func (s *ScorerTestSuite) TestTimelineAndTrend(c *gc.C) {
	rows, err := scorer.Timeline(scenarioGraph(), 2, 2001, 2003)
	c.Assert(err, gc.IsNil)
	c.Assert(rows, gc.HasLen, 3)
	c.Assert(rows[0].Defined, gc.Equals, false)

	trend, ok := scorer.FitTrend(rows)
	c.Assert(ok, gc.Equals, true)
	c.Assert(trend.Points, gc.Equals, 2)
	// Two points: 0 in 2002 and 0.5 in 2003.
	c.Assert(math.Abs(trend.Slope-0.5) < 1e-9, gc.Equals, true)

	_, ok = scorer.FitTrend(rows[:2])
	c.Assert(ok, gc.Equals, false)

	_, err = scorer.Timeline(scenarioGraph(), 2, 2003, 2001)
	c.Assert(err, gc.NotNil)
}

func (s *ScorerTestSuite) TestConfigValidation(c *gc.C) {
	_, err := scorer.New(scorer.Config{FromYear: 2010, ToYear: 2000, Workers: -1})
	c.Assert(err, gc.ErrorMatches, "(?s).*graph has not been provided.*score output has not been provided.*from year 2010 is after to year 2000.*invalid value for workers.*")
}
