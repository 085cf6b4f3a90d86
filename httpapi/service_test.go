package httpapi

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ejacobg/edgraph/citation"
	"github.com/ejacobg/edgraph/graph"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ServiceTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type ServiceTestSuite struct {
	svc *Service
}

func (s *ServiceTestSuite) SetUpTest(c *gc.C) {
	// A:2000, B:2001, C:2002, D:2003; B and C cite A, D cites B.
	g := citation.New(
		[]graph.Vertex{{ID: 1, Time: 2000}, {ID: 2, Time: 2001}, {ID: 3, Time: 2002}, {ID: 4, Time: 2003}},
		[]graph.Edge{{Src: 2, Dst: 1}, {Src: 3, Dst: 1}, {Src: 4, Dst: 2}},
	)

	var err error
	s.svc, err = NewService(Config{
		Graph:       g,
		ListenAddr:  ":0",
		DefaultYear: 2003,
	})
	c.Assert(err, gc.IsNil)
}

func (s *ServiceTestSuite) get(c *gc.C, path string, to interface{}) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.svc.ServeHTTP(rec, req)
	c.Assert(rec.Header().Get("Content-Type"), gc.Equals, "application/json")
	if to != nil {
		c.Assert(json.NewDecoder(rec.Body).Decode(to), gc.IsNil)
	}
	return rec.Code
}

func (s *ServiceTestSuite) TestVertex(c *gc.C) {
	var res vertexResponse
	code := s.get(c, "/api/v1/vertices/1?until=2001", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
	c.Assert(res, gc.DeepEquals, vertexResponse{ID: 1, Time: 2000, Outdegree: 0, Indegree: 1, Year: 2001})
}

func (s *ServiceTestSuite) TestNeighbors(c *gc.C) {
	var res neighborsResponse
	code := s.get(c, "/api/v1/vertices/2/cited", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
	c.Assert(res.Neighbors, gc.DeepEquals, []uint64{1})

	code = s.get(c, "/api/v1/vertices/1/citing?until=2001", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
	c.Assert(res.Neighbors, gc.DeepEquals, []uint64{2})

	code = s.get(c, "/api/v1/vertices/4/citing", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
	c.Assert(res.Neighbors, gc.DeepEquals, []uint64{})
}

func (s *ServiceTestSuite) TestDisruption(c *gc.C) {
	var res scoreResponse
	code := s.get(c, "/api/v1/vertices/2/disruption", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
	c.Assert(res.Defined, gc.Equals, true)
	c.Assert(*res.Disruption, gc.Equals, 0.5)
	c.Assert(*res.Radicalness, gc.Equals, 0.5)
	c.Assert(res.Indegree, gc.Equals, 1)
}

func (s *ServiceTestSuite) TestUndefinedDisruption(c *gc.C) {
	rec := httptest.NewRecorder()
	s.svc.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vertices/4/disruption", nil))
	c.Assert(rec.Code, gc.Equals, http.StatusOK)
	c.Assert(strings.Contains(rec.Body.String(), `"defined":false`), gc.Equals, true)
	c.Assert(strings.Contains(rec.Body.String(), "disruption"), gc.Equals, false)
}

func (s *ServiceTestSuite) TestTimeline(c *gc.C) {
	var res timelineResponse
	code := s.get(c, "/api/v1/vertices/2/timeline", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
	c.Assert(res.Rows, gc.HasLen, 3)
	c.Assert(res.Rows[0].Year, gc.Equals, uint64(2001))
	c.Assert(res.Rows[0].Defined, gc.Equals, false)
	c.Assert(*res.Rows[1].Disruption, gc.Equals, 0.0)
	c.Assert(*res.Rows[2].Disruption, gc.Equals, 0.5)
	c.Assert(res.Trend, gc.NotNil)
	c.Assert(res.Trend.Points, gc.Equals, 2)
	c.Assert(math.Abs(res.Trend.Slope-0.5) < 1e-9, gc.Equals, true)

	code = s.get(c, "/api/v1/vertices/2/timeline?from=2003&to=2001", nil)
	c.Assert(code, gc.Equals, http.StatusBadRequest)
}

func (s *ServiceTestSuite) TestTimelineExplicitStartYear(c *gc.C) {
	// An explicit from=0 is honoured rather than replaced by the issue year.
	var res timelineResponse
	code := s.get(c, "/api/v1/vertices/1/timeline?from=0&to=50", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
	c.Assert(res.Rows, gc.HasLen, 51)
	c.Assert(res.Rows[0].Year, gc.Equals, uint64(0))
	c.Assert(res.Rows[0].Defined, gc.Equals, false)
	c.Assert(res.Trend, gc.IsNil)
}

func (s *ServiceTestSuite) TestTimelineSpanLimit(c *gc.C) {
	var res errorResponse
	code := s.get(c, "/api/v1/vertices/1/timeline?to=18446744073709551615", &res)
	c.Assert(code, gc.Equals, http.StatusBadRequest)
	c.Assert(res.Error, gc.Matches, "timeline spans more than 200 years")

	code = s.get(c, "/api/v1/vertices/1/timeline?from=1800&to=1999", &res)
	c.Assert(code, gc.Equals, http.StatusOK)
}

func (s *ServiceTestSuite) TestErrors(c *gc.C) {
	var res errorResponse
	code := s.get(c, "/api/v1/vertices/99/disruption", &res)
	c.Assert(code, gc.Equals, http.StatusNotFound)
	c.Assert(res.Error, gc.Matches, ".*unknown vertex.*")

	code = s.get(c, "/api/v1/vertices/1/citing?until=soon", &res)
	c.Assert(code, gc.Equals, http.StatusBadRequest)

	code = s.get(c, "/api/v1/nope", &res)
	c.Assert(code, gc.Equals, http.StatusNotFound)
}

func (s *ServiceTestSuite) TestConfigValidation(c *gc.C) {
	_, err := NewService(Config{})
	c.Assert(err, gc.ErrorMatches, "(?s).*graph has not been provided.*listen address has not been specified.*")
}
