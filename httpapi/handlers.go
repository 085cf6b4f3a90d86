package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ejacobg/edgraph/graph"
	"github.com/ejacobg/edgraph/scorer"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// maxTimelineYears bounds the number of rows a timeline request computes.
const maxTimelineYears = 200

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "edgraph",
	Subsystem: "api",
	Name:      "requests_total",
	Help:      "The number of query API requests by route and status code.",
}, []string{"route", "code"})

type vertexResponse struct {
	ID        uint64 `json:"id"`
	Time      uint64 `json:"time"`
	Outdegree int    `json:"outdegree"`
	Indegree  int    `json:"indegree"`
	Year      uint64 `json:"year"`
}

type neighborsResponse struct {
	ID        uint64   `json:"id"`
	Year      uint64   `json:"year,omitempty"`
	Neighbors []uint64 `json:"neighbors"`
}

// scoreResponse omits the score fields of undefined rows so that clients
// never mistake them for zero.
type scoreResponse struct {
	Vertex      uint64   `json:"vertex"`
	VertexTime  uint64   `json:"vertex_time"`
	Year        uint64   `json:"year"`
	Defined     bool     `json:"defined"`
	Disruption  *float64 `json:"disruption,omitempty"`
	Radicalness *float64 `json:"radicalness,omitempty"`
	Indegree    int      `json:"indegree"`
}

type timelineResponse struct {
	Vertex uint64          `json:"vertex"`
	Rows   []scoreResponse `json:"rows"`
	Trend  *scorer.Trend   `json:"trend,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (svc *Service) renderVertex(w http.ResponseWriter, r *http.Request) {
	v, year, ok := svc.parseVertexAndYear(w, r)
	if !ok {
		return
	}

	t, err := svc.cfg.Graph.Time(v)
	if err != nil {
		svc.renderError(w, err)
		return
	}
	indeg, err := svc.cfg.Graph.Indegree(v, year)
	if err != nil {
		svc.renderError(w, err)
		return
	}
	cited, err := svc.cfg.Graph.Cited(v)
	if err != nil {
		svc.renderError(w, err)
		return
	}

	svc.renderJSON(w, http.StatusOK, vertexResponse{ID: v, Time: t, Outdegree: len(cited), Indegree: indeg, Year: year})
}

func (svc *Service) renderCited(w http.ResponseWriter, r *http.Request) {
	v, ok := svc.parseVertex(w, r)
	if !ok {
		return
	}

	cited, err := svc.cfg.Graph.Cited(v)
	if err != nil {
		svc.renderError(w, err)
		return
	}
	svc.renderJSON(w, http.StatusOK, neighborsResponse{ID: v, Neighbors: nonNil(cited)})
}

func (svc *Service) renderCiting(w http.ResponseWriter, r *http.Request) {
	v, year, ok := svc.parseVertexAndYear(w, r)
	if !ok {
		return
	}

	citing, err := svc.cfg.Graph.Citing(v, year)
	if err != nil {
		svc.renderError(w, err)
		return
	}
	svc.renderJSON(w, http.StatusOK, neighborsResponse{ID: v, Year: year, Neighbors: nonNil(citing)})
}

func (svc *Service) renderDisruption(w http.ResponseWriter, r *http.Request) {
	v, year, ok := svc.parseVertexAndYear(w, r)
	if !ok {
		return
	}

	score, err := scorer.Measure(svc.cfg.Graph, v, year)
	if err != nil {
		svc.renderError(w, err)
		return
	}
	svc.renderJSON(w, http.StatusOK, makeScoreResponse(score))
}

func (svc *Service) renderTimeline(w http.ResponseWriter, r *http.Request) {
	v, ok := svc.parseVertex(w, r)
	if !ok {
		return
	}
	to, ok := svc.parseUintParam(w, r, "to", svc.cfg.DefaultYear)
	if !ok {
		return
	}

	// Without an explicit start the timeline begins at the issue year.
	var from uint64
	if r.URL.Query().Has("from") {
		if from, ok = svc.parseUintParam(w, r, "from", 0); !ok {
			return
		}
	} else {
		t, err := svc.cfg.Graph.Time(v)
		if err != nil {
			svc.renderError(w, err)
			return
		}
		from = t
	}

	if from > to {
		svc.renderJSON(w, http.StatusBadRequest, errorResponse{Error: "from year is after to year"})
		return
	}
	if to-from >= maxTimelineYears {
		svc.renderJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("timeline spans more than %d years", maxTimelineYears)})
		return
	}

	rows, err := scorer.Timeline(svc.cfg.Graph, v, from, to)
	if err != nil {
		svc.renderError(w, err)
		return
	}

	res := timelineResponse{Vertex: v, Rows: make([]scoreResponse, 0, len(rows))}
	for _, row := range rows {
		res.Rows = append(res.Rows, makeScoreResponse(row))
	}
	if trend, ok := scorer.FitTrend(rows); ok {
		res.Trend = &trend
	}
	svc.renderJSON(w, http.StatusOK, res)
}

func (svc *Service) renderNotFound(w http.ResponseWriter, _ *http.Request) {
	svc.renderJSON(w, http.StatusNotFound, errorResponse{Error: "no such route"})
}

func (svc *Service) parseVertex(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	v, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		svc.renderJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid vertex id"})
		return 0, false
	}
	return v, true
}

func (svc *Service) parseVertexAndYear(w http.ResponseWriter, r *http.Request) (uint64, uint64, bool) {
	v, ok := svc.parseVertex(w, r)
	if !ok {
		return 0, 0, false
	}
	year, ok := svc.parseUintParam(w, r, "until", svc.cfg.DefaultYear)
	return v, year, ok
}

func (svc *Service) parseUintParam(w http.ResponseWriter, r *http.Request, name string, def uint64) (uint64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		svc.renderJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid value for " + name})
		return 0, false
	}
	return val, true
}

func (svc *Service) renderError(w http.ResponseWriter, err error) {
	if errors.Is(err, graph.ErrUnknownVertex) {
		svc.renderJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	svc.cfg.Logger.WithField("err", err).Error("query failed")
	svc.renderJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (svc *Service) renderJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("unable to encode response")
	}
}

// instrument counts requests per matched route template.
func (svc *Service) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unknown"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		svc.cfg.Logger.WithFields(logrus.Fields{
			"route":  route,
			"status": rec.status,
		}).Debug("served request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func makeScoreResponse(s *graph.Score) scoreResponse {
	res := scoreResponse{
		Vertex:     s.Vertex,
		VertexTime: s.VertexTime,
		Year:       s.Year,
		Defined:    s.Defined,
		Indegree:   s.Indegree,
	}
	if s.Defined {
		disruption, radicalness := s.Disruption, s.Radicalness
		res.Disruption = &disruption
		res.Radicalness = &radicalness
	}
	return res
}

func nonNil(ids []uint64) []uint64 {
	if ids == nil {
		return []uint64{}
	}
	return ids
}
