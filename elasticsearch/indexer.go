package elasticsearch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ejacobg/edgraph/graph"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

// ScoreIndexer stores panel rows in an Elasticsearch index. Each (vertex,
// year) pair maps to a single document, so re-running a year overwrites the
// earlier rows.
type ScoreIndexer struct {
	es         *elasticsearch.Client
	refreshOpt func(*esapi.IndexRequest)
}

// NewScoreIndexer creates a score sink backed by the Elasticsearch cluster
// reachable at the given nodes. If syncUpdates is set, every write waits
// for the index to be refreshed.
func NewScoreIndexer(nodes []string, syncUpdates bool) (*ScoreIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: nodes,
	}
	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if err = ensureIndex(es); err != nil {
		return nil, err
	}

	refreshOpt := es.Index.WithRefresh("false")
	if syncUpdates {
		refreshOpt = es.Index.WithRefresh("true")
	}

	return &ScoreIndexer{
		es:         es,
		refreshOpt: refreshOpt,
	}, nil
}

// WriteScore indexes a panel row.
func (i *ScoreIndexer) WriteScore(s *graph.Score) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(makeDoc(s)); err != nil {
		return fmt.Errorf("write score: %w", err)
	}

	res, err := i.es.Index(indexName, &buf, i.es.Index.WithDocumentID(docID(s.Vertex, s.Year)), i.refreshOpt)
	if err != nil {
		return fmt.Errorf("write score: %w", err)
	}

	var indexRes indexResult
	if err = unmarshalResponse(res, &indexRes); err != nil {
		return fmt.Errorf("write score: %w", err)
	}
	return nil
}

// FindScore looks up the row of a vertex for a given year.
func (i *ScoreIndexer) FindScore(vertex, year uint64) (*graph.Score, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"Vertex": vertex}},
					map[string]interface{}{"term": map[string]interface{}{"Year": year}},
				},
			},
		},
		"size": 1,
	}

	searchRes, err := runSearch(i.es, query)
	if err != nil {
		return nil, fmt.Errorf("find score: %w", err)
	}
	if len(searchRes.Hits.HitList) != 1 {
		return nil, fmt.Errorf("find score: vertex %d year %d: %w", vertex, year, graph.ErrNotFound)
	}
	return mapDoc(&searchRes.Hits.HitList[0].DocSource)
}

// MostDisruptive returns up to n rows of the given year with a defined
// score, ordered by descending disruption.
func (i *ScoreIndexer) MostDisruptive(year uint64, n int) ([]*graph.Score, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"Year": year}},
					map[string]interface{}{"term": map[string]interface{}{"Defined": true}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"Disruption": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"Vertex": map[string]interface{}{"order": "asc"}},
		},
		"size": n,
	}

	searchRes, err := runSearch(i.es, query)
	if err != nil {
		return nil, fmt.Errorf("most disruptive: %w", err)
	}

	scores := make([]*graph.Score, 0, len(searchRes.Hits.HitList))
	for _, hit := range searchRes.Hits.HitList {
		s, err := mapDoc(&hit.DocSource)
		if err != nil {
			return nil, fmt.Errorf("most disruptive: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, nil
}

func docID(vertex, year uint64) string {
	return fmt.Sprintf("%d-%d", vertex, year)
}

func makeDoc(s *graph.Score) document {
	d := document{
		RunID:      s.RunID.String(),
		Vertex:     s.Vertex,
		VertexTime: s.VertexTime,
		Year:       s.Year,
		Defined:    s.Defined,
		Indegree:   s.Indegree,
	}
	if s.Defined {
		disruption, radicalness := s.Disruption, s.Radicalness
		d.Disruption = &disruption
		d.Radicalness = &radicalness
	}
	return d
}

// mapDoc converts a document into a graph.Score.
func mapDoc(d *document) (*graph.Score, error) {
	runID, err := uuid.Parse(d.RunID)
	if err != nil {
		return nil, err
	}

	s := &graph.Score{
		RunID:      runID,
		Vertex:     d.Vertex,
		VertexTime: d.VertexTime,
		Year:       d.Year,
		Defined:    d.Defined,
		Indegree:   d.Indegree,
	}
	if d.Disruption != nil {
		s.Disruption = *d.Disruption
	}
	if d.Radicalness != nil {
		s.Radicalness = *d.Radicalness
	}
	return s, nil
}
