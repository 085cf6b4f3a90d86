// Package elasticsearch provides a score sink that stores disruption panel
// rows in an Elasticsearch index.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// The name of the elasticsearch index to use.
const indexName = "disruption"

var mappings = `
{
  "mappings" : {
    "properties": {
      "RunID": {"type": "keyword"},
      "Vertex": {"type": "unsigned_long"},
      "VertexTime": {"type": "long"},
      "Year": {"type": "long"},
      "Defined": {"type": "boolean"},
      "Disruption": {"type": "double"},
      "Radicalness": {"type": "double"},
      "Indegree": {"type": "long"}
    }
  }
}`

type searchResult struct {
	Hits searchResultHits `json:"hits"`
}

type searchResultHits struct {
	HitList []hitWrapper `json:"hits"`
}

type hitWrapper struct {
	DocSource document `json:"_source"`
}

// document is the stored form of a graph.Score. Undefined scores omit the
// Disruption and Radicalness fields.
type document struct {
	RunID       string   `json:"RunID"`
	Vertex      uint64   `json:"Vertex"`
	VertexTime  uint64   `json:"VertexTime"`
	Year        uint64   `json:"Year"`
	Defined     bool     `json:"Defined"`
	Disruption  *float64 `json:"Disruption,omitempty"`
	Radicalness *float64 `json:"Radicalness,omitempty"`
	Indegree    int      `json:"Indegree"`
}

type indexResult struct {
	Result string `json:"result"`
}

// Not all errors can be unmarshaled into this struct, in which case the
// decode error is returned instead.
type errorResult struct {
	Error esError `json:"error"`
}

type esError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (e esError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Reason)
}

// ensureIndex creates a new index with the predefined mappings on the given client.
func ensureIndex(es *elasticsearch.Client) error {
	mappingsReader := strings.NewReader(mappings)
	res, err := es.Indices.Create(indexName, es.Indices.Create.WithBody(mappingsReader))
	if err != nil {
		return fmt.Errorf("cannot create ES index: %w", err)
	} else if res.IsError() {
		err := unmarshalError(res)
		if esErr, valid := err.(esError); valid && esErr.Type == "resource_already_exists_exception" {
			return nil
		}
		return fmt.Errorf("cannot create ES index: %w", err)
	}

	return nil
}

// runSearch submits the given search query to the Elasticsearch cluster.
func runSearch(es *elasticsearch.Client, searchQuery map[string]interface{}) (*searchResult, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery); err != nil {
		return nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(indexName),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}

	var searchRes searchResult
	if err = unmarshalResponse(res, &searchRes); err != nil {
		return nil, err
	}

	return &searchRes, nil
}

func unmarshalError(res *esapi.Response) error {
	return unmarshalResponse(res, nil)
}

func unmarshalResponse(res *esapi.Response, to interface{}) error {
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var errRes errorResult
		if err := json.NewDecoder(res.Body).Decode(&errRes); err != nil {
			return err
		}

		return errRes.Error
	}

	return json.NewDecoder(res.Body).Decode(to)
}
