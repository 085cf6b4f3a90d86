package cdb

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/ejacobg/edgraph/graph"
)

var upsertScoreQuery = `
INSERT INTO disruption_scores (vertex, year, run_id, vertex_time, disruption, radicalness, indegree)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (vertex, year) DO UPDATE SET
	run_id = EXCLUDED.run_id,
	vertex_time = EXCLUDED.vertex_time,
	disruption = EXCLUDED.disruption,
	radicalness = EXCLUDED.radicalness,
	indegree = EXCLUDED.indegree
`

var findScoreQuery = `
SELECT run_id, vertex_time, disruption, radicalness, indegree
FROM disruption_scores
WHERE vertex=$1 AND year=$2
`

var mostDisruptiveQuery = `
SELECT vertex, run_id, vertex_time, disruption, radicalness, indegree
FROM disruption_scores
WHERE year=$1 AND disruption IS NOT NULL
ORDER BY disruption DESC, vertex ASC
LIMIT $2
`

// ScoreStore persists disruption panel rows. Undefined scores are stored as
// NULL.
type ScoreStore struct {
	db *sql.DB
}

// NewScoreStore returns a ScoreStore instance that connects to the database
// specified by dsn.
func NewScoreStore(dsn string) (*ScoreStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	return &ScoreStore{db: db}, nil
}

// Close terminates the connection to the backing database.
func (s *ScoreStore) Close() error {
	return s.db.Close()
}

// WriteScore inserts a score row, replacing any earlier row for the same
// vertex and year.
func (s *ScoreStore) WriteScore(score *graph.Score) error {
	var disruption, radicalness sql.NullFloat64
	if score.Defined {
		disruption = sql.NullFloat64{Float64: score.Disruption, Valid: true}
		radicalness = sql.NullFloat64{Float64: score.Radicalness, Valid: true}
	}

	vertex, err := toInt8("vertex id", score.Vertex)
	if err != nil {
		return fmt.Errorf("write score: %w", err)
	}
	year, err := toInt8("year", score.Year)
	if err != nil {
		return fmt.Errorf("write score: %w", err)
	}
	vertexTime, err := toInt8("vertex time", score.VertexTime)
	if err != nil {
		return fmt.Errorf("write score: %w", err)
	}

	_, err = s.db.Exec(upsertScoreQuery,
		vertex,
		year,
		score.RunID,
		vertexTime,
		disruption,
		radicalness,
		score.Indegree,
	)
	if err != nil {
		return fmt.Errorf("write score: %w", err)
	}
	return nil
}

// FindScore looks up the stored row for a vertex and year.
func (s *ScoreStore) FindScore(vertex, year uint64) (*graph.Score, error) {
	if vertex > math.MaxInt64 || year > math.MaxInt64 {
		return nil, fmt.Errorf("find score: vertex %d year %d: %w", vertex, year, graph.ErrNotFound)
	}
	row := s.db.QueryRow(findScoreQuery, int64(vertex), int64(year))

	score := &graph.Score{Vertex: vertex, Year: year}
	var disruption, radicalness sql.NullFloat64
	if err := row.Scan(&score.RunID, &score.VertexTime, &disruption, &radicalness, &score.Indegree); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find score: vertex %d year %d: %w", vertex, year, graph.ErrNotFound)
		}
		return nil, fmt.Errorf("find score: %w", err)
	}

	score.Defined = disruption.Valid
	score.Disruption = disruption.Float64
	score.Radicalness = radicalness.Float64
	return score, nil
}

// MostDisruptive returns up to n rows of the given year with a defined
// score, ordered by descending disruption.
func (s *ScoreStore) MostDisruptive(year uint64, n int) ([]*graph.Score, error) {
	if year > math.MaxInt64 {
		return nil, nil
	}
	rows, err := s.db.Query(mostDisruptiveQuery, int64(year), n)
	if err != nil {
		return nil, fmt.Errorf("most disruptive: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scores []*graph.Score
	for rows.Next() {
		score := &graph.Score{Year: year, Defined: true}
		if err = rows.Scan(&score.Vertex, &score.RunID, &score.VertexTime, &score.Disruption, &score.Radicalness, &score.Indegree); err != nil {
			return nil, fmt.Errorf("most disruptive: %w", err)
		}
		scores = append(scores, score)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("most disruptive: %w", err)
	}
	return scores, nil
}
