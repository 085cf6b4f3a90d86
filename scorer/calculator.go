package scorer

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ejacobg/edgraph/graph"
	"github.com/ejacobg/edgraph/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type scoreCalculator struct {
	g           Graph
	skipUnknown bool
	skipped     *int64
	logger      *logrus.Entry
}

func newScoreCalculator(g Graph, skipUnknown bool, skipped *int64, logger *logrus.Entry) *scoreCalculator {
	return &scoreCalculator{
		g:           g,
		skipUnknown: skipUnknown,
		skipped:     skipped,
		logger:      logger,
	}
}

func (sc *scoreCalculator) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*scorePayload)

	timer := prometheus.NewTimer(scoreDuration)
	err := fillMeasures(sc.g, &payload.Score)
	timer.ObserveDuration()

	if err != nil {
		if sc.skipUnknown && errors.Is(err, graph.ErrUnknownVertex) {
			sc.logger.WithFields(logrus.Fields{
				"vertex": payload.Vertex,
				"year":   payload.Year,
				"err":    err,
			}).Warn("skipping panel row")
			atomic.AddInt64(sc.skipped, 1)
			rowsTotal.WithLabelValues("skipped").Inc()
			return nil, nil
		}
		return nil, err
	}

	return payload, nil
}
