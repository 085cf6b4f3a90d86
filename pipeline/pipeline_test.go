package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/ejacobg/edgraph/pipeline"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(PipelineTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type PipelineTestSuite struct{}

func (s *PipelineTestSuite) TestDataFlow(c *gc.C) {
	stages := make([]pipeline.StageRunner, 5)
	for i := 0; i < len(stages); i++ {
		stages[i] = pipeline.FIFO(makeAppenderProcessor(fmt.Sprint(i)))
	}

	src := &sourceStub{data: stringPayloads(3)}
	sink := new(sinkStub)

	p := pipeline.New(stages...)
	err := p.Process(context.TODO(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.DeepEquals, []string{"0_01234", "1_01234", "2_01234"})
	assertAllProcessed(c, src.data)
}

func (s *PipelineTestSuite) TestFixedWorkerPool(c *gc.C) {
	src := &sourceStub{data: stringPayloads(50)}
	sink := new(sinkStub)

	p := pipeline.New(pipeline.FixedWorkerPool(makeAppenderProcessor("x"), 4))
	err := p.Process(context.TODO(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.HasLen, 50)

	sort.Strings(sink.data)
	c.Assert(sink.data[0], gc.Equals, "0_x")
	assertAllProcessed(c, src.data)
}

func (s *PipelineTestSuite) TestDroppedPayloads(c *gc.C) {
	src := &sourceStub{data: stringPayloads(4)}
	sink := new(sinkStub)

	dropOdd := pipeline.ProcessorFunc(func(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
		if p.(*stringPayload).idx%2 == 1 {
			return nil, nil
		}
		return p, nil
	})
	err := pipeline.New(pipeline.FIFO(dropOdd)).Process(context.TODO(), src, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(sink.data, gc.DeepEquals, []string{"0", "2"})
	assertAllProcessed(c, src.data)
}

func (s *PipelineTestSuite) TestProcessorErrorHandling(c *gc.C) {
	expErr := errors.New("some error")
	stages := []pipeline.StageRunner{
		pipeline.FIFO(pipeline.ProcessorFunc(func(context.Context, pipeline.Payload) (pipeline.Payload, error) {
			return nil, expErr
		})),
	}

	src := &sourceStub{data: stringPayloads(3)}
	err := pipeline.New(stages...).Process(context.TODO(), src, new(sinkStub))
	c.Assert(errors.Is(err, expErr), gc.Equals, true)
}

func (s *PipelineTestSuite) TestSourceErrorHandling(c *gc.C) {
	expErr := errors.New("some error")
	src := &sourceStub{data: stringPayloads(3), err: expErr}
	err := pipeline.New(pipeline.FIFO(makeAppenderProcessor("0"))).Process(context.TODO(), src, new(sinkStub))
	c.Assert(errors.Is(err, expErr), gc.Equals, true)
}

func (s *PipelineTestSuite) TestSinkErrorHandling(c *gc.C) {
	expErr := errors.New("some error")
	src := &sourceStub{data: stringPayloads(3)}
	sink := &sinkStub{err: expErr}
	err := pipeline.New(pipeline.FIFO(makeAppenderProcessor("0"))).Process(context.TODO(), src, sink)
	c.Assert(errors.Is(err, expErr), gc.Equals, true)
}

type sourceStub struct {
	index int
	data  []pipeline.Payload
	err   error
}

func (s *sourceStub) Next(context.Context) bool {
	if s.err != nil || s.index == len(s.data) {
		return false
	}
	s.index++
	return true
}

func (s *sourceStub) Error() error { return s.err }

func (s *sourceStub) Payload() pipeline.Payload { return s.data[s.index-1] }

type sinkStub struct {
	mu   sync.Mutex
	data []string
	err  error
}

func (s *sinkStub) Consume(_ context.Context, p pipeline.Payload) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.data = append(s.data, p.(*stringPayload).val)
	s.mu.Unlock()
	return nil
}

type stringPayload struct {
	mu        sync.Mutex
	idx       int
	val       string
	processed int
}

func (p *stringPayload) Clone() pipeline.Payload { return &stringPayload{idx: p.idx, val: p.val} }

func (p *stringPayload) MarkAsProcessed() {
	p.mu.Lock()
	p.processed++
	p.mu.Unlock()
}

func stringPayloads(numValues int) []pipeline.Payload {
	out := make([]pipeline.Payload, numValues)
	for i := 0; i < len(out); i++ {
		out[i] = &stringPayload{idx: i, val: fmt.Sprint(i)}
	}
	return out
}

func makeAppenderProcessor(suffix string) pipeline.Processor {
	return pipeline.ProcessorFunc(func(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
		sp := p.(*stringPayload)
		if sp.val == fmt.Sprint(sp.idx) {
			sp.val += "_"
		}
		sp.val += suffix
		return p, nil
	})
}

func assertAllProcessed(c *gc.C, payloads []pipeline.Payload) {
	for i, p := range payloads {
		payload := p.(*stringPayload)
		c.Assert(payload.processed, gc.Equals, 1, gc.Commentf("payload %d", i))
	}
}
