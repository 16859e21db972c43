package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/outcome"
	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/internal/sink"
	"smarterstarts-be/pkg/workerpool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	name  string
	delay time.Duration
	err   error
	id    string
	block bool

	mu       sync.Mutex
	received []*entity.Session
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(ctx context.Context, s *entity.Session) sink.Result {
	f.mu.Lock()
	f.received = append(f.received, s)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return sink.Result{Sink: f.name, Err: ctx.Err()}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return sink.Result{Sink: f.name, Err: f.err, AssignedId: f.id}
}

func (f *fakeSink) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received)
}

func newSession() *entity.Session {
	s := entity.NewSession(entity.UserProfile{Name: "Ada"}, "need a CRM", time.Now())
	s.ApplyRecommendation("1. Acme", []string{"Acme"})
	return s
}

func TestFanOutIsolatesSinkFailures(t *testing.T) {
	doc := &fakeSink{name: sink.NameDocument, id: "doc-1"}
	sheet := &fakeSink{name: sink.NameSheet, err: errors.New("quota exceeded")}
	mail := &fakeSink{name: sink.NameEmail, delay: 20 * time.Millisecond}
	rec := outcome.NewMemoryRecorder(time.Minute)

	d := NewDispatcher(nil, []sink.Sink{doc, sheet, mail}, rec, logger.NewNopLogger(), DispatcherConfig{})
	o := d.FanOut(context.Background(), newSession())

	require.Len(t, o.Results, 3)
	assert.Equal(t, outcome.StatusOK, o.Results[0].Status)
	assert.Equal(t, "doc-1", o.Results[0].AssignedId)
	assert.Equal(t, outcome.StatusFailed, o.Results[1].Status)
	assert.Equal(t, "quota exceeded", o.Results[1].Error)
	assert.Equal(t, outcome.StatusOK, o.Results[2].Status)
	assert.Equal(t, 1, mail.calls())

	recent, err := rec.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, o.RunId, recent[0].RunId)
}

func TestFanOutRunsSinksConcurrently(t *testing.T) {
	sinks := []sink.Sink{
		&fakeSink{name: "a", delay: 100 * time.Millisecond},
		&fakeSink{name: "b", delay: 100 * time.Millisecond},
		&fakeSink{name: "c", delay: 100 * time.Millisecond},
	}
	d := NewDispatcher(nil, sinks, nil, logger.NewNopLogger(), DispatcherConfig{})

	start := time.Now()
	d.FanOut(context.Background(), newSession())
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestFanOutSinkTimeout(t *testing.T) {
	hung := &fakeSink{name: sink.NameSheet, block: true}
	ok := &fakeSink{name: sink.NameDocument}
	d := NewDispatcher(nil, []sink.Sink{ok, hung}, nil, logger.NewNopLogger(), DispatcherConfig{SinkTimeout: 30 * time.Millisecond})

	o := d.FanOut(context.Background(), newSession())
	assert.Equal(t, outcome.StatusOK, o.Results[0].Status)
	assert.Equal(t, outcome.StatusFailed, o.Results[1].Status)
	assert.Contains(t, o.Results[1].Error, "deadline exceeded")
}

func TestDispatchDetachesFromRequestContext(t *testing.T) {
	pool := workerpool.New(workerpool.Config{Workers: 2, QueueSize: 4})
	doc := &fakeSink{name: sink.NameDocument, delay: 30 * time.Millisecond}
	rec := outcome.NewMemoryRecorder(time.Minute)
	d := NewDispatcher(pool, []sink.Sink{doc}, rec, logger.NewNopLogger(), DispatcherConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	session := newSession()
	require.NoError(t, d.Dispatch(ctx, session))
	cancel()
	session.Problem = "mutated after dispatch"

	require.NoError(t, pool.Shutdown(context.Background()))
	require.Equal(t, 1, doc.calls())
	assert.Equal(t, "need a CRM", doc.received[0].Problem)

	recent, _ := rec.Recent(context.Background(), 1)
	require.Len(t, recent, 1)
	assert.False(t, recent[0].Degraded())
}

type refusingPool struct{ err error }

func (p refusingPool) Submit(context.Context, workerpool.Job) error { return p.err }

func TestDispatchRecordsRefusedRun(t *testing.T) {
	rec := outcome.NewMemoryRecorder(time.Minute)
	doc := &fakeSink{name: sink.NameDocument}
	d := NewDispatcher(refusingPool{err: workerpool.ErrQueueFull}, []sink.Sink{doc, &fakeSink{name: sink.NameSheet}}, rec, logger.NewNopLogger(), DispatcherConfig{})

	err := d.Dispatch(context.Background(), newSession())
	assert.ErrorIs(t, err, workerpool.ErrQueueFull)
	assert.Zero(t, doc.calls())

	recent, _ := rec.Recent(context.Background(), 1)
	require.Len(t, recent, 1)
	assert.Len(t, recent[0].Failures(), 2)
	assert.Contains(t, recent[0].Results[0].Error, "not dispatched")
}
