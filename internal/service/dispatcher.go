package service

import (
	"context"
	"fmt"
	"time"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/outcome"
	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/internal/sink"
	"smarterstarts-be/pkg/workerpool"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSinkTimeout   = 20 * time.Second
	recordOutcomeTimeout = 5 * time.Second
)

var tracer = otel.Tracer("smarterstarts-be/service")

// submitter is the part of *workerpool.Pool the dispatcher needs.
type submitter interface {
	Submit(ctx context.Context, job workerpool.Job) error
}

type DispatcherConfig struct {
	SinkTimeout time.Duration
}

// Dispatcher fans a session snapshot out to every sink on a worker, detached from
// the request that produced it.
type Dispatcher struct {
	pool        submitter
	sinks       []sink.Sink
	recorder    outcome.Recorder
	logger      logger.ILogger
	sinkTimeout time.Duration
	now         func() time.Time
}

func NewDispatcher(pool submitter, sinks []sink.Sink, recorder outcome.Recorder, log logger.ILogger, cfg DispatcherConfig) *Dispatcher {
	timeout := cfg.SinkTimeout
	if timeout <= 0 {
		timeout = DefaultSinkTimeout
	}
	return &Dispatcher{
		pool:        pool,
		sinks:       sinks,
		recorder:    recorder,
		logger:      log,
		sinkTimeout: timeout,
		now:         time.Now,
	}
}

// Dispatch schedules the fan-out and returns once it is queued. ctx only bounds
// the enqueue; the fan-out itself never sees it. When the pool refuses the job
// the run is recorded with every sink failed.
func (d *Dispatcher) Dispatch(ctx context.Context, session *entity.Session) error {
	snapshot := session.Snapshot()
	link := trace.LinkFromContext(ctx)

	err := d.pool.Submit(ctx, func(poolCtx context.Context) {
		d.FanOut(poolCtx, snapshot, link)
	})
	if err == nil {
		return nil
	}

	d.logger.Warn(logger.ModuleDispatch, "Fan-out not scheduled", map[string]interface{}{
		"kind":  string(snapshot.Kind),
		"error": err.Error(),
	})
	results := make([]sink.Result, len(d.sinks))
	for i, s := range d.sinks {
		results[i] = sink.Result{Sink: s.Name(), Err: fmt.Errorf("not dispatched: %w", err)}
	}
	d.record(snapshot, d.now(), 0, results)
	return err
}

// FanOut writes snapshot to every sink concurrently. Each sink gets its own
// timeout and a failure in one never cancels the others.
func (d *Dispatcher) FanOut(ctx context.Context, snapshot *entity.Session, links ...trace.Link) outcome.Outcome {
	ctx, span := tracer.Start(ctx, "consultation.fanout",
		trace.WithNewRoot(),
		trace.WithLinks(links...),
		trace.WithAttributes(attribute.String("consultation.kind", string(snapshot.Kind))),
	)
	defer span.End()

	start := d.now()
	results := make([]sink.Result, len(d.sinks))

	var g errgroup.Group
	for i, s := range d.sinks {
		g.Go(func() error {
			sinkCtx, cancel := context.WithTimeout(ctx, d.sinkTimeout)
			defer cancel()
			results[i] = s.Write(sinkCtx, snapshot)
			if results[i].Sink == "" {
				results[i].Sink = s.Name()
			}
			return nil
		})
	}
	_ = g.Wait()

	o := d.record(snapshot, start, d.now().Sub(start), results)
	span.SetAttributes(attribute.Int("consultation.failures", len(o.Failures())))
	return o
}

func (d *Dispatcher) record(snapshot *entity.Session, start time.Time, elapsed time.Duration, results []sink.Result) outcome.Outcome {
	o := outcome.Outcome{
		RunId:            uuid.NewString(),
		Kind:             string(snapshot.Kind),
		SessionCreatedAt: snapshot.CreatedAt,
		StartedAt:        start,
		Duration:         elapsed,
		Results:          outcome.FromResults(results),
	}
	if d.recorder == nil {
		return o
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordOutcomeTimeout)
	defer cancel()
	if err := d.recorder.Record(ctx, o); err != nil {
		d.logger.Warn(logger.ModuleOutcome, "Failed to record fan-out outcome", map[string]interface{}{
			"run_id": o.RunId,
			"error":  err.Error(),
		})
	}
	return o
}
