// Package sink adapts the document store, the spreadsheet and the admin mail relay
// to a single Write contract. A sink never panics out and never retries; every
// call ends in a Result.
package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smarterstarts-be/internal/entity"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	NameDocument = "document"
	NameSheet    = "sheet"
	NameEmail    = "email"
)

var ErrDisabled = errors.New("sink disabled")

// Result is the outcome of one sink write.
type Result struct {
	Sink string
	// AssignedId is set by sinks that create an addressable record.
	AssignedId string
	Err        error
	Duration   time.Duration
	Skipped    bool
}

func (r Result) OK() bool {
	return r.Err == nil && !r.Skipped
}

type Sink interface {
	Name() string
	Write(ctx context.Context, session *entity.Session) Result
}

var tracer = otel.Tracer("smarterstarts-be/sink")

// run executes fn inside a "sink.<name>" span and converts panics to errors.
func run(ctx context.Context, name string, fn func(ctx context.Context) (string, error)) (res Result) {
	ctx, span := tracer.Start(ctx, "sink."+name)
	start := time.Now()
	res.Sink = name

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%s sink panicked: %v", name, r)
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
		span.SetAttributes(attribute.String("sink.assigned_id", res.AssignedId))
		span.End()
	}()

	res.AssignedId, res.Err = fn(ctx)
	return res
}

type disabledSink struct {
	name   string
	reason string
}

// Disabled returns a sink that reports every write as skipped. The bootstrap
// container uses it when a sink's credentials are missing.
func Disabled(name, reason string) Sink {
	return &disabledSink{name: name, reason: reason}
}

func (d *disabledSink) Name() string { return d.name }

func (d *disabledSink) Write(context.Context, *entity.Session) Result {
	return Result{
		Sink:    d.name,
		Skipped: true,
		Err:     fmt.Errorf("%w: %s", ErrDisabled, d.reason),
	}
}
