// Package outcome records what happened to each detached sink fan-out.
package outcome

import (
	"context"
	"errors"
	"time"

	"smarterstarts-be/internal/sink"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

type SinkReport struct {
	Sink       string `json:"sink"`
	Status     Status `json:"status"`
	AssignedId string `json:"assigned_id,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Outcome is one fan-out run.
type Outcome struct {
	RunId            string        `json:"run_id"`
	Kind             string        `json:"kind"`
	SessionCreatedAt time.Time     `json:"session_created_at"`
	StartedAt        time.Time     `json:"started_at"`
	Duration         time.Duration `json:"duration"`
	Results          []SinkReport  `json:"results"`
}

// FromResults converts sink results into reports, preserving order.
func FromResults(results []sink.Result) []SinkReport {
	reports := make([]SinkReport, 0, len(results))
	for _, r := range results {
		rep := SinkReport{
			Sink:       r.Sink,
			Status:     StatusOK,
			AssignedId: r.AssignedId,
			DurationMs: r.Duration.Milliseconds(),
		}
		switch {
		case r.Skipped:
			rep.Status = StatusSkipped
		case r.Err != nil:
			rep.Status = StatusFailed
		}
		if r.Err != nil {
			rep.Error = r.Err.Error()
		}
		reports = append(reports, rep)
	}
	return reports
}

// Failures returns reports whose status is not ok.
func (o Outcome) Failures() []SinkReport {
	var out []SinkReport
	for _, r := range o.Results {
		if r.Status != StatusOK {
			out = append(out, r)
		}
	}
	return out
}

func (o Outcome) Degraded() bool {
	return len(o.Failures()) > 0
}

// AssignedId returns the first id any sink reported.
func (o Outcome) AssignedId() string {
	for _, r := range o.Results {
		if r.AssignedId != "" {
			return r.AssignedId
		}
	}
	return ""
}

type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// Reader serves recent outcomes, newest first.
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Outcome, error)
}

type multiRecorder struct {
	recorders []Recorder
}

// Multi records to every recorder and joins their errors.
func Multi(recorders ...Recorder) Recorder {
	return &multiRecorder{recorders: recorders}
}

func (m *multiRecorder) Record(ctx context.Context, o Outcome) error {
	var errs []error
	for _, r := range m.recorders {
		if err := r.Record(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FailuresBySink counts non-ok reports per sink across outcomes.
func FailuresBySink(outcomes []Outcome) map[string]int {
	counts := make(map[string]int)
	for _, o := range outcomes {
		for _, r := range o.Failures() {
			counts[r.Sink]++
		}
	}
	return counts
}
