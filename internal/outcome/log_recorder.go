package outcome

import (
	"context"

	"smarterstarts-be/internal/pkg/logger"
)

type logRecorder struct {
	log logger.ILogger
}

// NewLogRecorder logs one line per outcome, plus a warning per failed sink.
func NewLogRecorder(log logger.ILogger) Recorder {
	return &logRecorder{log: log}
}

func (r *logRecorder) Record(_ context.Context, o Outcome) error {
	for _, f := range o.Failures() {
		r.log.Warn(logger.ModuleSink, "Sink write did not succeed", map[string]interface{}{
			"run_id":      o.RunId,
			"kind":        o.Kind,
			"sink":        f.Sink,
			"status":      f.Status,
			"error":       f.Error,
			"duration_ms": f.DurationMs,
		})
	}

	details := map[string]interface{}{
		"run_id":      o.RunId,
		"kind":        o.Kind,
		"duration_ms": o.Duration.Milliseconds(),
		"failures":    len(o.Failures()),
	}
	if id := o.AssignedId(); id != "" {
		details["document_id"] = id
	}
	if o.Degraded() {
		r.log.Warn(logger.ModuleOutcome, "Fan-out finished degraded", details)
	} else {
		r.log.Info(logger.ModuleOutcome, "Fan-out finished", details)
	}
	return nil
}
