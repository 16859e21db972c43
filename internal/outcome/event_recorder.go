package outcome

import (
	"context"

	"smarterstarts-be/pkg/events"
)

type publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type eventRecorder struct {
	pub publisher
}

// NewEventRecorder publishes each outcome as a consultation event.
func NewEventRecorder(pub publisher) Recorder {
	return &eventRecorder{pub: pub}
}

func (r *eventRecorder) Record(ctx context.Context, o Outcome) error {
	return r.pub.Publish(ctx, ToEvent(o))
}

func ToEvent(o Outcome) events.Event {
	eventType := events.TypeFanOutCompleted
	if o.Degraded() {
		eventType = events.TypeFanOutDegraded
	}

	sinks := make([]map[string]interface{}, 0, len(o.Results))
	for _, r := range o.Results {
		sinks = append(sinks, map[string]interface{}{
			"sink":        r.Sink,
			"status":      string(r.Status),
			"assigned_id": r.AssignedId,
			"error":       r.Error,
			"duration_ms": r.DurationMs,
		})
	}

	return events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"run_id":             o.RunId,
			"kind":               o.Kind,
			"session_created_at": o.SessionCreatedAt,
			"duration_ms":        o.Duration.Milliseconds(),
			"results":            sinks,
		},
		OccurredAt: o.StartedAt.Add(o.Duration),
	}
}
