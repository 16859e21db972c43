package outcome

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/internal/sink"
	"smarterstarts-be/pkg/events"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleOutcome(runId string, startedAt time.Time, failed bool) Outcome {
	results := []sink.Result{
		{Sink: sink.NameDocument, AssignedId: "doc-1", Duration: 15 * time.Millisecond},
		{Sink: sink.NameSheet, Duration: 30 * time.Millisecond},
		{Sink: sink.NameEmail, Skipped: true, Err: sink.ErrDisabled},
	}
	if failed {
		results[1].Err = errors.New("403 forbidden")
	}
	return Outcome{
		RunId:     runId,
		Kind:      "recommendation",
		StartedAt: startedAt,
		Duration:  40 * time.Millisecond,
		Results:   FromResults(results),
	}
}

func TestFromResults(t *testing.T) {
	o := sampleOutcome("r1", time.Now(), true)
	require.Len(t, o.Results, 3)

	assert.Equal(t, StatusOK, o.Results[0].Status)
	assert.Equal(t, "doc-1", o.Results[0].AssignedId)
	assert.Equal(t, int64(15), o.Results[0].DurationMs)
	assert.Equal(t, StatusFailed, o.Results[1].Status)
	assert.Equal(t, "403 forbidden", o.Results[1].Error)
	assert.Equal(t, StatusSkipped, o.Results[2].Status)

	assert.True(t, o.Degraded())
	assert.Len(t, o.Failures(), 2)
	assert.Equal(t, "doc-1", o.AssignedId())
}

func TestFailuresBySink(t *testing.T) {
	now := time.Now()
	counts := FailuresBySink([]Outcome{
		sampleOutcome("a", now, true),
		sampleOutcome("b", now, false),
	})
	assert.Equal(t, map[string]int{sink.NameSheet: 1, sink.NameEmail: 2}, counts)
}

func TestLogRecorderWarnsPerFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewLogRecorder(logger.NewFromZap(zap.New(core)))

	require.NoError(t, r.Record(context.Background(), sampleOutcome("r1", time.Now(), true)))

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 3)
	assert.Equal(t, "Sink write did not succeed", warns[0].Message)
	assert.Equal(t, "Fan-out finished degraded", warns[2].Message)
}

func TestLogRecorderInfoWhenClean(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewLogRecorder(logger.NewFromZap(zap.New(core)))

	o := Outcome{RunId: "r1", Results: FromResults([]sink.Result{{Sink: sink.NameDocument}})}
	require.NoError(t, r.Record(context.Background(), o))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
}

func TestMemoryRecorderRecentNewestFirst(t *testing.T) {
	r := NewMemoryRecorder(time.Minute)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, r.Record(context.Background(), sampleOutcome(fmt.Sprint(i), base.Add(time.Duration(i)*time.Second), false)))
	}

	got, err := r.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].RunId)
	assert.Equal(t, "2", got[1].RunId)
}

type fakeList struct {
	items   []string
	pushErr error
}

func (f *fakeList) LPush(_ context.Context, _ string, values ...interface{}) *redis.IntCmd {
	if f.pushErr != nil {
		return redis.NewIntResult(0, f.pushErr)
	}
	for _, v := range values {
		f.items = append([]string{string(v.([]byte))}, f.items...)
	}
	return redis.NewIntResult(int64(len(f.items)), nil)
}

func (f *fakeList) LTrim(_ context.Context, _ string, start, stop int64) *redis.StatusCmd {
	if int(stop+1) < len(f.items) {
		f.items = f.items[start : stop+1]
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeList) LRange(_ context.Context, _ string, start, stop int64) *redis.StringSliceCmd {
	end := int(stop + 1)
	if end > len(f.items) {
		end = len(f.items)
	}
	return redis.NewStringSliceResult(append([]string{}, f.items[start:end]...), nil)
}

func TestRedisRecorderTrimsAndReads(t *testing.T) {
	list := &fakeList{}
	r := newRedisRecorder(list, "", 3)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record(context.Background(), sampleOutcome(fmt.Sprint(i), base, i%2 == 0)))
	}
	assert.Len(t, list.items, 3)

	got, err := r.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].RunId)
	assert.Equal(t, "3", got[1].RunId)
	assert.Equal(t, StatusFailed, got[0].Results[1].Status)
}

func TestRedisRecorderPushError(t *testing.T) {
	r := newRedisRecorder(&fakeList{pushErr: errors.New("conn refused")}, "k", 10)
	assert.Error(t, r.Record(context.Background(), sampleOutcome("x", time.Now(), false)))
}

type fakePublisher struct {
	published []events.Event
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, e events.Event) error {
	f.published = append(f.published, e)
	return f.err
}

func TestEventRecorder(t *testing.T) {
	tests := []struct {
		name     string
		failed   bool
		wantType string
	}{
		{"degraded", true, events.TypeFanOutDegraded},
		{"skipped email still degraded", false, events.TypeFanOutDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			r := NewEventRecorder(pub)
			require.NoError(t, r.Record(context.Background(), sampleOutcome("r1", time.Now(), tt.failed)))
			require.Len(t, pub.published, 1)
			assert.Equal(t, tt.wantType, pub.published[0].EventType())
			assert.Equal(t, "r1", pub.published[0].Payload()["run_id"])
		})
	}

	clean := Outcome{RunId: "ok", Results: FromResults([]sink.Result{{Sink: sink.NameDocument}})}
	assert.Equal(t, events.TypeFanOutCompleted, ToEvent(clean).EventType())
}

func TestMultiJoinsErrors(t *testing.T) {
	mem := NewMemoryRecorder(time.Minute)
	failing := NewEventRecorder(&fakePublisher{err: errors.New("nats down")})

	err := Multi(failing, mem).Record(context.Background(), sampleOutcome("r1", time.Now(), false))
	assert.ErrorContains(t, err, "nats down")

	got, _ := mem.Recent(context.Background(), 10)
	assert.Len(t, got, 1)
}
