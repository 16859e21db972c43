package outcome

import (
	"context"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryRecorder keeps outcomes in process for the retention window.
type MemoryRecorder struct {
	cache *cache.Cache
}

func NewMemoryRecorder(retention time.Duration) *MemoryRecorder {
	if retention <= 0 {
		retention = time.Hour
	}
	return &MemoryRecorder{cache: cache.New(retention, retention/6)}
}

func (r *MemoryRecorder) Record(_ context.Context, o Outcome) error {
	r.cache.SetDefault(o.RunId, o)
	return nil
}

func (r *MemoryRecorder) Recent(_ context.Context, limit int) ([]Outcome, error) {
	items := r.cache.Items()
	out := make([]Outcome, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(Outcome))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
