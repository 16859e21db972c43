package memory

import (
	"context"
	"time"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. It backs local runs where
// no document store is configured, and tests.
type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository keeps entries for ttl, purging expired ones every ttl/6.
// ttl <= 0 keeps entries until the process exits.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		return &SessionRepository{cache: cache.New(cache.NoExpiration, 0)}
	}
	return &SessionRepository{cache: cache.New(ttl, ttl/6)}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	stored := session.Snapshot()
	stored.DocumentId = id
	r.cache.Set(id, stored, cache.DefaultExpiration)
	return id, nil
}

func (r *SessionRepository) Get(id string) (*entity.Session, bool) {
	if x, found := r.cache.Get(id); found {
		return x.(*entity.Session).Snapshot(), true
	}
	return nil, false
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
