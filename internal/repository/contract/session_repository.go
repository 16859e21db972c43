package contract

import (
	"context"

	"smarterstarts-be/internal/entity"
)

// SessionRepository is the document store. Create returns the identifier the
// store assigned to the new record.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) (string, error)
}
