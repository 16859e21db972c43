package sink

import (
	"context"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/repository/contract"
)

type documentSink struct {
	repo contract.SessionRepository
}

// NewDocumentSink persists sessions through repo and reports the assigned id.
func NewDocumentSink(repo contract.SessionRepository) Sink {
	return &documentSink{repo: repo}
}

func (s *documentSink) Name() string { return NameDocument }

func (s *documentSink) Write(ctx context.Context, session *entity.Session) Result {
	return run(ctx, NameDocument, func(ctx context.Context) (string, error) {
		return s.repo.Create(ctx, session)
	})
}
