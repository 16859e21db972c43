package sink

import (
	"context"
	"strings"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/pkg/mailer"
)

// EmailConfig addresses the admin alert.
type EmailConfig struct {
	Receiver string
	// ConsoleBaseURL and Collection build the deep link to the stored record.
	ConsoleBaseURL string
	Collection     string
}

type emailSink struct {
	mailer mailer.IEmailService
	cfg    EmailConfig
}

func NewEmailSink(m mailer.IEmailService, cfg EmailConfig) Sink {
	return &emailSink{mailer: m, cfg: cfg}
}

func (s *emailSink) Name() string { return NameEmail }

func (s *emailSink) Write(ctx context.Context, session *entity.Session) Result {
	return run(ctx, NameEmail, func(ctx context.Context) (string, error) {
		body, err := RenderAlert(session, s.recordLink(session.DocumentId))
		if err != nil {
			return "", err
		}
		return "", s.mailer.SendHTML(ctx, s.cfg.Receiver, AlertSubject(session), body)
	})
}

// recordLink points at the stored record when its id is known, else at the
// collection.
func (s *emailSink) recordLink(documentId string) string {
	if s.cfg.ConsoleBaseURL == "" {
		return ""
	}
	link := strings.TrimRight(s.cfg.ConsoleBaseURL, "/")
	if s.cfg.Collection != "" {
		link += "/" + s.cfg.Collection
	}
	if documentId != "" {
		link += "/" + documentId
	}
	return link
}
