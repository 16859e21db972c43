package sink

import (
	"context"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/mapper"
	"smarterstarts-be/internal/pkg/sheets"
)

type sheetSink struct {
	appender sheets.RowAppender
	mapper   *mapper.SessionMapper
}

// NewSheetSink appends one fixed-layout row per session.
func NewSheetSink(appender sheets.RowAppender) Sink {
	return &sheetSink{appender: appender, mapper: mapper.NewSessionMapper()}
}

func (s *sheetSink) Name() string { return NameSheet }

func (s *sheetSink) Write(ctx context.Context, session *entity.Session) Result {
	return run(ctx, NameSheet, func(ctx context.Context) (string, error) {
		return "", s.appender.AppendRow(ctx, s.mapper.SessionToRow(session))
	})
}
