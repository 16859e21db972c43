package service

import (
	"context"
	"time"

	"smarterstarts-be/internal/dto"
	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/mapper"
	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/pkg/recommend"

	"go.opentelemetry.io/otel/attribute"
)

const FeedbackSavedMessage = "Feedback saved successfully!"

type IConsultationService interface {
	Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error)
	SubmitFeedback(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
}

// RecommendationGenerator never fails; ok is false when the fallback was served.
type RecommendationGenerator interface {
	Generate(ctx context.Context, problem, companySize string) (recommend.Recommendation, bool)
}

type FanOutDispatcher interface {
	Dispatch(ctx context.Context, session *entity.Session) error
}

type consultationService struct {
	generator  RecommendationGenerator
	dispatcher FanOutDispatcher
	mapper     *mapper.SessionMapper
	logger     logger.ILogger
	now        func() time.Time
}

func NewConsultationService(generator RecommendationGenerator, dispatcher FanOutDispatcher, log logger.ILogger) IConsultationService {
	return newConsultationService(generator, dispatcher, log, time.Now)
}

func newConsultationService(generator RecommendationGenerator, dispatcher FanOutDispatcher, log logger.ILogger, now func() time.Time) *consultationService {
	return &consultationService{
		generator:  generator,
		dispatcher: dispatcher,
		mapper:     mapper.NewSessionMapper(),
		logger:     log,
		now:        now,
	}
}

// Recommend generates on the request path, then hands the finished session to the
// dispatcher. The response never waits for any sink.
func (s *consultationService) Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	session := s.mapper.RecommendRequestToEntity(req, s.now())

	genCtx, span := tracer.Start(ctx, "consultation.generate")
	rec, ok := s.generator.Generate(genCtx, session.Problem, session.User.CompanySize)
	span.SetAttributes(
		attribute.Bool("generation.ok", ok),
		attribute.Int("generation.tool_names", len(rec.ToolNames)),
	)
	span.End()

	session.ApplyRecommendation(rec.Text, rec.ToolNames)

	s.logger.Info(logger.ModuleConsultation, "Recommendation ready", map[string]interface{}{
		"generated":    ok,
		"tool_names":   len(session.ToolNames),
		"company_size": session.User.CompanySize,
	})

	// Scheduling failures are logged and recorded by the dispatcher.
	_ = s.dispatcher.Dispatch(ctx, session)

	return s.mapper.SessionToRecommendResponse(session), nil
}

// SubmitFeedback stores the final selection as a new record, independent of the
// one written by Recommend.
func (s *consultationService) SubmitFeedback(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	session := s.mapper.FeedbackRequestToEntity(req, s.now())

	s.logger.Info(logger.ModuleConsultation, "Feedback received", map[string]interface{}{
		"rated":          session.HasRating(),
		"selected_tools": len(session.SelectedTools),
		"status":         string(session.Status),
		"linked":         session.DocumentId != "",
	})

	_ = s.dispatcher.Dispatch(ctx, session)

	return &dto.FeedbackResponse{
		Status:  dto.StatusSuccess,
		Message: FeedbackSavedMessage,
	}, nil
}
