package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"smarterstarts-be/internal/dto"
	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/pkg/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	rec recommend.Recommendation
	ok  bool

	gotProblem, gotSize string
}

func (g *stubGenerator) Generate(_ context.Context, problem, companySize string) (recommend.Recommendation, bool) {
	g.gotProblem, g.gotSize = problem, companySize
	return g.rec, g.ok
}

type capturingDispatcher struct {
	mu       sync.Mutex
	sessions []*entity.Session
	err      error
}

func (d *capturingDispatcher) Dispatch(_ context.Context, s *entity.Session) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions = append(d.sessions, s.Snapshot())
	return d.err
}

var fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func newTestService(gen RecommendationGenerator, disp FanOutDispatcher) *consultationService {
	return newConsultationService(gen, disp, logger.NewNopLogger(), func() time.Time { return fixedNow })
}

func TestRecommendSuccess(t *testing.T) {
	gen := &stubGenerator{
		rec: recommend.Recommendation{Text: "1. Acme - CRM\n2. Zen", ToolNames: []string{"Acme", "Zen"}},
		ok:  true,
	}
	disp := &capturingDispatcher{}
	svc := newTestService(gen, disp)

	resp, err := svc.Recommend(context.Background(), &dto.RecommendRequest{
		Problem:     "need a CRM",
		Name:        "Ada",
		CompanySize: "11-50",
		Budget:      "300",
	})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusSuccess, resp.Status)
	assert.Equal(t, []string{"Acme", "Zen"}, resp.ToolNames)
	assert.Equal(t, "need a CRM", gen.gotProblem)
	assert.Equal(t, "11-50", gen.gotSize)

	require.Len(t, disp.sessions, 1)
	s := disp.sessions[0]
	assert.Equal(t, entity.SessionStatusPendingConsultation, s.Status)
	assert.Equal(t, "1. Acme - CRM\n2. Zen", s.RecommendationsText)
	assert.Equal(t, fixedNow, s.CreatedAt)
	assert.Equal(t, "300", s.User.Budget)
	assert.Empty(t, s.SelectedTools)
	assert.Zero(t, s.Rating)
	assert.Empty(t, s.DocumentId)
}

func TestRecommendFallbackStillSucceeds(t *testing.T) {
	gen := &stubGenerator{
		rec: recommend.Recommendation{Text: recommend.FallbackText, ToolNames: recommend.FallbackTools()},
		ok:  false,
	}
	disp := &capturingDispatcher{err: context.DeadlineExceeded}
	svc := newTestService(gen, disp)

	resp, err := svc.Recommend(context.Background(), &dto.RecommendRequest{Problem: "x"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusSuccess, resp.Status)
	assert.Equal(t, recommend.FallbackText, resp.Recommendations)
	assert.Len(t, resp.ToolNames, 5)
	require.Len(t, disp.sessions, 1)
	assert.Equal(t, recommend.FallbackText, disp.sessions[0].RecommendationsText)
}

func TestSubmitFeedback(t *testing.T) {
	four := dto.FlexInt(4)
	tests := []struct {
		name       string
		req        *dto.FeedbackRequest
		wantStatus entity.SessionStatus
		wantRating int
	}{
		{
			name: "rated with selection",
			req: &dto.FeedbackRequest{
				User:          &dto.UserDTO{Name: "Ada", Email: "ada@example.com"},
				Problem:       "need a CRM",
				SelectedTools: []string{"Acme"},
				Rating:        &four,
			},
			wantStatus: entity.SessionStatusCompleted,
			wantRating: 4,
		},
		{
			name:       "nothing chosen",
			req:        &dto.FeedbackRequest{Name: "Ada", Problem: "need a CRM"},
			wantStatus: entity.SessionStatusPendingConsultation,
			wantRating: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disp := &capturingDispatcher{}
			svc := newTestService(&stubGenerator{}, disp)

			resp, err := svc.SubmitFeedback(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, dto.StatusSuccess, resp.Status)
			assert.Equal(t, FeedbackSavedMessage, resp.Message)

			require.Len(t, disp.sessions, 1)
			s := disp.sessions[0]
			assert.Equal(t, entity.SessionKindFeedback, s.Kind)
			assert.Equal(t, tt.wantStatus, s.Status)
			assert.Equal(t, tt.wantRating, s.Rating)
			assert.Equal(t, "Ada", s.User.Name)
		})
	}
}

func TestSubmitFeedbackDoesNotCallGenerator(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(gen, &capturingDispatcher{})
	_, err := svc.SubmitFeedback(context.Background(), &dto.FeedbackRequest{Problem: "x"})
	require.NoError(t, err)
	assert.Empty(t, gen.gotProblem)
}
