package mapper

import (
	"strings"
	"time"

	"smarterstarts-be/internal/dto"
	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/model"

	"gorm.io/datatypes"
)

// SheetRecommendationLimit caps the recommendations column, in characters.
const SheetRecommendationLimit = 500

// SheetColumns is the fixed spreadsheet column order. Downstream consumers depend
// on it; append new columns at the end only.
var SheetColumns = []string{
	"Name",
	"Email",
	"Company Size",
	"Budget",
	"Problem",
	"Selected Tools",
	"Recommendations",
	"Rating",
	"Feedback",
	"Created At",
	"Status",
}

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) RecommendRequestToEntity(req *dto.RecommendRequest, now time.Time) *entity.Session {
	user := entity.UserProfile{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		CompanySize: strings.TrimSpace(req.CompanySize),
		Budget:      req.Budget.String(),
	}
	return entity.NewSession(user, strings.TrimSpace(req.Problem), now)
}

// FeedbackRequestToEntity normalizes a free-standing feedback payload. createdAt is
// taken from the payload when it parses, so a feedback record never moves the
// consultation's creation time.
func (m *SessionMapper) FeedbackRequestToEntity(req *dto.FeedbackRequest, now time.Time) *entity.Session {
	user := entity.UserProfile{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		CompanySize: strings.TrimSpace(req.CompanySize),
	}
	if req.User != nil {
		user = entity.UserProfile{
			Name:        firstNonEmpty(req.User.Name, user.Name),
			Email:       firstNonEmpty(req.User.Email, user.Email),
			CompanySize: firstNonEmpty(req.User.CompanySize, user.CompanySize),
			Budget:      req.User.Budget.String(),
		}
	}

	s := &entity.Session{
		DocumentId:          strings.TrimSpace(req.SessionId),
		Kind:                entity.SessionKindFeedback,
		User:                user,
		Problem:             strings.TrimSpace(req.Problem),
		RecommendationsText: req.Recommendations,
		ToolNames:           cleanList(req.ToolNames),
		SelectedTools:       cleanList(req.SelectedTools),
		Rating:              req.Rating.Int(),
		FeedbackText:        strings.TrimSpace(req.UserFeedback),
		CreatedAt:           parseCreatedAt(req.CreatedAt, now),
	}
	s.Status = feedbackStatus(req.Status, s)
	return s
}

func feedbackStatus(raw string, s *entity.Session) entity.SessionStatus {
	switch entity.SessionStatus(strings.TrimSpace(raw)) {
	case entity.SessionStatusProcessing:
		return entity.SessionStatusProcessing
	case entity.SessionStatusPendingConsultation:
		return entity.SessionStatusPendingConsultation
	case entity.SessionStatusCompleted:
		return entity.SessionStatusCompleted
	}
	if s.HasRating() || len(s.SelectedTools) > 0 {
		return entity.SessionStatusCompleted
	}
	return entity.SessionStatusPendingConsultation
}

func (m *SessionMapper) SessionToRecommendResponse(s *entity.Session) *dto.RecommendResponse {
	names := make([]string, len(s.ToolNames))
	copy(names, s.ToolNames)
	return &dto.RecommendResponse{
		Status:          dto.StatusSuccess,
		Recommendations: s.RecommendationsText,
		ToolNames:       names,
	}
}

// SessionToRow renders the 11-column spreadsheet row in SheetColumns order.
func (m *SessionMapper) SessionToRow(s *entity.Session) []interface{} {
	var rating interface{} = ""
	if s.HasRating() {
		rating = s.Rating
	}
	return []interface{}{
		s.User.Name,
		s.User.Email,
		s.User.CompanySize,
		s.User.Budget,
		s.Problem,
		strings.Join(s.SelectedTools, ", "),
		truncateRunes(s.RecommendationsText, SheetRecommendationLimit),
		rating,
		s.FeedbackText,
		FormatTimestamp(s.CreatedAt),
		string(s.Status),
	}
}

// FormatTimestamp is the wire format for createdAt everywhere outside Go.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseCreatedAt(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC()
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.ConsultationSession {
	var linked *string
	if s.DocumentId != "" {
		id := s.DocumentId
		linked = &id
	}
	return &model.ConsultationSession{
		Kind:            string(s.Kind),
		LinkedSessionId: linked,
		UserName:        s.User.Name,
		UserEmail:       s.User.Email,
		CompanySize:     s.User.CompanySize,
		Budget:          s.User.Budget,
		Problem:         s.Problem,
		Recommendations: s.RecommendationsText,
		ToolNames:       datatypes.JSONSlice[string](cleanList(s.ToolNames)),
		SelectedTools:   datatypes.JSONSlice[string](cleanList(s.SelectedTools)),
		Rating:          s.Rating,
		UserFeedback:    s.FeedbackText,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt.UTC(),
	}
}

func (m *SessionMapper) SessionToDocument(s *entity.Session) *model.ConsultationDocument {
	return &model.ConsultationDocument{
		Kind:            string(s.Kind),
		LinkedSessionId: s.DocumentId,
		User: model.ConsultationUser{
			Name:        s.User.Name,
			Email:       s.User.Email,
			CompanySize: s.User.CompanySize,
			Budget:      s.User.Budget,
		},
		Problem:         s.Problem,
		Recommendations: s.RecommendationsText,
		ToolNames:       cleanList(s.ToolNames),
		SelectedTools:   cleanList(s.SelectedTools),
		Rating:          s.Rating,
		UserFeedback:    s.FeedbackText,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt.UTC(),
	}
}
