package entity

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusProcessing          SessionStatus = "Processing"
	SessionStatusPendingConsultation SessionStatus = "Pending Consultation"
	SessionStatusCompleted           SessionStatus = "Completed"
)

// SessionKind tells which boundary entry produced the record.
type SessionKind string

const (
	SessionKindRecommendation SessionKind = "recommendation"
	SessionKindFeedback       SessionKind = "feedback"
)

// PlaceholderRecommendations is held until generation completes.
const PlaceholderRecommendations = "Generating recommendations..."

type UserProfile struct {
	Name        string
	Email       string
	CompanySize string
	Budget      string
}

// Session is one consultation record. The orchestrator owns it for the duration
// of a run; sinks only read the snapshot they are handed.
type Session struct {
	// DocumentId is assigned by the document store. The core never generates it;
	// a feedback payload may echo one back.
	DocumentId string
	Kind       SessionKind

	User                UserProfile
	Problem             string
	RecommendationsText string
	ToolNames           []string
	SelectedTools       []string
	Rating              int // 0 means not rated
	FeedbackText        string
	Status              SessionStatus
	CreatedAt           time.Time
}

// NewSession starts a recommendation session in the Processing state.
func NewSession(user UserProfile, problem string, createdAt time.Time) *Session {
	return &Session{
		Kind:                SessionKindRecommendation,
		User:                user,
		Problem:             problem,
		RecommendationsText: PlaceholderRecommendations,
		ToolNames:           []string{},
		SelectedTools:       []string{},
		Status:              SessionStatusProcessing,
		CreatedAt:           createdAt.UTC(),
	}
}

// ApplyRecommendation replaces the placeholder with generated output in one step.
func (s *Session) ApplyRecommendation(text string, toolNames []string) {
	names := make([]string, len(toolNames))
	copy(names, toolNames)
	s.RecommendationsText = text
	s.ToolNames = names
	s.Status = SessionStatusPendingConsultation
}

func (s *Session) HasRating() bool {
	return s.Rating >= 1 && s.Rating <= 5
}

// Snapshot returns a deep copy safe to share read-only with concurrent sinks.
func (s *Session) Snapshot() *Session {
	cp := *s
	cp.ToolNames = append([]string{}, s.ToolNames...)
	cp.SelectedTools = append([]string{}, s.SelectedTools...)
	return &cp
}
