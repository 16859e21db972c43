package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// FlexString accepts a JSON string, number or null. Frontends send the budget
// both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FlexInt accepts a JSON integer or a quoted integer. Form widgets post the
// rating as "4".
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

func (f *FlexInt) Int() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

type RecommendRequest struct {
	Problem     string     `json:"problem" validate:"required"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CompanySize string     `json:"company_size"`
	Budget      FlexString `json:"budget"`
}

type RecommendResponse struct {
	Status          string   `json:"status"`
	Recommendations string   `json:"recommendations"`
	ToolNames       []string `json:"tool_names"`
	Message         string   `json:"message,omitempty"`
}

type UserDTO struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CompanySize string     `json:"company_size"`
	Budget      FlexString `json:"budget"`
}

// FeedbackRequest is the session-shaped payload sent after the user picks tools.
// The flat user fields are accepted when the nested user object is absent.
type FeedbackRequest struct {
	SessionId       string   `json:"session_id"`
	User            *UserDTO `json:"user" validate:"omitempty"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	CompanySize     string   `json:"company_size"`
	Problem         string   `json:"problem"`
	Recommendations string   `json:"recommendations"`
	ToolNames       []string `json:"tool_names"`
	SelectedTools   []string `json:"selected_tools"`
	Rating          *FlexInt `json:"rating" validate:"omitempty,min=0,max=5"`
	UserFeedback    string   `json:"user_feedback"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"createdAt"`
}

type FeedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SinkReportDTO struct {
	Sink       string `json:"sink"`
	Status     string `json:"status"`
	AssignedId string `json:"assigned_id,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type FanOutOutcomeDTO struct {
	RunId     string          `json:"run_id"`
	Kind      string          `json:"kind"`
	StartedAt string          `json:"started_at"`
	Failed    []string        `json:"failed"`
	Sinks     []SinkReportDTO `json:"sinks"`
}

type FanOutSummaryResponse struct {
	Status         string             `json:"status"`
	FailuresBySink map[string]int     `json:"failures_by_sink"`
	Outcomes       []FanOutOutcomeDTO `json:"outcomes"`
}
