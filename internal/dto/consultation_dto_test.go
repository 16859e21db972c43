package dto

import (
	"encoding/json"
	"testing"
)

func TestFlexStringUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"budget":"100-200"}`, "100-200"},
		{"integer", `{"budget":150}`, "150"},
		{"float", `{"budget":99.5}`, "99.5"},
		{"null", `{"budget":null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RecommendRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := req.Budget.String(); got != tt.want {
				t.Errorf("Budget = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlexStringRejectsObjects(t *testing.T) {
	var req RecommendRequest
	if err := json.Unmarshal([]byte(`{"budget":{"min":1}}`), &req); err == nil {
		t.Error("expected error for object budget")
	}
}

func TestFeedbackRatingAbsent(t *testing.T) {
	var req FeedbackRequest
	if err := json.Unmarshal([]byte(`{"selected_tools":["A"],"user_feedback":"ok"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Rating != nil {
		t.Errorf("Rating = %v, want nil", *req.Rating)
	}
}

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantNil bool
		wantErr bool
	}{
		{name: "integer", body: `{"rating":4}`, want: 4},
		{name: "quoted", body: `{"rating":"4"}`, want: 4},
		{name: "quoted with spaces", body: `{"rating":" 3 "}`, want: 3},
		{name: "empty string", body: `{"rating":""}`, want: 0},
		{name: "null", body: `{"rating":null}`, wantNil: true},
		{name: "word", body: `{"rating":"five"}`, wantErr: true},
		{name: "fraction", body: `{"rating":4.5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req FeedbackRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if tt.wantNil {
				if req.Rating != nil {
					t.Errorf("Rating = %v, want nil", *req.Rating)
				}
				return
			}
			if got := req.Rating.Int(); got != tt.want {
				t.Errorf("Rating = %d, want %d", got, tt.want)
			}
		})
	}
}
