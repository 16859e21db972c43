package sink

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"smarterstarts-be/internal/entity"
	"smarterstarts-be/internal/mapper"
)

const notAvailable = "N/A"

var alertTemplate = template.Must(template.New("alert").Parse(`<html>
  <body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
    <h2 style="color: #2E86C1;">New SmarterStarts Consultation</h2>
    <p><b>Name:</b> {{.Name}}</p>
    <p><b>Email:</b> {{if .Email}}<a href="mailto:{{.Email}}" style="color:#1a73e8;">{{.Email}}</a>{{else}}N/A{{end}}</p>
    <p><b>Company Size:</b> {{.CompanySize}}</p>
    <p><b>Budget:</b> {{.Budget}}</p>
    <p><b>Problem:</b> {{.Problem}}</p>
    <p><b>Selected Tools:</b></p>
    <ul style="margin-top: 0;">{{range .Tools}}<li>{{.}}</li>{{else}}<li>No tools selected</li>{{end}}</ul>
    <p><b>Rating:</b> {{.Stars}}</p>
    {{if .Feedback}}<p><b>Feedback:</b> {{.Feedback}}</p>{{end}}
    <p><b>Status:</b> {{.Status}}</p>
    <p><b>Created At:</b> {{.CreatedAt}}</p>
    {{if .Link}}<p><a href="{{.Link}}" style="color:#0b8043; text-decoration:none;">View this session</a></p>{{end}}
    <hr>
    <p style="font-size: 12px; color: #777;">SmarterStarts AI | Automated Consultation Notification</p>
  </body>
</html>
`))

type alertView struct {
	Name        string
	Email       string
	CompanySize string
	Budget      string
	Problem     string
	Tools       []string
	Stars       string
	Feedback    string
	Status      string
	CreatedAt   string
	Link        string
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// Stars renders 1..5 as repeated stars and anything else as N/A.
func Stars(rating int) string {
	if rating < 1 || rating > 5 {
		return notAvailable
	}
	return strings.Repeat("★", rating)
}

func AlertSubject(s *entity.Session) string {
	return fmt.Sprintf("New SmarterStarts Consultation – %s", orNA(s.User.Name))
}

// RenderAlert builds the admin alert body. User-supplied text is HTML-escaped.
func RenderAlert(s *entity.Session, link string) (string, error) {
	view := alertView{
		Name:        orNA(s.User.Name),
		Email:       s.User.Email,
		CompanySize: orNA(s.User.CompanySize),
		Budget:      orNA(s.User.Budget),
		Problem:     orNA(s.Problem),
		Tools:       s.SelectedTools,
		Stars:       Stars(s.Rating),
		Feedback:    s.FeedbackText,
		Status:      string(s.Status),
		CreatedAt:   mapper.FormatTimestamp(s.CreatedAt),
		Link:        link,
	}
	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render alert: %w", err)
	}
	return buf.String(), nil
}
