package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smarterstarts-be/internal/bootstrap"
	"smarterstarts-be/internal/config"
	"smarterstarts-be/internal/dto"
	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Boots the real container with no external services configured: the generator
// falls back, the document store is in memory and the other sinks are disabled.
func TestContainerWithoutCredentials(t *testing.T) {
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY", "GOOGLE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS", "SMTP_EMAIL", "ALERT_EMAIL", "ALERT_RECEIVER", "REDIS_URL", "NATS_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("DOCUMENT_STORE", "memory")

	cfg := config.Load()
	container := bootstrap.NewContainer(context.Background(), cfg, logger.NewNopLogger())
	app := server.New(cfg, container).GetApp()

	req := httptest.NewRequest("POST", "/recommend", strings.NewReader(`{"problem":"need a CRM","company_size":"1-10"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res dto.RecommendResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, dto.StatusSuccess, res.Status)
	assert.Len(t, res.ToolNames, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, container.Pool.Flush(ctx))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/health/v1/fanout", nil), -1)
	require.NoError(t, err)
	var summary dto.FanOutSummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, []string{"sheet", "email"}, summary.Outcomes[0].Failed)
	assert.NotEmpty(t, summary.Outcomes[0].Sinks[0].AssignedId)

	require.NoError(t, container.Shutdown(ctx))
}
