// FILE: test/integration/ollama_integration_test.go
// PURPOSE: Live check of the Ollama provider against a local server.

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/pkg/llm/ollama"
	"smarterstarts-be/pkg/recommend"

	"github.com/stretchr/testify/assert"
)

func TestOllamaRecommendation(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	gen := recommend.NewGenerator(
		ollama.NewOllamaProvider(baseURL, model),
		logger.NewNopLogger(),
		recommend.GeneratorOptions{Timeout: 2 * time.Minute},
	)

	rec, ok := gen.Generate(context.Background(), "We lose track of client follow-ups", "11-50")
	if !ok {
		t.Fatalf("generation fell back; is %s serving %s?", baseURL, model)
	}
	assert.NotEmpty(t, rec.Text)
	assert.LessOrEqual(t, len(rec.ToolNames), recommend.DefaultTopK)
	t.Logf("tool names: %v", rec.ToolNames)
}
