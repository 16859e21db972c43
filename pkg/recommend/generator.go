package recommend

import (
	"context"
	"errors"
	"time"

	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/pkg/llm"
)

// FallbackText is served whenever live generation fails.
const FallbackText = `1. ClickUp – All-in-one project management.
2. HubSpot – CRM & marketing automation.
3. Notion – Team workspace.
4. Asana – Workflow management.
5. Zoho Projects – Affordable suite.`

// FallbackTools returns the tool names matching FallbackText.
func FallbackTools() []string {
	return []string{"ClickUp", "HubSpot", "Notion", "Asana", "Zoho Projects"}
}

// Recommendation is the generator output.
type Recommendation struct {
	Text      string
	ToolNames []string
}

type GeneratorOptions struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	TopK        int
}

func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		MaxTokens:   2048,
		Temperature: 0.7,
		Timeout:     25 * time.Second,
		TopK:        DefaultTopK,
	}
}

type Generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
	opts     GeneratorOptions
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger, opts GeneratorOptions) *Generator {
	defaults := DefaultGeneratorOptions()
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaults.MaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.TopK <= 0 {
		opts.TopK = defaults.TopK
	}
	return &Generator{provider: provider, logger: log, opts: opts}
}

// Generate asks the model for ranked tools. It never fails: on any error, empty
// response or timeout it returns the static fallback and ok=false.
func (g *Generator) Generate(ctx context.Context, problem, companySize string) (Recommendation, bool) {
	if g.provider == nil {
		g.logger.Warn(logger.ModuleGenerator, "No LLM provider configured, serving fallback", nil)
		return fallback(), false
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	start := time.Now()
	text, err := g.provider.Generate(ctx, BuildPrompt(problem, companySize, g.opts.TopK),
		llm.WithMaxTokens(g.opts.MaxTokens),
		llm.WithTemperature(g.opts.Temperature),
	)
	if err == nil && text == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		details := map[string]interface{}{
			"provider":    g.provider.Name(),
			"error":       err.Error(),
			"elapsed_ms":  time.Since(start).Milliseconds(),
			"timed_out":   errors.Is(err, context.DeadlineExceeded),
			"empty_reply": errors.Is(err, llm.ErrEmptyResponse),
		}
		g.logger.Warn(logger.ModuleGenerator, "Generation failed, serving fallback", details)
		return fallback(), false
	}

	names := ExtractTopK(text, g.opts.TopK)
	g.logger.Info(logger.ModuleGenerator, "Recommendations generated", map[string]interface{}{
		"provider":   g.provider.Name(),
		"tool_count": len(names),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return Recommendation{Text: text, ToolNames: names}, true
}

func fallback() Recommendation {
	return Recommendation{Text: FallbackText, ToolNames: FallbackTools()}
}
