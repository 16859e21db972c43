// Package anthropic adapts the Anthropic Messages API to llm.LLMProvider.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smarterstarts-be/pkg/llm"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 2048
)

// MessagesClient is the subset of the SDK used here. *sdk.MessageService
// satisfies it.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

type AnthropicProvider struct {
	msg       MessagesClient
	modelName string
}

var _ llm.LLMProvider = &AnthropicProvider{}

// New wraps an existing messages client.
func New(msg MessagesClient, modelName string) (*AnthropicProvider, error) {
	if msg == nil {
		return nil, errors.New("anthropic: messages client is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &AnthropicProvider{msg: msg, modelName: modelName}, nil
}

// NewFromAPIKey constructs a provider using the default SDK HTTP client.
func NewFromAPIKey(apiKey, modelName string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&ac.Messages, modelName)
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7, MaxTokens: defaultMaxTokens, Model: p.modelName}, opts...)
	if options.MaxTokens <= 0 {
		options.MaxTokens = defaultMaxTokens
	}

	params := sdk.MessageNewParams{
		MaxTokens: int64(options.MaxTokens),
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
		Model:     sdk.Model(options.Model),
	}
	if options.Temperature > 0 {
		params.Temperature = sdk.Float(options.Temperature)
	}

	msg, err := p.msg.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}
	if msg == nil {
		return "", llm.ErrEmptyResponse
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}
