package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"copo_backend/internals/observability"
)

// maxSourceChars bounds the material embedded in the prompt, in runes.
const maxSourceChars = 12000

type OpenAIGenerator struct {
	Client  *openai.Client
	Model   string
	Timeout time.Duration
}

type unconfigured struct{}

func (unconfigured) Generate(context.Context, GenerateInput) ([]GeneratedQuestion, error) {
	return nil, ErrNotConfigured
}

// NewOpenAIGenerator talks to any OpenAI-compatible endpoint.
// Without an API key every call fails with ErrNotConfigured.
func NewOpenAIGenerator(apiKey, baseURL, model string, timeout time.Duration) QuestionGenerator {
	if strings.TrimSpace(apiKey) == "" {
		return unconfigured{}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{Client: openai.NewClientWithConfig(cfg), Model: model, Timeout: timeout}
}

func prompt(in GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d exam questions based on the study material below.", in.Count)
	if in.Marks > 0 {
		fmt.Fprintf(&b, " Each question is worth %d marks.", in.Marks)
	}
	b.WriteString(` Reply with only a JSON array of objects with keys "text", "marks" and "bloom_level",`)
	b.WriteString(` where bloom_level is one of remember, understand, apply, analyze, evaluate, create.`)
	b.WriteString("\n\nMaterial:\n")
	src := []rune(in.Text)
	if len(src) > maxSourceChars {
		src = src[:maxSourceChars]
	}
	b.WriteString(string(src))
	return b.String()
}

func (g *OpenAIGenerator) Generate(ctx context.Context, in GenerateInput) ([]GeneratedQuestion, error) {
	start := time.Now()
	defer func() { observability.ObserveLLM(time.Since(start)) }()

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.Model,
		Temperature: 0.4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an experienced university examiner."},
			{Role: openai.ChatMessageRoleUser, Content: prompt(in)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("llm returned no choices")
	}
	return ParseQuestions(resp.Choices[0].Message.Content)
}
