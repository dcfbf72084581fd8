package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	coModel "copo_backend/internals/features/outcomes/course_outcomes/model"
)

var ErrNotConfigured = errors.New("question generator not configured")

type GeneratedQuestion struct {
	Text       string `json:"text"`
	Marks      int    `json:"marks"`
	BloomLevel string `json:"bloom_level"`
}

type GenerateInput struct {
	Text  string
	Count int
	Marks int
}

// QuestionGenerator drafts exam questions from source material.
type QuestionGenerator interface {
	Generate(ctx context.Context, in GenerateInput) ([]GeneratedQuestion, error)
}

// stripFences drops a surrounding ```json ... ``` block if the model added one.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// ParseQuestions accepts a JSON array or an object wrapping it under "questions".
func ParseQuestions(raw string) ([]GeneratedQuestion, error) {
	s := stripFences(raw)
	var out []GeneratedQuestion
	if strings.HasPrefix(s, "{") {
		var wrapped struct {
			Questions []GeneratedQuestion `json:"questions"`
		}
		if err := sonic.UnmarshalString(s, &wrapped); err != nil {
			return nil, fmt.Errorf("parse generator output: %w", err)
		}
		out = wrapped.Questions
	} else {
		start, end := strings.IndexByte(s, '['), strings.LastIndexByte(s, ']')
		if start < 0 || end <= start {
			return nil, errors.New("generator output holds no JSON array")
		}
		if err := sonic.UnmarshalString(s[start:end+1], &out); err != nil {
			return nil, fmt.Errorf("parse generator output: %w", err)
		}
	}

	kept := out[:0]
	for _, q := range out {
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			continue
		}
		if q.Marks < 0 {
			q.Marks = 0
		}
		if l, ok := coModel.ParseTaxonomyLevel(q.BloomLevel); ok {
			q.BloomLevel = string(l)
		} else {
			q.BloomLevel = ""
		}
		kept = append(kept, q)
	}
	if len(kept) == 0 {
		return nil, errors.New("generator returned no questions")
	}
	return kept, nil
}
