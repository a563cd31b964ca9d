package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/intervo/intervo/pkg/adapters/genai"
)

type GenAIConfig struct {
	ResponseText string
	Err          error
}

// Generator is a canned generative-text vendor used in tests and offline
// demos. It records every prompt and counts calls.
type Generator struct {
	cfg GenAIConfig

	mu      sync.Mutex
	calls   int
	prompts []string
}

func NewGenerator(cfg GenAIConfig) *Generator {
	if cfg.ResponseText == "" && cfg.Err == nil {
		cfg.ResponseText = "mock response"
	}
	return &Generator{cfg: cfg}
}

func (g *Generator) Name() string { return "mock_genai" }

func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.record(prompt)
}

func (g *Generator) GenerateVision(ctx context.Context, prompt, base64Image, mimeType string) (string, error) {
	return g.record(prompt)
}

func (g *Generator) record(prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.cfg.Err != nil {
		return "", g.cfg.Err
	}
	if strings.TrimSpace(g.cfg.ResponseText) == "" {
		return genai.EmptyCompletion, nil
	}
	return strings.TrimSpace(g.cfg.ResponseText), nil
}

// Calls returns how many generation calls were made.
func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// LastPrompt returns the most recent prompt, or "" when none was sent.
func (g *Generator) LastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}
