package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/intervo/intervo/pkg/adapters/genai"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/resilience"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
)

type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	UseCircuitBreaker bool
	CircuitThreshold  int
	CircuitCooldown   time.Duration
}

// Generator is a client for the Gemini generateContent endpoint, shared by
// every text transform stage.
type Generator struct {
	cfg     Config
	client  *http.Client
	breaker *resilience.CircuitBreaker
	logger  *slog.Logger
}

func New(cfg Config) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	g := &Generator{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logging.NewComponentLogger(slog.Default(), "gemini"),
	}
	if cfg.UseCircuitBreaker {
		g.breaker = resilience.NewCircuitBreaker(cfg.CircuitThreshold, cfg.CircuitCooldown)
	}
	return g
}

func (g *Generator) Name() string { return "gemini" }

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []struct {
		Parts []part `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText returns the trimmed completion for a prompt. A reachable
// provider with no text to offer yields genai.EmptyCompletion.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, []part{{Text: prompt}})
}

// GenerateVision sends a prompt alongside one inline base64 image part.
func (g *Generator) GenerateVision(ctx context.Context, prompt, base64Image, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return g.generate(ctx, []part{
		{Text: prompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: base64Image}},
	})
}

func (g *Generator) generate(ctx context.Context, parts []part) (string, error) {
	if g.breaker != nil && !g.breaker.Allow() {
		return "", errorsx.New(errorsx.ReasonGenAICircuitOpen, "gemini circuit open")
	}

	text, err := g.doGenerate(ctx, parts)
	if g.breaker != nil {
		if err != nil {
			g.breaker.OnError(err)
		} else {
			g.breaker.OnSuccess()
		}
	}
	return text, err
}

func (g *Generator) doGenerate(ctx context.Context, parts []part) (string, error) {
	var reqBody generateRequest
	reqBody.Contents = make([]struct {
		Parts []part `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = parts

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonGenAIGenerate)
	}

	// The key travels in a header, never in the URL: transport errors embed
	// the full URL in their text and that text reaches logs.
	endpoint := g.cfg.BaseURL + "/models/" + g.cfg.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonGenAIGenerate)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("generate request failed", slog.String("error", err.Error()))
		return "", errorsx.Wrap(err, errorsx.ReasonGenAIGenerate)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		g.logger.Error("gemini rate limit exceeded", slog.String("status", resp.Status))
		return "", errorsx.Wrap(resilience.RateLimitError{Provider: "gemini", Message: resp.Status}, errorsx.ReasonGenAIRateLimit)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		g.logger.Error("generate returned error status",
			slog.String("status", resp.Status),
			slog.String("body", string(body)))
		return "", errorsx.Newf(errorsx.ReasonGenAIGenerate, "generate failed: %s", resp.Status)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonGenAIGenerate)
	}

	var sb strings.Builder
	if len(decoded.Candidates) > 0 {
		for _, p := range decoded.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		// Provider answered but had nothing to say. Distinct from failure.
		return genai.EmptyCompletion, nil
	}
	return text, nil
}
