package googlevision

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/intervo/intervo/pkg/adapters/vision"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/providers/googleauth"
	"github.com/intervo/intervo/pkg/resilience"
)

const defaultBaseURL = "https://vision.googleapis.com/v1"

type Config struct {
	BaseURL string
}

type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Labeler is a client for the Google Cloud Vision images:annotate endpoint,
// requesting label detection only.
type Labeler struct {
	cfg    Config
	tokens tokenProvider
	client *http.Client
	logger *slog.Logger
}

func New(cfg Config, tokens *googleauth.TokenSource) *Labeler {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Labeler{
		cfg:    cfg,
		tokens: tokens,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logging.NewComponentLogger(slog.Default(), "googlevision"),
	}
}

func (l *Labeler) Name() string { return "googlevision" }

type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
	} `json:"responses"`
}

// AnnotateLabels returns up to vision.MaxLabels ranked labels for one
// base64-encoded image. Zero labels is a valid, empty annotation set.
func (l *Labeler) AnnotateLabels(ctx context.Context, base64Image string) ([]vision.Label, error) {
	token, err := l.tokens.Token(ctx)
	if err != nil {
		l.logger.Error("token acquisition failed", slog.String("error", err.Error()))
		return nil, err
	}

	reqBody := map[string]any{
		"requests": []map[string]any{
			{
				"image": map[string]any{"content": base64Image},
				"features": []map[string]any{
					{"type": "LABEL_DETECTION", "maxResults": vision.MaxLabels},
				},
			},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonVisionAnnotate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.BaseURL+"/images:annotate", bytes.NewReader(payload))
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonVisionAnnotate)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Error("annotate request failed", slog.String("error", err.Error()))
		return nil, errorsx.Wrap(err, errorsx.ReasonVisionAnnotate)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		l.logger.Error("vision rate limit exceeded", slog.String("status", resp.Status))
		return nil, errorsx.Wrap(resilience.RateLimitError{Provider: "googlevision", Message: resp.Status}, errorsx.ReasonVisionRateLimit)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		l.logger.Error("annotate returned error status",
			slog.String("status", resp.Status),
			slog.String("body", string(body)))
		return nil, errorsx.Newf(errorsx.ReasonVisionAnnotate, "annotate failed: %s", resp.Status)
	}

	var decoded annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonVisionAnnotate)
	}
	if len(decoded.Responses) == 0 {
		return nil, nil
	}

	annotations := decoded.Responses[0].LabelAnnotations
	labels := make([]vision.Label, 0, len(annotations))
	for _, a := range annotations {
		labels = append(labels, vision.Label{Description: a.Description, Score: a.Score})
	}
	if len(labels) > vision.MaxLabels {
		labels = labels[:vision.MaxLabels]
	}
	return labels, nil
}
