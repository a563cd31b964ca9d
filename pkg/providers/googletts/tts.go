package googletts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/intervo/intervo/pkg/adapters/tts"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/lang"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/providers/googleauth"
	"github.com/intervo/intervo/pkg/resilience"
)

const defaultBaseURL = "https://texttospeech.googleapis.com/v1"

type Config struct {
	BaseURL string
}

type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Synthesizer is a batch client for the Google Cloud text:synthesize
// endpoint, producing MP3 payloads.
type Synthesizer struct {
	cfg    Config
	tokens tokenProvider
	client *http.Client
	logger *slog.Logger
}

func New(cfg Config, tokens *googleauth.TokenSource) *Synthesizer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Synthesizer{
		cfg:    cfg,
		tokens: tokens,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logging.NewComponentLogger(slog.Default(), "googletts"),
	}
}

func (s *Synthesizer) Name() string { return "googletts" }

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate"`
	} `json:"audioConfig"`
}

// Synthesize renders text to MP3 bytes at the requested speaking rate.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts tts.Options) ([]byte, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.Error("token acquisition failed", slog.String("error", err.Error()))
		return nil, err
	}

	rate := opts.SpeakingRate
	if rate <= 0 {
		rate = 1.0
	}
	var reqBody synthesizeRequest
	reqBody.Input.Text = text
	reqBody.Voice.LanguageCode = lang.Normalize(opts.Language)
	reqBody.AudioConfig.AudioEncoding = "MP3"
	reqBody.AudioConfig.SpeakingRate = rate

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonTTSSynthesize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/text:synthesize", bytes.NewReader(payload))
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonTTSSynthesize)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("synthesize request failed", slog.String("error", err.Error()))
		return nil, errorsx.Wrap(err, errorsx.ReasonTTSSynthesize)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		s.logger.Error("tts rate limit exceeded", slog.String("status", resp.Status))
		return nil, errorsx.Wrap(resilience.RateLimitError{Provider: "googletts", Message: resp.Status}, errorsx.ReasonTTSRateLimit)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Error("synthesize returned error status",
			slog.String("status", resp.Status),
			slog.String("body", string(body)))
		return nil, errorsx.Newf(errorsx.ReasonTTSSynthesize, "synthesize failed: %s", resp.Status)
	}

	var decoded struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonTTSSynthesize)
	}
	if decoded.AudioContent == "" {
		return nil, errorsx.New(errorsx.ReasonTTSSynthesize, "synthesize returned no audio content")
	}

	audio, err := base64.StdEncoding.DecodeString(decoded.AudioContent)
	if err != nil {
		return nil, errorsx.Wrap(err, errorsx.ReasonTTSSynthesize)
	}
	return audio, nil
}
