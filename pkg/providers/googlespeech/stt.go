package googlespeech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/intervo/intervo/pkg/adapters/stt"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/providers/googleauth"
	"github.com/intervo/intervo/pkg/resilience"
)

const defaultBaseURL = "https://speech.googleapis.com/v1"

type Config struct {
	BaseURL string
}

// tokenProvider is satisfied by googleauth.TokenSource.
type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Recognizer is a batch client for the Google Cloud Speech-to-Text
// recognize endpoint.
type Recognizer struct {
	cfg    Config
	tokens tokenProvider
	client *http.Client
	logger *slog.Logger
}

func New(cfg Config, tokens *googleauth.TokenSource) *Recognizer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Recognizer{
		cfg:    cfg,
		tokens: tokens,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logging.NewComponentLogger(slog.Default(), "googlespeech_stt"),
	}
}

func (r *Recognizer) Name() string { return "googlespeech" }

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	Encoding            string `json:"encoding"`
	SampleRateHertz     int    `json:"sampleRateHertz"`
	AudioChannelCount   int    `json:"audioChannelCount"`
	LanguageCode        string `json:"languageCode"`
	EnableAutomaticPunc bool   `json:"enableAutomaticPunctuation"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe sends one base64-encoded payload to speech:recognize and joins
// the top alternative of every result segment with newlines, in provider
// order. Zero result segments is a failure, not an empty transcript.
func (r *Recognizer) Transcribe(ctx context.Context, audio []byte, opts stt.Options) (string, error) {
	token, err := r.tokens.Token(ctx)
	if err != nil {
		r.logger.Error("token acquisition failed", slog.String("error", err.Error()))
		return "", err
	}

	reqBody := recognizeRequest{
		Config: recognizeConfig{
			Encoding:            opts.Encoding,
			SampleRateHertz:     opts.SampleRate,
			AudioChannelCount:   opts.Channels,
			LanguageCode:        opts.Language,
			EnableAutomaticPunc: opts.Punctuate,
		},
		Audio: recognizeAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonSTTRecognize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/speech:recognize", bytes.NewReader(payload))
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonSTTRecognize)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("recognize request failed", slog.String("error", err.Error()))
		return "", errorsx.Wrap(err, errorsx.ReasonSTTRecognize)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		r.logger.Error("speech rate limit exceeded", slog.String("status", resp.Status))
		return "", errorsx.Wrap(resilience.RateLimitError{Provider: "googlespeech", Message: resp.Status}, errorsx.ReasonSTTRateLimit)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.Error("recognize returned error status",
			slog.String("status", resp.Status),
			slog.String("body", string(body)))
		return "", errorsx.Newf(errorsx.ReasonSTTRecognize, "recognize failed: %s", resp.Status)
	}

	var decoded recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonSTTRecognize)
	}

	transcript, ok := joinResults(decoded)
	if !ok {
		return "", errorsx.New(errorsx.ReasonSTTNoResults, "speech provider returned zero results")
	}
	return transcript, nil
}

// joinResults concatenates top alternatives; ok is false for zero segments.
func joinResults(resp recognizeResponse) (string, bool) {
	if len(resp.Results) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(resp.Results))
	for _, res := range resp.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		parts = append(parts, res.Alternatives[0].Transcript)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
