package googlespeech

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/intervo/intervo/pkg/adapters/stt"
	"github.com/intervo/intervo/pkg/errorsx"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) { return string(s), nil }

func newTestRecognizer(baseURL string) *Recognizer {
	return &Recognizer{
		cfg:    Config{BaseURL: baseURL},
		tokens: staticToken("test-token"),
		client: &http.Client{Timeout: 5 * time.Second},
		logger: slog.Default(),
	}
}

func TestTranscribeJoinsTopAlternatives(t *testing.T) {
	var gotConfig recognizeConfig
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Fatalf("missing bearer token")
		}
		var req recognizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotConfig = req.Config
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"alternatives": []map[string]any{{"transcript": "first segment"}, {"transcript": "ignored"}}},
				{"alternatives": []map[string]any{{"transcript": "second segment"}}},
			},
		})
	}))
	defer srv.Close()

	rec := newTestRecognizer(srv.URL)
	out, err := rec.Transcribe(context.Background(), []byte("opus"), stt.RecordingOptions("en"))
	if err != nil {
		t.Fatalf("Transcribe error: %v", err)
	}
	if out != "first segment\nsecond segment" {
		t.Fatalf("unexpected transcript: %q", out)
	}
	if gotConfig.Encoding != "WEBM_OPUS" || gotConfig.SampleRateHertz != 48000 || gotConfig.AudioChannelCount != 1 {
		t.Fatalf("unexpected recognition config: %+v", gotConfig)
	}
	if !gotConfig.EnableAutomaticPunc {
		t.Fatalf("punctuation must be enabled")
	}
}

func TestTranscribeZeroResultsIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	rec := newTestRecognizer(srv.URL)
	out, err := rec.Transcribe(context.Background(), []byte("opus"), stt.RecordingOptions("en"))
	if err == nil {
		t.Fatalf("zero results must fail, got transcript %q", out)
	}
	if !errorsx.HasReason(err, errorsx.ReasonSTTNoResults) {
		t.Fatalf("expected no-results reason, got %s", errorsx.Reason(err))
	}
}

func TestTranscribeRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rec := newTestRecognizer(srv.URL)
	if _, err := rec.Transcribe(context.Background(), []byte("opus"), stt.RecordingOptions("en")); !errorsx.HasReason(err, errorsx.ReasonSTTRateLimit) {
		t.Fatalf("expected rate limit reason, got %v", err)
	}
}
