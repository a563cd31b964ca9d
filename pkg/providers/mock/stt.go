package mock

import (
	"context"
	"sync"

	"github.com/intervo/intervo/pkg/adapters/stt"
)

type STTConfig struct {
	Transcript string
	Err        error
}

// Recognizer is a canned STT vendor used in tests and offline demos.
// It counts calls so pipeline short-circuit behavior can be asserted.
type Recognizer struct {
	cfg STTConfig

	mu    sync.Mutex
	calls int
}

func NewRecognizer(cfg STTConfig) *Recognizer {
	if cfg.Transcript == "" && cfg.Err == nil {
		cfg.Transcript = "mock transcript"
	}
	return &Recognizer{cfg: cfg}
}

func (r *Recognizer) Name() string { return "mock_stt" }

func (r *Recognizer) Transcribe(ctx context.Context, audio []byte, opts stt.Options) (string, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.cfg.Err != nil {
		return "", r.cfg.Err
	}
	return r.cfg.Transcript, nil
}

// Calls returns how many times Transcribe was invoked.
func (r *Recognizer) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
