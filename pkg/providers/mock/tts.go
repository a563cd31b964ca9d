package mock

import (
	"context"
	"sync"

	"github.com/intervo/intervo/pkg/adapters/tts"
)

type TTSConfig struct {
	Audio []byte
	Err   error
}

// Synthesizer is a canned TTS vendor used in tests and offline demos.
type Synthesizer struct {
	cfg TTSConfig

	mu    sync.Mutex
	calls int
}

func NewSynthesizer(cfg TTSConfig) *Synthesizer {
	if cfg.Audio == nil && cfg.Err == nil {
		cfg.Audio = []byte("mock mp3 payload")
	}
	return &Synthesizer{cfg: cfg}
}

func (s *Synthesizer) Name() string { return "mock_tts" }

func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts tts.Options) ([]byte, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.cfg.Err != nil {
		return nil, s.cfg.Err
	}
	return s.cfg.Audio, nil
}

// Calls returns how many times Synthesize was invoked.
func (s *Synthesizer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
