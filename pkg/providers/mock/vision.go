package mock

import (
	"context"
	"sync"

	"github.com/intervo/intervo/pkg/adapters/vision"
)

type VisionConfig struct {
	Labels []vision.Label
	Err    error
}

// Labeler is a canned vision vendor used in tests and offline demos.
// A nil label set models the provider answering with zero labels.
type Labeler struct {
	cfg VisionConfig

	mu    sync.Mutex
	calls int
}

func NewLabeler(cfg VisionConfig) *Labeler {
	return &Labeler{cfg: cfg}
}

func (l *Labeler) Name() string { return "mock_vision" }

func (l *Labeler) AnnotateLabels(ctx context.Context, base64Image string) ([]vision.Label, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if l.cfg.Err != nil {
		return nil, l.cfg.Err
	}
	return l.cfg.Labels, nil
}

// Calls returns how many times AnnotateLabels was invoked.
func (l *Labeler) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
