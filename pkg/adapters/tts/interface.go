package tts

import "context"

// Synthesizer defines the contract for any batch TTS vendor implementation.
type Synthesizer interface {
	// Name returns adapter name for logging/metrics.
	Name() string
	// Synthesize renders text to a playable audio payload (MP3).
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
}

// Options contains vendor-agnostic synthesis parameters.
type Options struct {
	Language     string
	SpeakingRate float64
}
