package stt

import "context"

// Recognizer defines the contract for any batch STT vendor implementation.
type Recognizer interface {
	// Name returns adapter name for logging/metrics.
	Name() string
	// Transcribe converts one recorded audio payload into text.
	// A provider response with zero result segments is a failure,
	// never an empty-string success.
	Transcribe(ctx context.Context, audio []byte, opts Options) (string, error)
}

// Options contains vendor-agnostic recognition parameters.
type Options struct {
	Language   string
	Encoding   string
	SampleRate int
	Channels   int
	Punctuate  bool
}

// RecordingOptions returns the fixed parameters the interview recorder
// produces: single-channel WEBM/Opus at 48 kHz with punctuation enabled.
func RecordingOptions(language string) Options {
	return Options{
		Language:   language,
		Encoding:   "WEBM_OPUS",
		SampleRate: 48000,
		Channels:   1,
		Punctuate:  true,
	}
}
