// Package pipelines composes provider clients and transform stages into
// short-lived, independently failing chains. Each invocation is
// self-contained: stages run strictly sequentially, a stage failure skips
// every later provider call, and failures never escape as panics or raw
// errors past the Result boundary.
package pipelines

import (
	"context"
	"log/slog"

	"github.com/intervo/intervo/pkg/adapters/stt"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/lang"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/media"
	"github.com/intervo/intervo/pkg/result"
)

// converter is satisfied by media.Converter.
type converter interface {
	ToAudio(ctx context.Context, blob media.Blob) (media.Blob, error)
}

// formalizer is satisfied by transforms.Stages.
type formalizer interface {
	Formalize(ctx context.Context, text, language string) (string, error)
}

// Transcription turns recorded audio or video into a cleaned transcript:
// convert (skipped for audio input) -> recognize -> formalize. One-shot per
// invocation; retries belong to the caller.
type Transcription struct {
	converter  converter
	recognizer stt.Recognizer
	formalizer formalizer
	logger     *slog.Logger
}

func NewTranscription(conv converter, rec stt.Recognizer, form formalizer) *Transcription {
	return &Transcription{
		converter:  conv,
		recognizer: rec,
		formalizer: form,
		logger:     logging.NewComponentLogger(slog.Default(), "transcription_pipeline"),
	}
}

// Run executes the full chain for one recording.
func (p *Transcription) Run(ctx context.Context, blob media.Blob, language string) result.Result[string] {
	language = lang.Normalize(language)

	// Audio goes straight to recognition; video and untagged containers
	// pass through ffmpeg first.
	audio := blob
	if !blob.IsAudio() {
		converted, err := p.converter.ToAudio(ctx, blob)
		if err != nil {
			// Conversion failed; recognition is never attempted.
			p.logger.Error("conversion failed",
				slog.String("stage", "converting"),
				slog.String("reason", string(errorsx.Reason(err))))
			return result.Fail[string](err)
		}
		audio = converted
	}

	transcript, err := p.recognizer.Transcribe(ctx, audio.Data, stt.RecordingOptions(language))
	if err != nil {
		p.logger.Error("recognition failed",
			slog.String("stage", "transcribing"),
			slog.String("provider", p.recognizer.Name()),
			slog.String("reason", string(errorsx.Reason(err))))
		return result.Fail[string](err)
	}

	formalized, err := p.formalizer.Formalize(ctx, transcript, language)
	if err != nil {
		// The run fails as a whole; the raw transcript is not returned.
		p.logger.Error("formalization failed",
			slog.String("stage", "formalizing"),
			slog.String("reason", string(errorsx.Reason(err))))
		return result.Fail[string](err)
	}

	return result.Ok(formalized)
}
