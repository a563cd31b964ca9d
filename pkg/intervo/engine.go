// Package intervo assembles provider clients, transform stages and
// pipelines into one engine exposing the media processing operations used
// by the interview application.
package intervo

import (
	"context"
	"log/slog"
	"time"

	"github.com/intervo/intervo/pkg/adapters/genai"
	"github.com/intervo/intervo/pkg/adapters/vision"
	"github.com/intervo/intervo/pkg/artifacts"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/lang"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/media"
	"github.com/intervo/intervo/pkg/pipelines"
	"github.com/intervo/intervo/pkg/providers/googleauth"
	"github.com/intervo/intervo/pkg/redact"
	"github.com/intervo/intervo/pkg/result"
	"github.com/intervo/intervo/pkg/transforms"
)

// Engine is the single entry point for the media processing layer.
//
// It is built once at process start and is safe for concurrent use: every
// pipeline invocation is self-contained, and the only shared state is
// read-only configuration and stateless HTTP clients.
type Engine struct {
	cfg    Config
	stages *transforms.Stages

	transcription *pipelines.Transcription
	captioning    *pipelines.Captioning
	synthesis     *pipelines.Synthesis

	labeler vision.Labeler
	store   *artifacts.Store
	logger  *slog.Logger
}

// NewEngine builds providers from the config through the registry and
// wires the pipelines. Provider credentials are not validated here; a
// missing credential surfaces at the first call that needs it.
func NewEngine(cfg Config, registry *ProviderRegistry) (*Engine, error) {
	redact.SetEnabled(cfg.Privacy.RedactPayloads)

	deps := Deps{
		GoogleTokens: googleauth.NewTokenSource(googleauth.Credentials{
			ClientEmail: cfg.Google.ClientEmail,
			PrivateKey:  cfg.Google.PrivateKey,
			ProjectID:   cfg.Google.ProjectID,
		}),
	}

	recognizer, err := registry.BuildSTT(cfg.Vendors.STT.Provider, cfg, deps)
	if err != nil {
		return nil, err
	}
	synthesizer, err := registry.BuildTTS(cfg.Vendors.TTS.Provider, cfg, deps)
	if err != nil {
		return nil, err
	}
	labeler, err := registry.BuildVision(cfg.Vendors.Vision.Provider, cfg, deps)
	if err != nil {
		return nil, err
	}
	generator, err := registry.BuildGenAI(cfg.Vendors.GenAI.Provider, cfg, deps)
	if err != nil {
		return nil, err
	}

	stages := transforms.New(generator)
	store := artifacts.NewStore(cfg.Artifacts.Dir, cfg.Artifacts.PublicPrefix)

	return &Engine{
		cfg:           cfg,
		stages:        stages,
		transcription: pipelines.NewTranscription(media.NewConverter(), recognizer, stages),
		captioning:    pipelines.NewCaptioning(stages),
		synthesis:     pipelines.NewSynthesis(synthesizer, store),
		labeler:       labeler,
		store:         store,
		logger:        logging.NewComponentLogger(slog.Default(), "engine"),
	}, nil
}

// Transcribe converts a recorded audio or video blob into a formalized
// transcript.
func (e *Engine) Transcribe(ctx context.Context, blob media.Blob, language string) result.Result[string] {
	return e.transcription.Run(ctx, blob, e.language(language))
}

// Synthesize renders text to a stored audio artifact and returns its
// public-relative path.
func (e *Engine) Synthesize(ctx context.Context, text, language string, rate float64) result.Result[string] {
	return e.synthesis.Run(ctx, text, e.language(language), rate)
}

// Translate produces a meaning-preserving translation.
func (e *Engine) Translate(ctx context.Context, text, source, target string) result.Result[string] {
	out, err := e.stages.Translate(ctx, text, source, target)
	if err != nil {
		return result.Fail[string](err)
	}
	return result.Ok(out)
}

// Formalize corrects grammar and punctuation without changing meaning.
func (e *Engine) Formalize(ctx context.Context, text, language string) result.Result[string] {
	out, err := e.stages.Formalize(ctx, text, e.language(language))
	if err != nil {
		return result.Fail[string](err)
	}
	return result.Ok(out)
}

// Rephrase simplifies text for the given disability profile.
func (e *Engine) Rephrase(ctx context.Context, text, language string, disabilities []string) result.Result[string] {
	out, err := e.stages.Rephrase(ctx, text, e.language(language), disabilities)
	if err != nil {
		return result.Fail[string](err)
	}
	return result.Ok(out)
}

// CaptionFromLabels produces one sentence synthesizing a label set. Its
// failure signal is the fixed sentinel string, not an absent value.
func (e *Engine) CaptionFromLabels(ctx context.Context, labels []string) string {
	out, err := e.stages.CaptionFromLabels(ctx, labels)
	if err != nil {
		return genai.EmptyCompletion
	}
	return out
}

// DescribeImage produces at most one short sentence about a base64 image
// in the context of a task. Its failure signal is the empty string.
func (e *Engine) DescribeImage(ctx context.Context, base64Image, task string) string {
	out, err := e.stages.DescribeImageInContext(ctx, base64Image, task)
	if err != nil {
		return ""
	}
	return out
}

// AnnotateImage runs vision labeling over a base64 image and assembles the
// label sentence. Zero labels is a success with the fixed no-labels
// sentence; only provider errors fail.
func (e *Engine) AnnotateImage(ctx context.Context, base64Image string) result.Result[string] {
	labels, err := e.labeler.AnnotateLabels(ctx, base64Image)
	if err != nil {
		e.logger.Error("vision annotation failed",
			slog.String("provider", e.labeler.Name()),
			slog.String("reason", string(errorsx.Reason(err))))
		return result.Fail[string](err)
	}
	return result.Ok(vision.DescribeLabels(labels))
}

// CaptionImageURL fetches a remote image and describes it for the task.
// The worst observable outcome is an empty caption.
func (e *Engine) CaptionImageURL(ctx context.Context, imageURL, task string) string {
	return e.captioning.Run(ctx, imageURL, task)
}

// PurgeArtifacts removes synthesized audio older than maxAge. Retention is
// the host's explicit decision; nothing purges implicitly.
func (e *Engine) PurgeArtifacts(maxAge time.Duration) (int, error) {
	return e.store.Purge(maxAge)
}

func (e *Engine) language(tag string) string {
	if tag == "" {
		tag = e.cfg.Languages.Default
	}
	return lang.Normalize(tag)
}
