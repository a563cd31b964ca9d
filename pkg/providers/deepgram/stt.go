package deepgram

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	api "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	client "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"

	"github.com/intervo/intervo/pkg/adapters/stt"
	"github.com/intervo/intervo/pkg/configutil"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/lang"
	"github.com/intervo/intervo/pkg/logging"
)

type Config struct {
	APIKey string
	Model  string
}

// Recognizer is the alternate batch STT vendor, backed by Deepgram's
// prerecorded transcription API. Same contract as the Google recognizer:
// zero transcribed segments is a failure, never an empty-string success.
type Recognizer struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config) *Recognizer {
	cfg.Model = configutil.StringValue(cfg.Model, "nova-2")
	return &Recognizer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(slog.Default(), "deepgram_stt"),
	}
}

func (r *Recognizer) Name() string { return "deepgram" }

// Transcribe sends the audio payload to the prerecorded endpoint. The
// container describes its own encoding, so only model, language and
// punctuation options are forwarded.
func (r *Recognizer) Transcribe(ctx context.Context, audio []byte, opts stt.Options) (string, error) {
	if len(audio) == 0 {
		return "", errorsx.New(errorsx.ReasonSTTRecognize, "empty audio payload")
	}

	c := client.NewREST(r.cfg.APIKey, &interfaces.ClientOptions{})
	dg := api.New(c)

	options := &interfaces.PreRecordedTranscriptionOptions{
		Model:       r.cfg.Model,
		Language:    lang.Base(opts.Language),
		Punctuate:   opts.Punctuate,
		SmartFormat: true,
	}

	resp, err := dg.FromStream(ctx, bytes.NewReader(audio), options)
	if err != nil {
		r.logger.Error("prerecorded transcription failed", slog.String("error", err.Error()))
		return "", errorsx.Wrap(err, errorsx.ReasonSTTRecognize)
	}

	parts := make([]string, 0, 1)
	for _, channel := range resp.Results.Channels {
		if len(channel.Alternatives) == 0 {
			continue
		}
		if transcript := strings.TrimSpace(channel.Alternatives[0].Transcript); transcript != "" {
			parts = append(parts, transcript)
		}
	}
	if len(parts) == 0 {
		return "", errorsx.New(errorsx.ReasonSTTNoResults, "speech provider returned zero results")
	}
	return strings.Join(parts, "\n"), nil
}
