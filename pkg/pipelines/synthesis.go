package pipelines

import (
	"context"
	"log/slog"

	"github.com/intervo/intervo/pkg/adapters/tts"
	"github.com/intervo/intervo/pkg/configutil"
	"github.com/intervo/intervo/pkg/errorsx"
	"github.com/intervo/intervo/pkg/lang"
	"github.com/intervo/intervo/pkg/logging"
	"github.com/intervo/intervo/pkg/result"
)

// artifactSaver is satisfied by artifacts.Store.
type artifactSaver interface {
	Save(audio []byte, ext string) (string, error)
}

// Synthesis renders text to a uniquely named, publicly servable audio
// artifact. Concurrent runs are independent; there is no shared mutable
// state between invocations.
type Synthesis struct {
	synth  tts.Synthesizer
	store  artifactSaver
	logger *slog.Logger
}

func NewSynthesis(synth tts.Synthesizer, store artifactSaver) *Synthesis {
	return &Synthesis{
		synth:  synth,
		store:  store,
		logger: logging.NewComponentLogger(slog.Default(), "synthesis_pipeline"),
	}
}

// Run synthesizes text at the given speaking rate and returns the
// public-relative path of the stored artifact.
func (p *Synthesis) Run(ctx context.Context, text, language string, rate float64) result.Result[string] {
	audio, err := p.synth.Synthesize(ctx, text, tts.Options{
		Language:     lang.Normalize(language),
		SpeakingRate: configutil.FloatValue(rate, 1.0),
	})
	if err != nil {
		p.logger.Error("synthesis failed",
			slog.String("provider", p.synth.Name()),
			slog.String("reason", string(errorsx.Reason(err))))
		return result.Fail[string](err)
	}

	path, err := p.store.Save(audio, ".mp3")
	if err != nil {
		p.logger.Error("artifact write failed",
			slog.String("reason", string(errorsx.Reason(err))))
		return result.Fail[string](err)
	}
	return result.Ok(path)
}
