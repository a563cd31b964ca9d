package intervo

import (
	"fmt"
	"strings"
	"time"

	"github.com/intervo/intervo/pkg/adapters/genai"
	"github.com/intervo/intervo/pkg/adapters/stt"
	"github.com/intervo/intervo/pkg/adapters/tts"
	"github.com/intervo/intervo/pkg/adapters/vision"
	"github.com/intervo/intervo/pkg/configutil"
	"github.com/intervo/intervo/pkg/providers/deepgram"
	"github.com/intervo/intervo/pkg/providers/gemini"
	"github.com/intervo/intervo/pkg/providers/googleauth"
	"github.com/intervo/intervo/pkg/providers/googlespeech"
	"github.com/intervo/intervo/pkg/providers/googletts"
	"github.com/intervo/intervo/pkg/providers/googlevision"
	"github.com/intervo/intervo/pkg/providers/mock"
)

// Deps carries shared, read-only provider dependencies built once per
// engine. The Google token source is shared so every Google client reuses
// one cached OAuth token.
type Deps struct {
	GoogleTokens *googleauth.TokenSource
}

type STTFactory func(cfg Config, deps Deps) (stt.Recognizer, error)
type TTSFactory func(cfg Config, deps Deps) (tts.Synthesizer, error)
type VisionFactory func(cfg Config, deps Deps) (vision.Labeler, error)
type GenAIFactory func(cfg Config, deps Deps) (genai.Generator, error)

type ProviderRegistry struct {
	stt    map[string]STTFactory
	tts    map[string]TTSFactory
	vision map[string]VisionFactory
	genai  map[string]GenAIFactory
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		stt:    make(map[string]STTFactory),
		tts:    make(map[string]TTSFactory),
		vision: make(map[string]VisionFactory),
		genai:  make(map[string]GenAIFactory),
	}
}

func (r *ProviderRegistry) RegisterSTT(name string, factory STTFactory) {
	r.stt[normalizeProvider(name)] = factory
}

func (r *ProviderRegistry) RegisterTTS(name string, factory TTSFactory) {
	r.tts[normalizeProvider(name)] = factory
}

func (r *ProviderRegistry) RegisterVision(name string, factory VisionFactory) {
	r.vision[normalizeProvider(name)] = factory
}

func (r *ProviderRegistry) RegisterGenAI(name string, factory GenAIFactory) {
	r.genai[normalizeProvider(name)] = factory
}

func (r *ProviderRegistry) BuildSTT(provider string, cfg Config, deps Deps) (stt.Recognizer, error) {
	fn := r.stt[normalizeProvider(provider)]
	if fn == nil {
		return nil, fmt.Errorf("stt provider not registered: %s", provider)
	}
	return fn(cfg, deps)
}

func (r *ProviderRegistry) BuildTTS(provider string, cfg Config, deps Deps) (tts.Synthesizer, error) {
	fn := r.tts[normalizeProvider(provider)]
	if fn == nil {
		return nil, fmt.Errorf("tts provider not registered: %s", provider)
	}
	return fn(cfg, deps)
}

func (r *ProviderRegistry) BuildVision(provider string, cfg Config, deps Deps) (vision.Labeler, error) {
	fn := r.vision[normalizeProvider(provider)]
	if fn == nil {
		return nil, fmt.Errorf("vision provider not registered: %s", provider)
	}
	return fn(cfg, deps)
}

func (r *ProviderRegistry) BuildGenAI(provider string, cfg Config, deps Deps) (genai.Generator, error) {
	fn := r.genai[normalizeProvider(provider)]
	if fn == nil {
		return nil, fmt.Errorf("genai provider not registered: %s", provider)
	}
	return fn(cfg, deps)
}

func normalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultRegistry wires every built-in vendor.
func DefaultRegistry() *ProviderRegistry {
	r := NewProviderRegistry()

	r.RegisterSTT("google", func(cfg Config, deps Deps) (stt.Recognizer, error) {
		var settings struct {
			BaseURL string `mapstructure:"base_url"`
		}
		if err := configutil.DecodeSettings(cfg.Vendors.STT.Settings, &settings); err != nil {
			return nil, err
		}
		return googlespeech.New(googlespeech.Config{BaseURL: settings.BaseURL}, deps.GoogleTokens), nil
	})
	r.RegisterSTT("deepgram", func(cfg Config, deps Deps) (stt.Recognizer, error) {
		var settings struct {
			APIKey string `mapstructure:"api_key"`
			Model  string `mapstructure:"model"`
		}
		if err := configutil.DecodeSettings(cfg.Vendors.STT.Settings, &settings); err != nil {
			return nil, err
		}
		if err := configutil.RequireString(settings.APIKey, "vendors.stt.settings.api_key"); err != nil {
			return nil, err
		}
		return deepgram.New(deepgram.Config{APIKey: settings.APIKey, Model: settings.Model}), nil
	})
	r.RegisterSTT("mock", func(cfg Config, deps Deps) (stt.Recognizer, error) {
		var settings struct {
			Transcript string `mapstructure:"transcript"`
		}
		if err := configutil.DecodeSettings(cfg.Vendors.STT.Settings, &settings); err != nil {
			return nil, err
		}
		return mock.NewRecognizer(mock.STTConfig{Transcript: settings.Transcript}), nil
	})

	r.RegisterTTS("google", func(cfg Config, deps Deps) (tts.Synthesizer, error) {
		var settings struct {
			BaseURL string `mapstructure:"base_url"`
		}
		if err := configutil.DecodeSettings(cfg.Vendors.TTS.Settings, &settings); err != nil {
			return nil, err
		}
		return googletts.New(googletts.Config{BaseURL: settings.BaseURL}, deps.GoogleTokens), nil
	})
	r.RegisterTTS("mock", func(cfg Config, deps Deps) (tts.Synthesizer, error) {
		return mock.NewSynthesizer(mock.TTSConfig{}), nil
	})

	r.RegisterVision("google", func(cfg Config, deps Deps) (vision.Labeler, error) {
		var settings struct {
			BaseURL string `mapstructure:"base_url"`
		}
		if err := configutil.DecodeSettings(cfg.Vendors.Vision.Settings, &settings); err != nil {
			return nil, err
		}
		return googlevision.New(googlevision.Config{BaseURL: settings.BaseURL}, deps.GoogleTokens), nil
	})
	r.RegisterVision("mock", func(cfg Config, deps Deps) (vision.Labeler, error) {
		return mock.NewLabeler(mock.VisionConfig{}), nil
	})

	r.RegisterGenAI("gemini", func(cfg Config, deps Deps) (genai.Generator, error) {
		var settings struct {
			APIKey            string `mapstructure:"api_key"`
			Model             string `mapstructure:"model"`
			BaseURL           string `mapstructure:"base_url"`
			UseCircuitBreaker bool   `mapstructure:"use_circuit_breaker"`
			CircuitThreshold  int    `mapstructure:"circuit_threshold"`
			CircuitCooldownMS int    `mapstructure:"circuit_cooldown_ms"`
		}
		if err := configutil.DecodeSettings(cfg.Vendors.GenAI.Settings, &settings); err != nil {
			return nil, err
		}
		if err := configutil.RequireString(settings.APIKey, "vendors.genai.settings.api_key"); err != nil {
			return nil, err
		}
		return gemini.New(gemini.Config{
			APIKey:            settings.APIKey,
			Model:             settings.Model,
			BaseURL:           settings.BaseURL,
			UseCircuitBreaker: settings.UseCircuitBreaker,
			CircuitThreshold:  settings.CircuitThreshold,
			CircuitCooldown:   time.Duration(settings.CircuitCooldownMS) * time.Millisecond,
		}), nil
	})
	r.RegisterGenAI("mock", func(cfg Config, deps Deps) (genai.Generator, error) {
		var settings struct {
			ResponseText string `mapstructure:"response_text"`
		}
		if err := configutil.DecodeSettings(cfg.Vendors.GenAI.Settings, &settings); err != nil {
			return nil, err
		}
		return mock.NewGenerator(mock.GenAIConfig{ResponseText: settings.ResponseText}), nil
	})

	return r
}
