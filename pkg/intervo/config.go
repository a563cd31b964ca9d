package intervo

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	LogFormat   string          `mapstructure:"log_format"`
	Languages   LanguageConfig  `mapstructure:"languages"`
	Vendors     VendorsConfig   `mapstructure:"vendors"`
	Google      GoogleConfig    `mapstructure:"google"`
	Artifacts   ArtifactsConfig `mapstructure:"artifacts"`
	Privacy     PrivacyConfig   `mapstructure:"privacy"`
}

type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type VendorsConfig struct {
	STT    VendorConfig `mapstructure:"stt"`
	TTS    VendorConfig `mapstructure:"tts"`
	Vision VendorConfig `mapstructure:"vision"`
	GenAI  VendorConfig `mapstructure:"genai"`
}

// GoogleConfig is the process-wide service account identity shared by the
// Google provider clients. Resolved once at load, never mutated. Values are
// deliberately not validated here: a missing credential fails at first
// provider use, so unrelated pipelines keep working.
type GoogleConfig struct {
	ClientEmail string `mapstructure:"client_email"`
	PrivateKey  string `mapstructure:"private_key"`
	ProjectID   string `mapstructure:"project_id"`
}

type ArtifactsConfig struct {
	Dir            string `mapstructure:"dir"`
	PublicPrefix   string `mapstructure:"public_prefix"`
	RetentionHours int    `mapstructure:"retention_hours"`
}

type LanguageConfig struct {
	Default string `mapstructure:"default"`
}

type PrivacyConfig struct {
	RedactPayloads bool `mapstructure:"redact_payloads"`
}

func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("languages.default", "en")
	v.SetDefault("vendors.stt.provider", "google")
	v.SetDefault("vendors.tts.provider", "google")
	v.SetDefault("vendors.vision.provider", "google")
	v.SetDefault("vendors.genai.provider", "gemini")
	v.SetDefault("artifacts.dir", "public/tts-audio")
	v.SetDefault("artifacts.public_prefix", "tts-audio")
	v.SetDefault("artifacts.retention_hours", 0)
	v.SetDefault("privacy.redact_payloads", true)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	expandEnvStrings(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Vendors.STT.Provider) == "" {
		return fmt.Errorf("vendors.stt.provider is required")
	}
	if strings.TrimSpace(c.Vendors.TTS.Provider) == "" {
		return fmt.Errorf("vendors.tts.provider is required")
	}
	if strings.TrimSpace(c.Vendors.Vision.Provider) == "" {
		return fmt.Errorf("vendors.vision.provider is required")
	}
	if strings.TrimSpace(c.Vendors.GenAI.Provider) == "" {
		return fmt.Errorf("vendors.genai.provider is required")
	}
	return nil
}

func expandEnvStrings(cfg *Config) {
	expandValue(reflect.ValueOf(cfg))
	cfg.Vendors.STT.Settings = expandSettings(cfg.Vendors.STT.Settings)
	cfg.Vendors.TTS.Settings = expandSettings(cfg.Vendors.TTS.Settings)
	cfg.Vendors.Vision.Settings = expandSettings(cfg.Vendors.Vision.Settings)
	cfg.Vendors.GenAI.Settings = expandSettings(cfg.Vendors.GenAI.Settings)
}

func expandSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return nil
	}
	for k, v := range settings {
		settings[k] = expandAny(v)
	}
	return settings
}

func expandAny(v any) any {
	switch val := v.(type) {
	case string:
		return os.ExpandEnv(val)
	case []any:
		for i := range val {
			val[i] = expandAny(val[i])
		}
		return val
	case map[string]any:
		for k, v := range val {
			val[k] = expandAny(v)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = expandAny(v)
		}
		return out
	default:
		return v
	}
}

func expandValue(v reflect.Value) {
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		expandValue(v.Elem())
		return
	}
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			expandValue(v.Field(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(os.ExpandEnv(v.String()))
		}
	}
}
