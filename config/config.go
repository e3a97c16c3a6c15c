// Package config loads registry settings from defaults and CHAMELEON_* environment
// variables.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CHAMELEON_"

type Config struct {
	Transform TransformConfig `koanf:"transform"`
	Registry  RegistryConfig  `koanf:"registry"`
	Log       LogConfig       `koanf:"log"`
}

// TransformConfig holds the default runtime flags of every transform call.
type TransformConfig struct {
	AdaptMismatch bool `koanf:"adapt_mismatch"`
	SkipNull      bool `koanf:"skip_null"`
}

// RegistryConfig tunes bulk registration.
type RegistryConfig struct {
	Workers int `koanf:"workers" validate:"min=1,max=1024"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `koanf:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{Workers: 8},
		Log:      LogConfig{Level: "info"},
	}
}

// Load layers the defaults and the environment, then validates the result.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks cfg against its validation tags.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// transformEnv maps CHAMELEON_TRANSFORM_SKIP_NULL to transform.skip_null.
func transformEnv(key, value string) (string, any) {
	return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
}

func transformEnvKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_'
	})

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + "." + strings.Join(parts[1:], "_")
	}
}
