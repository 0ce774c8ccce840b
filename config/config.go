// Package config loads the gate's tunables from a YAML file with
// environment overrides. The verification engine never reads
// configuration itself; everything is resolved here and injected.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Reward modes.
const (
	RewardModeStatic = "static"
	RewardModeJWT    = "jwt"
)

// Duration wraps time.Duration so YAML values like "500ms" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// RewardConfig selects how the completion body is produced.
type RewardConfig struct {
	Mode   string `yaml:"mode"`
	JWTKey string `yaml:"jwt_key"`
}

// Config is the full serve-time configuration.
type Config struct {
	ListenAddr     string       `yaml:"listen_addr"`
	DictionaryPath string       `yaml:"dictionary_path"`
	Threshold      uint64       `yaml:"threshold"`
	AnswerWindow   Duration     `yaml:"answer_window"`
	Secret         string       `yaml:"secret"`
	RedisURL       string       `yaml:"redis_url"`
	SessionTTL     Duration     `yaml:"session_ttl"`
	Reward         RewardConfig `yaml:"reward"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		ListenAddr:     ":3000",
		DictionaryPath: "dictionary.txt",
		Threshold:      100_000,
		AnswerWindow:   Duration(500 * time.Millisecond),
		Reward:         RewardConfig{Mode: RewardModeStatic},
	}
}

// Load reads path on top of the defaults, then applies environment
// overrides. An empty path skips the file and uses defaults only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if addr := os.Getenv("DICTGATE_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if url := os.Getenv("DICTGATE_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}
	if secret := os.Getenv("DICTGATE_SECRET"); secret != "" {
		cfg.Secret = secret
	}

	return cfg, nil
}

// Validate reports whether the configuration can serve.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if c.DictionaryPath == "" {
		return errors.New("dictionary_path is required")
	}
	if c.Threshold == 0 {
		return errors.New("threshold must be positive")
	}
	if c.AnswerWindow.Std() <= 0 {
		return errors.New("answer_window must be positive")
	}
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	switch c.Reward.Mode {
	case RewardModeStatic:
	case RewardModeJWT:
		if c.Reward.JWTKey == "" {
			return errors.New("reward.jwt_key is required in jwt mode")
		}
	default:
		return fmt.Errorf("unknown reward mode %q", c.Reward.Mode)
	}
	return nil
}
