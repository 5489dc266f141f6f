// Package config owns the p90 config file: the OpenRouter credential and
// the model/sampler parameters sent with every completion request.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/p90ai/p90/internal/appdirs"
)

const apiKeyField = "openrouter_api_key"

// Config mirrors config.toml. Extra carries sampler keys the struct does
// not name so they survive a load/save round-trip and still reach the
// request payload.
type Config struct {
	OpenRouterAPIKey string
	Model            string
	Temperature      float64
	TopP             float64
	MaxTokens        int
	Extra            map[string]any
}

func Default() Config {
	return Config{
		Model:       "openai/gpt-4o-mini",
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   1024,
	}
}

// AuthHeaders returns the request headers for the configured credential,
// or nil when no API key is stored.
func (c Config) AuthHeaders() map[string]string {
	key := strings.TrimSpace(c.OpenRouterAPIKey)
	if key == "" {
		return nil
	}
	return map[string]string{
		"Authorization": "Bearer " + key,
		"Content-Type":  "application/json",
	}
}

// ModelParameters returns the payload parameters with the credential
// stripped. Zero-valued samplers are omitted so the endpoint applies its
// own defaults.
func (c Config) ModelParameters() map[string]any {
	params := map[string]any{}
	for key, value := range c.Extra {
		params[key] = value
	}
	if c.Model != "" {
		params["model"] = c.Model
	}
	if c.Temperature != 0 {
		params["temperature"] = c.Temperature
	}
	if c.TopP != 0 {
		params["top_p"] = c.TopP
	}
	if c.MaxTokens != 0 {
		params["max_tokens"] = c.MaxTokens
	}
	return params
}

func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := appdirs.EnsureConfigDir(); err != nil {
			return Config{}, "", err
		}
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	} else if err != nil {
		return Config{}, "", fmt.Errorf("could not stat config path: %w", err)
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	fields := map[string]any{}
	if err := toml.Unmarshal(raw, &fields); err != nil {
		return Config{}, fmt.Errorf("could not parse config file: %w", err)
	}

	cfg := Config{}
	cfg.OpenRouterAPIKey = takeString(fields, apiKeyField)
	cfg.Model = takeString(fields, "model")
	cfg.Temperature = takeFloat(fields, "temperature")
	cfg.TopP = takeFloat(fields, "top_p")
	cfg.MaxTokens = takeInt(fields, "max_tokens")
	if len(fields) > 0 {
		cfg.Extra = fields
	}
	return cfg, nil
}

// Save writes the config atomically with private permissions; the file
// holds a credential.
func Save(path string, cfg Config) error {
	payload, err := toml.Marshal(cfg.asMap())
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".p90-config-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not replace config file: %w", err)
	}
	return nil
}

// Reset restores the defaults while preserving an already-stored API key,
// tolerating an unreadable existing file.
func Reset(path string) (Config, error) {
	key := ""
	if existing, err := Load(path); err == nil {
		key = existing.OpenRouterAPIKey
	}
	cfg := Default()
	cfg.OpenRouterAPIKey = key
	if err := Save(path, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) asMap() map[string]any {
	fields := map[string]any{}
	for key, value := range c.Extra {
		fields[key] = value
	}
	fields[apiKeyField] = c.OpenRouterAPIKey
	fields["model"] = c.Model
	fields["temperature"] = c.Temperature
	fields["top_p"] = c.TopP
	fields["max_tokens"] = c.MaxTokens
	return fields
}

func takeString(fields map[string]any, key string) string {
	value, ok := fields[key]
	if !ok {
		return ""
	}
	delete(fields, key)
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func takeFloat(fields map[string]any, key string) float64 {
	value, ok := fields[key]
	if !ok {
		return 0
	}
	delete(fields, key)
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func takeInt(fields map[string]any, key string) int {
	value, ok := fields[key]
	if !ok {
		return 0
	}
	delete(fields, key)
	switch v := value.(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
