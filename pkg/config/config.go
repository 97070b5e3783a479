// Package config loads gamenote settings from a YAML or TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
)

// Environment variables consulted by Load.
const (
	EnvConfig       = "GAMENOTE_CONFIG"
	EnvClientID     = "IGDB_CLIENT_ID"
	EnvClientSecret = "IGDB_CLIENT_SECRET"
	EnvVault        = "GAMENOTE_VAULT"
)

const localConfigFile = ".gamenote.yaml"

// Load reads settings from path on top of gamenote.DefaultSettings and then
// applies environment overrides. An empty path searches the default
// locations; finding nothing there is not an error.
func Load(path string) (gamenote.Settings, error) {
	settings := gamenote.DefaultSettings()

	resolved, err := resolvePath(path)
	if err != nil {
		return gamenote.Settings{}, err
	}
	if resolved != "" {
		if err := decodeFile(resolved, &settings); err != nil {
			return gamenote.Settings{}, err
		}
	}

	applyEnv(&settings)
	return settings, nil
}

// Candidates returns the default config locations in search order.
func Candidates() []string {
	var out []string
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		out = append(out, env)
	}
	out = append(out, localConfigFile)
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "gamenote")
		out = append(out, filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.toml"))
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", fmt.Errorf("open config: %w", err)
		}
		return expanded, nil
	}

	for _, candidate := range Candidates() {
		expanded, err := expandPath(candidate)
		if err != nil {
			continue
		}
		if _, err := os.Stat(expanded); err == nil {
			return expanded, nil
		}
	}
	return "", nil
}

func decodeFile(path string, settings *gamenote.Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, settings); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, settings); err != nil {
			var decodeErr *toml.DecodeError
			if errors.As(err, &decodeErr) {
				row, col := decodeErr.Position()
				return fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
			}
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return &gamenote.ConfigError{Field: "config", Details: "unsupported config format " + filepath.Ext(path)}
	}
	return nil
}

func applyEnv(settings *gamenote.Settings) {
	if v := strings.TrimSpace(os.Getenv(EnvClientID)); v != "" {
		settings.ClientID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvClientSecret)); v != "" {
		settings.ClientSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVault)); v != "" {
		settings.Vault = v
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
