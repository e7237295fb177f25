// Package config loads the optional TOML file that tunes the flickernaut CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/aretw0/flickernaut/pkg/core"
)

// Config captures the CLI settings. Every field has a usable default.
type Config struct {
	SettingsPath   string
	RestartCommand []string
	LogLevel       slog.Level
	IDStyle        string
}

const (
	IDStyleRandom     = "random"
	IDStyleSequential = "sequential"
)

const defaultConfigPath = "~/.config/flickernaut/config.toml"

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: slog.LevelInfo,
		IDStyle:  IDStyleRandom,
	}
}

// Load reads the config at path, or the default location when path is
// empty. A missing file yields Default.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SettingsPath   string   `toml:"settings_path"`
		RestartCommand []string `toml:"restart_command"`
		LogLevel       string   `toml:"log_level"`
		IDStyle        string   `toml:"id_style"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.SettingsPath = strings.TrimSpace(raw.SettingsPath)

	for _, arg := range raw.RestartCommand {
		if arg = strings.TrimSpace(arg); arg != "" {
			cfg.RestartCommand = append(cfg.RestartCommand, arg)
		}
	}

	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse config: log_level: %w", err)
		}
	}

	switch style := strings.ToLower(strings.TrimSpace(raw.IDStyle)); style {
	case "":
	case IDStyleRandom, IDStyleSequential:
		cfg.IDStyle = style
	default:
		return Config{}, fmt.Errorf("parse config: unknown id_style %q", raw.IDStyle)
	}

	return cfg, nil
}

// IDGenerator returns the generator selected by IDStyle.
func (c Config) IDGenerator() core.IDGenerator {
	if c.IDStyle == IDStyleSequential {
		return core.SequentialIDs{}
	}
	return core.RandomIDs{}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
