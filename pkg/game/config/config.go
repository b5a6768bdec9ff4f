// Package config provides Viper-based configuration loading for the game harness.
package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"roguecore/pkg/engine/input"
	"roguecore/pkg/engine/pathfind"
)

// EnvPrefix is the prefix for environment variable overrides, e.g. ROGUECORE_GAME_FOV_RANGE.
const EnvPrefix = "ROGUECORE"

// GameConfig holds the tuning of the sight and pathing cores.
type GameConfig struct {
	// FOVRange is the player's sight radius in cells.
	FOVRange int `mapstructure:"fov_range"`
	// MaxPathCost bounds monster path searches, in orthogonal steps.
	MaxPathCost uint `mapstructure:"max_path_cost"`
	// Heuristic names the path search estimate: manhattan, euclidean, octagonal or roguelike.
	Heuristic string `mapstructure:"heuristic"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// LocaleConfig selects the translation catalogue.
type LocaleConfig struct {
	Dir  string `mapstructure:"dir"`
	Lang string `mapstructure:"lang"`
}

// RenderConfig holds terminal output settings.
type RenderConfig struct {
	// Color is "auto", "always" or "never".
	Color string `mapstructure:"color"`
}

// InputConfig holds key rebinding.
type InputConfig struct {
	// Bindings maps an action name (e.g. "quit", "move_north") to the single
	// key that replaces its built-in keys.
	Bindings map[string]string `mapstructure:"bindings"`
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
	Locale  LocaleConfig  `mapstructure:"locale"`
	Render  RenderConfig  `mapstructure:"render"`
	Input   InputConfig   `mapstructure:"input"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Game.FOVRange < 0 {
		errs = append(errs, fmt.Sprintf("game.fov_range must be >= 0, got %d", c.Game.FOVRange))
	}
	if c.Game.MaxPathCost == 0 {
		errs = append(errs, "game.max_path_cost must be >= 1")
	}
	if _, err := pathfind.HeuristicByName(c.Game.Heuristic); err != nil {
		errs = append(errs, fmt.Sprintf("game.heuristic must be one of [%s], got %q",
			strings.Join(pathfind.HeuristicNames(), ", "), c.Game.Heuristic))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", c.Logging.Format))
	}

	if c.Locale.Lang == "" {
		errs = append(errs, "locale.lang must not be empty")
	}

	validColor := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColor[c.Render.Color] {
		errs = append(errs, fmt.Sprintf("render.color must be one of [auto, always, never], got %q", c.Render.Color))
	}

	boundTo := make(map[string]string)
	for _, action := range slices.Sorted(maps.Keys(c.Input.Bindings)) {
		code := c.Input.Bindings[action]
		if _, ok := input.ParseAction(action); !ok {
			errs = append(errs, fmt.Sprintf("input.bindings: unknown action %q (want one of [%s])",
				action, strings.Join(input.ActionKeys(), ", ")))
		}
		if code == "" {
			errs = append(errs, fmt.Sprintf("input.bindings.%s must not be empty", action))
			continue
		}
		if other, ok := boundTo[code]; ok {
			errs = append(errs, fmt.Sprintf("input.bindings: key %q bound to both %s and %s", code, other, action))
		}
		boundTo[code] = action
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment overrides are present.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.fov_range", 10)
	v.SetDefault("game.max_path_cost", 25)
	v.SetDefault("game.heuristic", "roguelike")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("locale.dir", "locales")
	v.SetDefault("locale.lang", "en_GB")

	v.SetDefault("render.color", "auto")
}
