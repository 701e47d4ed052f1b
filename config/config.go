// Package config loads the settings of a plantation session from a YAML file
// overlaid with PLANTATION_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PLANTATION_"

// Seat policies understood by the driver. Lua seats are written "lua:<path>".
const (
	PolicyRandom = "random"
	PolicyHuman  = "human"
	PolicyLua    = "lua:"
)

// Player is one seat at the table.
type Player struct {
	Name   string `yaml:"name"`
	Policy string `yaml:"policy"`
}

type Config struct {
	Players   []Player `yaml:"players"`
	Seed      int64    `yaml:"seed" env:"SEED"`
	Shuffle   bool     `yaml:"shuffle" env:"SHUFFLE"`
	Cap       int      `yaml:"cap" env:"CAP"`
	Games     int      `yaml:"games" env:"GAMES"`
	SaveDir   string   `yaml:"save_dir" env:"SAVE_DIR"`
	DBPath    string   `yaml:"db_path" env:"DB_PATH"`
	LogLevel  string   `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string   `yaml:"log_format" env:"LOG_FORMAT"`
}

// Default is three random seats, one game, no archive.
func Default() Config {
	return Config{
		Players: []Player{
			{Name: "Aa", Policy: PolicyRandom},
			{Name: "Ba", Policy: PolicyRandom},
			{Name: "Ca", Policy: PolicyRandom},
		},
		Shuffle:   true,
		Cap:       20,
		Games:     1,
		SaveDir:   defaultSaveDir(),
		LogLevel:  "info",
		LogFormat: "console",
	}
}

func defaultSaveDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "saves"
	}
	return filepath.Join(home, ".plantation", "saves")
}

// Load reads path over the defaults, applies the environment and validates
// the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PLANTATION_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Names returns the seat names in configured order.
func (c Config) Names() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}

// Validate checks the seats and the ranges of the numeric settings.
func (c Config) Validate() error {
	if n := len(c.Players); n < 3 || n > 5 {
		return fmt.Errorf("need 3 to 5 players, got %d", n)
	}
	seen := make(map[string]bool, len(c.Players))
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has no name", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if err := validPolicy(p.Policy); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
	}
	if c.Cap < 0 {
		return fmt.Errorf("cap must not be negative, got %d", c.Cap)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", c.Games)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	}
	return nil
}

func validPolicy(policy string) error {
	switch {
	case policy == PolicyRandom, policy == PolicyHuman:
		return nil
	case strings.HasPrefix(policy, PolicyLua) && len(policy) > len(PolicyLua):
		return nil
	default:
		return fmt.Errorf("unknown policy %q (want random, human or lua:<path>)", policy)
	}
}
