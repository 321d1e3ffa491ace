package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/skyfire-core/internal/show"
)

// Config is the root configuration structure for Skyfire Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Generation GenerationConfig `yaml:"generation"`
	Show       ShowConfig       `yaml:"show"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// GenerationConfig tunes the generation loop.
type GenerationConfig struct {
	// MaxAttempts bounds candidate generations per run.
	MaxAttempts int `yaml:"max_attempts"`

	// MaxSeconds is the wall-clock budget per run, checked between
	// attempts. Zero means a single attempt.
	MaxSeconds float64 `yaml:"max_seconds"`

	// SegmentsPerAct is how many slices each act's window is divided into.
	SegmentsPerAct int `yaml:"segments_per_act"`

	// Seed fixes the random stream for reproducible shows. Zero means
	// seed from the clock.
	Seed int64 `yaml:"seed"`
}

// ShowConfig describes the show plan: duration, output pool, and the
// percentage split across acts and shot types.
type ShowConfig struct {
	TotalSeconds float64              `yaml:"total_seconds"`
	TotalOutputs int                  `yaml:"total_outputs"`
	Sequential   bool                 `yaml:"sequential"`
	Acts         map[string]ActConfig `yaml:"acts"`
}

// ActConfig describes one act's share of the show.
type ActConfig struct {
	Percentage float64                   `yaml:"percentage"`
	ShotTypes  map[string]ShotTypeConfig `yaml:"shot_types"`
	Effects    map[string]bool           `yaml:"effects"`
}

// ShotTypeConfig describes one shot type within an act.
type ShotTypeConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Percentage float64 `yaml:"percentage"`
	MinDelay   float64 `yaml:"min_delay"`
	MaxDelay   float64 `yaml:"max_delay"`
	MinLength  int     `yaml:"min_length"`
	MaxLength  int     `yaml:"max_length"`
}

// actKeys maps YAML act keys to engine act names.
var actKeys = map[string]show.Act{
	"opening": show.ActOpening,
	"buildup": show.ActBuildup,
	"finale":  show.ActFinale,
}

// shotTypeKeys maps YAML shot type keys to engine shot types.
var shotTypeKeys = map[string]show.ShotType{
	"single_shot": show.SingleShot,
	"double_shot": show.DoubleShot,
	"single_run":  show.SingleRun,
	"double_run":  show.DoubleRun,
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SKYFIRE_SECTION_KEY
// For example: SKYFIRE_LOGGING_LEVEL, SKYFIRE_GENERATION_SEED
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		// Logs default to stderr so generated cue rows own stdout.
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Generation: GenerationConfig{
			MaxAttempts:    show.DefaultMaxAttempts,
			MaxSeconds:     show.DefaultMaxDuration.Seconds(),
			SegmentsPerAct: show.DefaultSegments,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SKYFIRE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SKYFIRE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SKYFIRE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SKYFIRE_GENERATION_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Generation.Seed = seed
		}
	}
	if v := os.Getenv("SKYFIRE_GENERATION_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generation.MaxAttempts = n
		}
	}
}

// Validate checks the configuration for errors.
//
// It validates the YAML surface (known keys, positive limits); the engine
// re-validates the translated show plan before generating.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Generation.MaxAttempts < 1 {
		errs = append(errs, "generation.max_attempts must be at least 1")
	}
	if c.Generation.MaxSeconds < 0 {
		errs = append(errs, "generation.max_seconds must not be negative")
	}
	if c.Generation.SegmentsPerAct < 1 {
		errs = append(errs, "generation.segments_per_act must be at least 1")
	}

	if len(c.Show.Acts) == 0 {
		errs = append(errs, "show.acts is required")
	}
	for key, act := range c.Show.Acts {
		if _, ok := actKeys[key]; !ok {
			errs = append(errs, fmt.Sprintf("show.acts: unknown act %q", key))
		}
		for stKey := range act.ShotTypes {
			if _, ok := shotTypeKeys[stKey]; !ok {
				errs = append(errs, fmt.Sprintf("show.acts.%s: unknown shot type %q", key, stKey))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ShowConfig translates the YAML show plan into the engine's typed config.
//
// Unknown act or shot type keys have already been rejected by Validate, so
// the string-keyed YAML surface never leaks invalid keys into the engine.
func (c *Config) ShowConfig() show.Config {
	out := show.Config{
		TotalSeconds: c.Show.TotalSeconds,
		TotalOutputs: c.Show.TotalOutputs,
		Sequential:   c.Show.Sequential,
		Acts:         make(map[show.Act]show.ActConfig, len(c.Show.Acts)),
	}

	for key, act := range c.Show.Acts {
		name, ok := actKeys[key]
		if !ok {
			continue
		}

		actCfg := show.ActConfig{
			Percentage: act.Percentage,
			ShotTypes:  make(map[show.ShotType]show.ShotTypeConfig, len(act.ShotTypes)),
			Effects:    make(map[string]bool, len(act.Effects)),
		}
		for stKey, st := range act.ShotTypes {
			stName, ok := shotTypeKeys[stKey]
			if !ok {
				continue
			}
			actCfg.ShotTypes[stName] = show.ShotTypeConfig{
				Enabled:    st.Enabled,
				Percentage: st.Percentage,
				MinDelay:   st.MinDelay,
				MaxDelay:   st.MaxDelay,
				MinLength:  st.MinLength,
				MaxLength:  st.MaxLength,
			}
		}
		for effect, on := range act.Effects {
			actCfg.Effects[effect] = on
		}

		out.Acts[name] = actCfg
	}

	return out
}

// Options translates generation limits into engine options.
func (c *Config) Options() show.Options {
	return show.Options{
		MaxAttempts: c.Generation.MaxAttempts,
		MaxDuration: time.Duration(c.Generation.MaxSeconds * float64(time.Second)),
		Segments:    c.Generation.SegmentsPerAct,
	}
}
