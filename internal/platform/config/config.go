package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "whatdayisit/internal/platform/errors"
)

const (
	configPathEnv = "WHATDAYISIT_CONFIG"
	timezoneEnv   = "WHATDAYISIT_TIMEZONE"
	logLevelEnv   = "WHATDAYISIT_LOG_LEVEL"
	logFileEnv    = "WHATDAYISIT_LOG_FILE"

	defaultTimezone = "Local"
	defaultLogLevel = "info"
)

// Config holds the oracle's timing, calendar and logging settings.
type Config struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	RevealAfter  time.Duration `yaml:"reveal_after"`
	Timezone     string        `yaml:"timezone"`
	Messages     []string      `yaml:"messages"`
	Log          LogConfig     `yaml:"log"`

	location *time.Location
}

// LogConfig controls the zap logger built by platform/logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Overrides carries command-line values that win over file and env settings.
// Empty fields are ignored.
type Overrides struct {
	Timezone string
	LogLevel string
	LogFile  string
}

// Default returns the stock timing: five messages at 800ms, revealed at 4s.
func Default() Config {
	return Config{
		TickInterval: 800 * time.Millisecond,
		RevealAfter:  4 * time.Second,
		Timezone:     defaultTimezone,
		Log:          LogConfig{Level: defaultLogLevel},
	}
}

// Load applies defaults, the YAML file (path, or $WHATDAYISIT_CONFIG when
// path is empty), environment overrides, then flag overrides, and validates
// the result.
func Load(path string, overrides Overrides) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse config %s: %v", apperrors.ErrInvalidInput, path, err)
		}
		cfg = merge(cfg, fileCfg)
	}

	cfg.applyEnv()
	cfg.apply(overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the timing values and resolves the timezone.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", apperrors.ErrInvalidInput, c.TickInterval)
	}
	if c.RevealAfter <= 0 {
		return fmt.Errorf("%w: reveal_after must be positive, got %s", apperrors.ErrInvalidInput, c.RevealAfter)
	}
	for i, msg := range c.Messages {
		if strings.TrimSpace(msg) == "" {
			return fmt.Errorf("%w: messages[%d] is blank", apperrors.ErrInvalidInput, i)
		}
	}
	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("%w: timezone %q: %v", apperrors.ErrInvalidInput, c.Timezone, err)
	}
	c.location = loc
	return nil
}

// Location returns the calendar used for "tomorrow". It falls back to the
// host zone when Validate has not run.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	return time.Local
}

// TimingDrift is how far the reveal lands from the end of the message
// rotation. Zero means the last message appears exactly as the reveal fires.
func (c Config) TimingDrift(messageCount int) time.Duration {
	return c.RevealAfter - time.Duration(messageCount)*c.TickInterval
}

func (c *Config) applyEnv() {
	if v := os.Getenv(timezoneEnv); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(logFileEnv); v != "" {
		c.Log.File = v
	}
}

func (c *Config) apply(o Overrides) {
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
}

func merge(base, override Config) Config {
	if override.TickInterval != 0 {
		base.TickInterval = override.TickInterval
	}
	if override.RevealAfter != 0 {
		base.RevealAfter = override.RevealAfter
	}
	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}
	if len(override.Messages) > 0 {
		base.Messages = override.Messages
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}
	return base
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	default:
		return time.LoadLocation(name)
	}
}
