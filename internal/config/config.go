// Package config loads jazzdrill settings from layered sources.
//
// Precedence, lowest to highest: built-in defaults, the YAML config file,
// a .env file in the working directory, JAZZDRILL_* environment variables
// and command-line flags that were explicitly set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata" // IANA zones for the timezone setting on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "JAZZDRILL_"

// ConfigFlag names the flag that points at an explicit config file.
const ConfigFlag = "config"

// Due date granularities.
const (
	GranularityTimestamp = "timestamp"
	GranularityDay       = "day"
)

// Config holds every runtime setting.
type Config struct {
	DB                 string `koanf:"db"`
	LogLevel           string `koanf:"log-level" validate:"oneof=debug info warn error"`
	LogFormat          string `koanf:"log-format" validate:"oneof=text json"`
	SnapshotKeep       int    `koanf:"snapshot-keep" validate:"min=1,max=1000"`
	DueGranularity     string `koanf:"due-granularity" validate:"oneof=timestamp day"`
	RelearnImmediately bool   `koanf:"relearn-immediately"`
	Timezone           string `koanf:"timezone" validate:"omitempty,timezone"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:       "warn",
		LogFormat:      "text",
		SnapshotKeep:   10,
		DueGranularity: GranularityTimestamp,
	}
}

// Load reads configuration from all sources. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	// Ignore error so the tool still starts when .env is absent.
	_ = godotenv.Load()

	k := koanf.New(".")

	path, explicit := configPath(fs)
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if fs != nil {
		err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == ConfigFlag {
				return "", nil
			}
			return f.Name, posflag.FlagVal(fs, f)
		}), nil)
		if err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// configPath returns the config file to read and whether the user asked
// for it explicitly. A missing default file is not an error.
func configPath(fs *pflag.FlagSet) (string, bool) {
	if fs != nil {
		if f := fs.Lookup(ConfigFlag); f != nil && f.Changed {
			return f.Value.String(), true
		}
	}
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p, true
	}
	p, err := DefaultConfigPath()
	if err != nil {
		return "", false
	}
	return p, false
}

// DefaultConfigPath resolves $XDG_CONFIG_HOME/jazzdrill/config.yaml,
// falling back to ~/.config.
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "jazzdrill", "config.yaml"), nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.DueGranularity = strings.ToLower(strings.TrimSpace(c.DueGranularity))
	c.Timezone = strings.TrimSpace(c.Timezone)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
}

// Validate checks every setting and reports the first offending key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "timezone":
		return fmt.Sprintf("%s %q is not a known IANA time zone", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s check", fe.Field(), fe.Tag())
	}
}

// Location returns the time zone used for calendar-day due dates.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CalendarDays reports whether due dates snap to local day boundaries.
func (c Config) CalendarDays() bool {
	return c.DueGranularity == GranularityDay
}
