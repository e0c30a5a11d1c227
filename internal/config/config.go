// Package config loads launchdash settings from defaults, an optional
// config file, LAUNCHDASH_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is the environment variable prefix (LAUNCHDASH_DATA, ...).
const EnvPrefix = "LAUNCHDASH"

// Config is the resolved configuration.
type Config struct {
	Data   string       `mapstructure:"data"`   // Path of the launch CSV
	Listen string       `mapstructure:"listen"` // HTTP listen address for serve
	Log    LogConfig    `mapstructure:"log"`
	Slider SliderConfig `mapstructure:"slider"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

type SliderConfig struct {
	Step float64 `mapstructure:"step"` // Payload slider step in kg
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data", "spacex_launch_dash.csv")
	v.SetDefault("listen", ":8050")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("slider.step", 1000)
}

// New returns a viper instance with defaults and environment lookup set up.
// When file is non-empty it is read as the config file; otherwise
// launchdash.yaml is searched for in the working directory and a missing
// file is not an error.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("launchdash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Data) == "" {
		problems = append(problems, "data path is empty")
	}
	if c.Listen == "" {
		problems = append(problems, "listen address is empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not json or console", c.Log.Format))
	}
	if c.Slider.Step <= 0 {
		problems = append(problems, fmt.Sprintf("slider.step must be positive, got %v", c.Slider.Step))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
