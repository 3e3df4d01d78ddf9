// Package config loads simulator settings from a YAML file, GRIDSIM_* env
// vars and built-in defaults, in that order of precedence (env wins).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-gridsim/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. GRIDSIM_SIMULATION_MAX_STEPS
const EnvPrefix = "GRIDSIM"

// Redistribution and criticality modes accepted in config files
const (
	RedistributionSequential = "sequential"
	RedistributionSnapshot   = "snapshot"

	CriticalWithRedistribution = "redistribution"
	CriticalDisconnectOnly     = "disconnect"
)

// MaxWorkers caps analysis.workers
const MaxWorkers = 256

// Config is the full settings tree
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Analysis   AnalysisConfig   `mapstructure:"analysis" yaml:"analysis"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// SimulationConfig controls the cascade engine
type SimulationConfig struct {
	MaxSteps         int     `mapstructure:"max_steps" yaml:"max_steps"`
	StopOnDisconnect bool    `mapstructure:"stop_on_disconnect" yaml:"stop_on_disconnect"`
	VariationMin     float64 `mapstructure:"variation_min" yaml:"variation_min"`
	VariationMax     float64 `mapstructure:"variation_max" yaml:"variation_max"`
	Seed             int64   `mapstructure:"seed" yaml:"seed"`
	Redistribution   string  `mapstructure:"redistribution" yaml:"redistribution"`
}

// AnalysisConfig controls criticality analysis and status classification
type AnalysisConfig struct {
	CriticalMode string  `mapstructure:"critical_mode" yaml:"critical_mode"`
	WarningRatio float64 `mapstructure:"warning_ratio" yaml:"warning_ratio"`
	Workers      int     `mapstructure:"workers" yaml:"workers"`
}

// LoggingConfig controls the JSON logger
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			MaxSteps:       20,
			VariationMin:   0.5,
			VariationMax:   1.5,
			Redistribution: RedistributionSequential,
		},
		Analysis: AnalysisConfig{
			CriticalMode: CriticalWithRedistribution,
			WarningRatio: 0.8,
			Workers:      1,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// NewViper returns a viper instance primed with defaults and env bindings.
// Callers may bind cobra flags onto it before calling Decode.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("simulation.max_steps", d.Simulation.MaxSteps)
	v.SetDefault("simulation.stop_on_disconnect", d.Simulation.StopOnDisconnect)
	v.SetDefault("simulation.variation_min", d.Simulation.VariationMin)
	v.SetDefault("simulation.variation_max", d.Simulation.VariationMax)
	v.SetDefault("simulation.seed", d.Simulation.Seed)
	v.SetDefault("simulation.redistribution", d.Simulation.Redistribution)
	v.SetDefault("analysis.critical_mode", d.Analysis.CriticalMode)
	v.SetDefault("analysis.warning_ratio", d.Analysis.WarningRatio)
	v.SetDefault("analysis.workers", d.Analysis.Workers)
	v.SetDefault("logging.level", d.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) over the defaults and applies env overrides
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates whatever v currently holds
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section
func (c Config) Validate() error {
	return errors.Join(
		c.Simulation.Validate(),
		c.Analysis.Validate(),
		c.Logging.Validate(),
	)
}

// Validate checks engine settings
func (s SimulationConfig) Validate() error {
	return validation.NewConfigValidator("simulation").
		RangeInt("max_steps", s.MaxSteps, 1, 10000).
		PositiveFloat("variation_min", s.VariationMin).
		PositiveFloat("variation_max", s.VariationMax).
		Custom("variation_max", func() error {
			if s.VariationMax <= s.VariationMin {
				return fmt.Errorf("must be greater than variation_min (%v)", s.VariationMin)
			}
			return nil
		}).
		OneOf("redistribution", s.Redistribution, []string{RedistributionSequential, RedistributionSnapshot}).
		Validate()
}

// Validate checks analysis settings
func (a AnalysisConfig) Validate() error {
	return validation.NewConfigValidator("analysis").
		OneOf("critical_mode", a.CriticalMode, []string{CriticalWithRedistribution, CriticalDisconnectOnly}).
		PositiveFloat("warning_ratio", a.WarningRatio).
		RangeFloat("warning_ratio", a.WarningRatio, 0, 1).
		RangeInt("workers", a.Workers, 1, MaxWorkers).
		Validate()
}

// Validate checks logging settings
func (l LoggingConfig) Validate() error {
	return validation.NewConfigValidator("logging").
		OneOf("level", strings.ToUpper(l.Level), []string{"DEBUG", "INFO", "WARN", "ERROR"}).
		Validate()
}
