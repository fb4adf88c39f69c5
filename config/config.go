// Package config loads the configuration of a training run from an
// optional YAML file, CARTPOLE_ environment variables and defaults
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cosimrl/cartpoleql/agent/tabular/qlearning"
	"github.com/cosimrl/cartpoleql/environment/cosim"
	"github.com/cosimrl/cartpoleql/experiment"
	"github.com/cosimrl/cartpoleql/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables that override
// configuration keys, e.g. CARTPOLE_AGENT_EPSILON overrides
// agent.epsilon
const EnvPrefix = "CARTPOLE"

// Config holds the configuration of a training run
type Config struct {
	Environment cosim.Params      `mapstructure:"environment" yaml:"environment"`
	Agent       qlearning.Config  `mapstructure:"agent" yaml:"agent"`
	Experiment  experiment.Config `mapstructure:"experiment" yaml:"experiment"`
	Logging     logging.Config    `mapstructure:"logging" yaml:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`

	// File is the configuration file that was read, if any
	File string `mapstructure:"-" yaml:"-"`
}

// MetricsConfig contains metrics exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr" yaml:"addr"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Load loads the configuration. If path is empty, a file named
// cartpoleql.yaml is looked up in the working directory and defaults
// are used if there is none. A path that cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cartpoleql")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load: failed to read config file: %w",
				err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load: failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("load: config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Environment defaults
	params := cosim.DefaultParams()
	v.SetDefault("environment.m_cart", params.CartMass)
	v.SetDefault("environment.m_pole", params.PoleMass)
	v.SetDefault("environment.theta_0", params.Theta0)
	v.SetDefault("environment.theta_dot_0", params.ThetaDot0)
	v.SetDefault("environment.time_step", params.TimeStep)
	v.SetDefault("environment.positive_reward", params.PositiveReward)
	v.SetDefault("environment.negative_reward", params.NegativeReward)
	v.SetDefault("environment.force", params.Force)
	v.SetDefault("environment.log_level", "warning")

	// Agent defaults
	v.SetDefault("agent.learning_rate", qlearning.DefaultLearningRate)
	v.SetDefault("agent.discount", qlearning.DefaultDiscount)
	v.SetDefault("agent.epsilon", qlearning.DefaultEpsilon)
	v.SetDefault("agent.epsilon_decay", qlearning.DefaultEpsilonDecay)

	// Experiment defaults
	exp := experiment.DefaultConfig()
	v.SetDefault("experiment.type", string(exp.Type))
	v.SetDefault("experiment.episodes", exp.Episodes)
	v.SetDefault("experiment.max_episode_steps", exp.MaxEpisodeSteps)
	v.SetDefault("experiment.repetitions", exp.Repetitions)
	v.SetDefault("experiment.seed", exp.Seed)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("metrics.path", "/metrics")
}

// validateConfig validates the configuration values
func validateConfig(cfg *Config) error {
	if err := cfg.Environment.Validate(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.Agent.Validate(); err != nil {
		return fmt.Errorf("invalid agent: %w", err)
	}
	if err := cfg.Experiment.Validate(); err != nil {
		return fmt.Errorf("invalid experiment: %w", err)
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		return fmt.Errorf("metrics address cannot be empty")
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %q", cfg.Metrics.Path)
	}
	return nil
}

// YAML renders the configuration as YAML
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return out, nil
}
