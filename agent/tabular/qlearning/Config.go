package qlearning

import (
	"fmt"

	"github.com/cosimrl/cartpoleql/agent"
	"github.com/cosimrl/cartpoleql/environment"
	"github.com/sirupsen/logrus"
)

// Default hyperparameters
const (
	DefaultLearningRate = 0.2
	DefaultDiscount     = 1.0
	DefaultEpsilon      = 0.5
	DefaultEpsilonDecay = 0.99
)

// Config represents a configuration for the QLearning agent
type Config struct {
	LearningRate float64 `mapstructure:"learning_rate" yaml:"learning_rate"`
	Discount     float64 `mapstructure:"discount" yaml:"discount"`
	Epsilon      float64 `mapstructure:"epsilon" yaml:"epsilon"` // epsilon for behaviour policy
	EpsilonDecay float64 `mapstructure:"epsilon_decay" yaml:"epsilon_decay"`

	// Logger receives the agent's log entries. A nil Logger discards
	// them.
	Logger logrus.FieldLogger `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns the default hyperparameters
func DefaultConfig() Config {
	return Config{
		LearningRate: DefaultLearningRate,
		Discount:     DefaultDiscount,
		Epsilon:      DefaultEpsilon,
		EpsilonDecay: DefaultEpsilonDecay,
	}
}

// CreateAgent creates the agent from the Config. The action-value table
// is always initialized to zero.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1], got %v", c.Discount)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("epsilon decay must be in (0, 1], got %v",
			c.EpsilonDecay)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningTabular
}
