// Package qlearning implements the tabular Q-Learning algorithm with an
// ε-greedy behaviour policy whose exploration decays after every
// episode.
package qlearning

import (
	"fmt"

	"github.com/cosimrl/cartpoleql/agent"
	"github.com/cosimrl/cartpoleql/agent/tabular/policy"
	"github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/logging"
	"gonum.org/v1/gonum/mat"
)

// QLearning implements the Q-Learning algorithm. Actions selected by
// this algorithm will always be enumerated as (0, 1, 2, ... N) where
// N is the maximum possible action.
type QLearning struct {
	agent.Learner
	agent.Policy // Behaviour
	target       agent.Policy
	behaviour    *policy.EGreedy
	seed         uint64
}

// New creates a new QLearning agent. The environment must present
// observations as state indices, for example by wrapping it in a
// wrappers.Discretized. The action-value table is zero initialized.
func New(env environment.Environment, config Config,
	seed uint64) (*QLearning, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("qlearning: %w", err)
	}

	behaviour, err := policy.NewEGreedy(config.Epsilon, config.EpsilonDecay,
		seed, env)
	if err != nil {
		return nil, fmt.Errorf("qlearning: invalid behaviour policy: %w",
			err)
	}

	// Ensure both policies and the learner reference the same table
	target, err := policy.NewGreedy(env)
	if err != nil {
		return nil, fmt.Errorf("qlearning: invalid target policy: %w", err)
	}
	if err := target.SetValues(behaviour.Values()); err != nil {
		return nil, fmt.Errorf("qlearning: %w", err)
	}

	log := logging.OrDiscard(config.Logger)
	learner := NewQLearner(behaviour.Values(), config.LearningRate,
		config.Discount, behaviour, log)

	return &QLearning{
		Learner:   learner,
		Policy:    behaviour,
		target:    target,
		behaviour: behaviour,
		seed:      seed,
	}, nil
}

// Target returns the greedy target policy
func (q *QLearning) Target() agent.Policy {
	return q.target
}

// Values returns the action-value table of the agent
func (q *QLearning) Values() *mat.Dense {
	return q.behaviour.Values()
}

// Epsilon returns the current exploration probability of the
// behaviour policy
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}
