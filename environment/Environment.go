// Package environment outlines the interfaces and structs needed to
// implement concrete environments and adapters around external
// simulations
package environment

import (
	ts "github.com/cosimrl/cartpoleql/timestep"
	"gonum.org/v1/gonum/mat"
)

// Ender determines when an episode should end. If End returns true,
// it must also set the argument TimeStep's StepType to timestep.Last
// and record the reason the episode ended.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme and the episode termination rules
// for taking actions in some environment
type Task interface {
	Ender

	// GetReward returns the reward for taking action a in state,
	// transitioning to nextState. Reward calculation may depend on
	// whether nextStep ended the episode.
	GetReward(state, a mat.Vector, nextStep ts.TimeStep) float64

	// RewardSpec returns the bounds of the rewards the Task issues
	RewardSpec() Spec
}

// Environment implements a simulated environment which an agent
// interacts with. Environments must be reset before the first call to
// Step.
type Environment interface {
	// Reset resets the environment to a starting state and returns
	// the first TimeStep of an episode
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step given action and returns the
	// next TimeStep and whether the episode has ended
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)

	// Render renders the current environment state. The close flag
	// indicates that rendering resources should be released.
	Render(mode string, close bool) error

	// Close releases all resources held by the environment
	Close() error

	ObservationSpec() Spec
	ActionSpec() Spec
	RewardSpec() Spec
}
