// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"

	"github.com/cosimrl/cartpoleql/environment"
	ts "github.com/cosimrl/cartpoleql/timestep"
	"gonum.org/v1/gonum/mat"
)

// Indexer maps a continuous observation onto a state index in
// [0, NumStates())
type Indexer interface {
	Index(obs mat.Vector) (int, error)
	NumStates() int
}

// Discretized wraps an environment and returns as observations of the
// environment states a one-element vector holding the index of the
// discretized state. For example, if an Indexer maps the continuous
// observation [0.1 -0.2 1.6 0.3] to state 5376, then this struct would
// return the vector [5376] as the state observation.
//
// Discretized itself implements the environment.Environment interface
// and is therefore itself an environment. Rewards, step types and
// termination are those of the wrapped environment.
type Discretized struct {
	environment.Environment
	indexer Indexer
	last    ts.TimeStep
}

// NewDiscretized creates and returns a new Discretized environment,
// wrapping an existing environment
func NewDiscretized(env environment.Environment,
	indexer Indexer) (*Discretized, error) {
	if env == nil {
		return nil, fmt.Errorf("newDiscretized: nil environment")
	}
	if indexer == nil {
		return nil, fmt.Errorf("newDiscretized: nil indexer")
	}
	return &Discretized{Environment: env, indexer: indexer}, nil
}

// Reset resets the environment to some starting state
func (d *Discretized) Reset() (ts.TimeStep, error) {
	step, err := d.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}
	d.last = step

	if err := d.encode(&step); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}
	return step, nil
}

// Step takes one environmental step given action a and returns the next
// state as a timestep.TimeStep and a bool indicating whether or not the
// episode has ended
func (d *Discretized) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, last, err := d.Environment.Step(a)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %w", err)
	}
	d.last = step

	if err := d.encode(&step); err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %w", err)
	}
	return step, last, nil
}

// LastContinuousStep returns the most recent TimeStep of the wrapped
// environment, before discretization
func (d *Discretized) LastContinuousStep() ts.TimeStep {
	return d.last
}

// ObservationSpec returns the observation specification of the
// environment
func (d *Discretized) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, nil)
	upperBound := mat.NewVecDense(1,
		[]float64{float64(d.indexer.NumStates() - 1)})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// String returns a string representation of the Discretized environment
func (d *Discretized) String() string {
	return fmt.Sprintf("Discretized: %v", d.Environment)
}

func (d *Discretized) encode(step *ts.TimeStep) error {
	index, err := d.indexer.Index(step.Observation)
	if err != nil {
		return fmt.Errorf("could not discretize observation: %w", err)
	}
	step.Observation = mat.NewVecDense(1, []float64{float64(index)})
	return nil
}
