// Package cosim defines the boundary between environments and the
// external co-simulation engines that drive them.
//
// A Simulator owns the physical model. Environments hold a Simulator
// by composition and add the reinforcement learning concerns on top
// of it: action encoding, rewards, and episode termination.
package cosim

import "gonum.org/v1/gonum/mat"

// Simulator is a co-simulation model that can be advanced in fixed
// time steps. All methods block until the underlying model returns.
// Errors returned by a Simulator are considered fatal for the episode
// and are never retried.
type Simulator interface {
	// Reset restores the model to its initial state and returns the
	// model outputs at time 0
	Reset() (*mat.VecDense, error)

	// DoStep applies input for one time step and returns the model
	// outputs at the end of the step
	DoStep(input float64) (*mat.VecDense, error)

	// Close releases the model
	Close() error
}
