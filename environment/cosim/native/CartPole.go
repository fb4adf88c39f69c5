// Package native implements an in-process cart-pole model satisfying
// cosim.Simulator. It stands in for an external co-simulation engine
// when none is available, for example in tests and in the command line
// tool.
package native

import (
	"fmt"
	"math"

	"github.com/cosimrl/cartpoleql/environment/cosim"
	"gonum.org/v1/gonum/mat"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	HalfPoleLength float64 = 0.5

	upright float64 = math.Pi / 2
)

// CartPole integrates the classic cart-pole equations of motion with
// the semi-implicit Euler method. The pole angle is reported from the
// positive X-axis, so that π/2 is upright and angles below π/2 lean
// in the direction of positive cart position.
//
// Outputs are ordered (x, x_dot, theta, theta_dot).
type CartPole struct {
	cartMass  float64
	poleMass  float64
	theta0    float64
	thetaDot0 float64
	dt        float64

	state  []float64
	closed bool
}

// New returns a new CartPole model using the physical parameters and
// initial conditions in p
func New(p cosim.Params) (*CartPole, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return &CartPole{
		cartMass:  p.CartMass,
		poleMass:  p.PoleMass,
		theta0:    p.Theta0,
		thetaDot0: p.ThetaDot0,
		dt:        p.TimeStep,
	}, nil
}

// Reset restores the initial state (0, 0, theta_0, theta_dot_0)
func (c *CartPole) Reset() (*mat.VecDense, error) {
	if c.closed {
		return nil, fmt.Errorf("reset: model is closed")
	}

	c.state = []float64{0, 0, c.theta0, c.thetaDot0}
	return c.outputs(), nil
}

// DoStep applies a horizontal force to the cart for one time step
func (c *CartPole) DoStep(force float64) (*mat.VecDense, error) {
	if c.closed {
		return nil, fmt.Errorf("doStep: model is closed")
	}
	if c.state == nil {
		return nil, fmt.Errorf("doStep: model must be reset first")
	}

	x, xDot := c.state[0], c.state[1]

	// Equations of motion use the angle from the vertical, positive
	// towards positive x
	th := upright - c.state[2]
	thDot := -c.state[3]

	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	totalMass := c.poleMass + c.cartMass
	poleMassLength := c.poleMass * HalfPoleLength

	temp := (force + poleMassLength*thDot*thDot*sinTheta) / totalMass
	thAcc := (Gravity*sinTheta - cosTheta*temp) / (HalfPoleLength *
		(4.0/3.0 - c.poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thAcc*cosTheta/totalMass

	xDot += c.dt * xAcc
	x += c.dt * xDot
	thDot += c.dt * thAcc
	th += c.dt * thDot

	c.state = []float64{x, xDot, upright - th, -thDot}
	return c.outputs(), nil
}

// Close releases the model. Further calls to Reset or DoStep fail.
func (c *CartPole) Close() error {
	c.closed = true
	return nil
}

// outputs returns a copy of the current state
func (c *CartPole) outputs() *mat.VecDense {
	out := make([]float64, len(c.state))
	copy(out, c.state)
	return mat.NewVecDense(len(out), out)
}
