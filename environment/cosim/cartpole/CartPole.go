// Package cartpole implements an environment adapter around a
// co-simulated cart-pole model
package cartpole

import (
	"errors"
	"fmt"
	"math"

	env "github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/environment/cosim"
	"github.com/cosimrl/cartpoleql/logging"
	ts "github.com/cosimrl/cartpoleql/timestep"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const (
	// Indices of the state features in an observation
	Position int = iota
	Velocity
	Angle
	AngularVelocity

	// ObservationDims is the number of state features
	ObservationDims int = 4

	// ActionDims is the dimensionality of actions
	ActionDims int = 1

	// Discrete Actions
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 1
)

// ErrIllegalAction is returned when an action outside {0, 1} is taken
var ErrIllegalAction = errors.New("illegal action")

// CartPole adapts a co-simulated cart-pole model to the
// environment.Environment interface. A pole is attached to a cart
// which moves along a frictionless track, and the agent pushes the
// cart left or right with a force of fixed magnitude.
//
// Observations are continuous and consist of the cart's position and
// velocity, and the pole's angle from the positive X-axis and its
// angular velocity:
//
//	Index	Feature
//	  0		Position
//	  1		Velocity
//	  2		Angle
//	  3		Angular velocity
//
// Actions are discrete, consisting of the direction to push the cart:
//
//	Action	Meaning
//	  0		Apply force left
//	  1		Apply force right
//
// The physics are owned entirely by the injected cosim.Simulator.
// Simulator failures are returned to the caller unmodified apart from
// added context.
type CartPole struct {
	env.Task
	sim      cosim.Simulator
	force    float64
	lastStep ts.TimeStep
	log      logrus.FieldLogger
}

// New constructs a new CartPole environment around sim. The force
// parameter is the magnitude of the force applied at each step.
func New(sim cosim.Simulator, task env.Task, force float64,
	log logrus.FieldLogger) (*CartPole, error) {
	if sim == nil {
		return nil, fmt.Errorf("new: simulator cannot be nil")
	}
	if task == nil {
		return nil, fmt.Errorf("new: task cannot be nil")
	}
	if force < 0 {
		return nil, fmt.Errorf("new: force magnitude cannot be negative")
	}

	return &CartPole{
		Task:  task,
		sim:   sim,
		force: force,
		log:   logging.OrDiscard(log),
	}, nil
}

// NewFromParams constructs a new CartPole environment with the
// Balance task from a flat set of named parameters
func NewFromParams(sim cosim.Simulator, p cosim.Params,
	log logrus.FieldLogger) (*CartPole, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("newFromParams: %w", err)
	}

	log = logging.OrDiscard(log)
	task := NewBalance(p.PositiveReward, p.NegativeReward, log)

	return New(sim, task, p.Force, log)
}

// Reset resets the simulator and returns the first TimeStep of a new
// episode
func (c *CartPole) Reset() (ts.TimeStep, error) {
	state, err := c.sim.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset "+
			"simulator: %w", err)
	}
	if err := validateState(state); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	c.lastStep = ts.New(ts.First, 0, state, 0)
	return c.lastStep, nil
}

// Step takes one environmental step given action a and returns the
// next TimeStep and a bool indicating whether or not the episode has
// ended. Action 1 pushes the cart right and action 0 pushes it left.
func (c *CartPole) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != ActionDims {
		return ts.TimeStep{}, true, fmt.Errorf("step: actions should be "+
			"%d-dimensional: %w", ActionDims, ErrIllegalAction)
	}
	if c.lastStep.Observation == nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: environment must " +
			"be reset before stepping")
	}

	action := a.AtVec(0)
	intAction := int(action)
	if float64(intAction) != action || intAction < MinDiscreteAction ||
		intAction > MaxDiscreteAction {
		return ts.TimeStep{}, true, fmt.Errorf("step: %v ∉ {0, 1}: %w",
			action, ErrIllegalAction)
	}

	force := -c.force
	if intAction > 0 {
		force = c.force
	}

	state, err := c.sim.DoStep(force)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"simulator: %w", err)
	}
	if err := validateState(state); err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %w", err)
	}

	nextStep := ts.New(ts.Mid, 0, state, c.lastStep.Number+1)
	c.End(&nextStep)
	nextStep.Reward = c.GetReward(c.lastStep.Observation, a, nextStep)

	c.lastStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// LastTimeStep returns the most recent TimeStep of the environment
func (c *CartPole) LastTimeStep() ts.TimeStep {
	return c.lastStep
}

// Render implements the environment.Environment interface. Rendering
// is not supported and nothing is drawn.
func (c *CartPole) Render(mode string, close bool) error {
	return nil
}

// Close closes rendering and then the underlying simulator
func (c *CartPole) Close() error {
	if err := c.Render("human", true); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := c.sim.Close(); err != nil {
		return fmt.Errorf("close: could not close simulator: %w", err)
	}
	return nil
}

// ActionSpec returns the action specification of the environment
func (c *CartPole) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment. Position and angle deflection are bounded by the
// termination thresholds, velocities are unbounded.
func (c *CartPole) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	high := []float64{PositionThreshold, math.Inf(1), AngleThreshold,
		math.Inf(1)}
	upperBound := mat.NewVecDense(ObservationDims, high)

	lowerBound := mat.NewVecDense(ObservationDims, nil)
	lowerBound.ScaleVec(-1, upperBound)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

func (c *CartPole) String() string {
	msg := "CartPole  |  Position: %v  | Velocity: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	state := c.lastStep.Observation
	if state == nil {
		return "CartPole  |  not reset"
	}
	return fmt.Sprintf(msg, state.AtVec(Position), state.AtVec(Velocity),
		state.AtVec(Angle), state.AtVec(AngularVelocity))
}

// validateState ensures the simulator returned a full state vector
func validateState(state *mat.VecDense) error {
	if state == nil {
		return fmt.Errorf("simulator returned no state")
	}
	if state.Len() != ObservationDims {
		return fmt.Errorf("simulator returned %d outputs, expected %d",
			state.Len(), ObservationDims)
	}
	return nil
}
