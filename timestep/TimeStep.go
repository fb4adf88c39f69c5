// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended
type EndType int

const (
	// Running indicates the episode has not ended
	Running EndType = iota

	// PositionLimit indicates the cart left the legal track
	PositionLimit

	// AngleLimit indicates the pole deflected too far from upright
	AngleLimit

	// StepLimit indicates the episode step budget was exhausted
	StepLimit
)

func (e EndType) String() string {
	switch e {
	case PositionLimit:
		return "PositionLimit"
	case AngleLimit:
		return "AngleLimit"
	case StepLimit:
		return "StepLimit"
	default:
		return "Running"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Observation *mat.VecDense
	Number      int
	end         EndType
}

// New constructs a new TimeStep. The TimeStep's EndType is Running
// until SetEnd is called.
func New(t StepType, r float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Observation: o,
		Number:      n,
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd records the reason the episode ended
func (t *TimeStep) SetEnd(e EndType) {
	t.end = e
}

// EndType returns the reason the episode ended, or Running if the
// TimeStep is not the last in its episode
func (t *TimeStep) EndType() EndType {
	return t.end
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Step Number:  %v" +
		"  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Number, t.end)
}
