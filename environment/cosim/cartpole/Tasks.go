package cartpole

import (
	"math"

	env "github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/logging"
	ts "github.com/cosimrl/cartpoleql/timestep"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// PositionThreshold is the largest legal distance of the cart from
	// the origin
	PositionThreshold float64 = 2.4

	// AngleThreshold is the largest legal deflection of the pole from
	// upright, in radians
	AngleThreshold float64 = 12 * math.Pi / 180

	// Upright is the pole angle, measured from the positive X-axis,
	// of a pole standing straight up
	Upright float64 = math.Pi / 2
)

// Balance implements the cart-pole balancing task. The agent must keep
// the cart on the track and the pole close to upright for as long as
// possible.
//
// Episodes end when the cart leaves [-2.4, 2.4] or when the pole
// deflects more than 12° from upright. The position limit is checked
// first. Every surviving step is rewarded with the positive reward and
// the failing step with the negative reward.
type Balance struct {
	positionLimiter *env.IntervalLimit
	angleLimiter    *env.FunctionEnder
	positiveReward  float64
	negativeReward  float64
	log             logrus.FieldLogger
}

// NewBalance creates and returns a new Balance task
func NewBalance(positiveReward, negativeReward float64,
	log logrus.FieldLogger) *Balance {
	legalPositions := []r1.Interval{
		{Min: -PositionThreshold, Max: PositionThreshold},
	}
	positionLimiter := env.NewIntervalLimit(legalPositions, []int{Position},
		ts.PositionLimit)

	angleLimiter := env.NewFunctionEnder(func(obs mat.Vector) bool {
		return Deflection(obs.AtVec(Angle)) > AngleThreshold
	}, ts.AngleLimit)

	return &Balance{
		positionLimiter: positionLimiter,
		angleLimiter:    angleLimiter,
		positiveReward:  positiveReward,
		negativeReward:  negativeReward,
		log:             logging.OrDiscard(log),
	}
}

// Deflection returns the absolute deflection of the pole from upright
// given its angle from the positive X-axis
func Deflection(angle float64) float64 {
	return math.Abs(angle - Upright)
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last, records the reason, and
// returns true. Otherwise, the function does not adjust the TimeStep
// and returns false.
func (b *Balance) End(t *ts.TimeStep) bool {
	obs := t.Observation
	b.log.WithFields(logrus.Fields{
		"x":         obs.AtVec(Position),
		"x_dot":     obs.AtVec(Velocity),
		"theta":     obs.AtVec(Angle),
		"theta_dot": obs.AtVec(AngularVelocity),
	}).Debug("checking termination")

	if end := b.positionLimiter.End(t); end {
		return true
	}
	if end := b.angleLimiter.End(t); end {
		return true
	}
	return false
}

// GetReward returns the reward for an action taken in some state,
// resulting in the next TimeStep nextStep. End must already have been
// called on nextStep.
func (b *Balance) GetReward(_, _ mat.Vector, nextStep ts.TimeStep) float64 {
	switch nextStep.EndType() {
	case ts.PositionLimit, ts.AngleLimit:
		return b.negativeReward
	}
	return b.positiveReward
}

// RewardSpec returns the reward specification for the environment
func (b *Balance) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1,
		[]float64{math.Min(b.negativeReward, b.positiveReward)})
	upperBound := mat.NewVecDense(1,
		[]float64{math.Max(b.negativeReward, b.positiveReward)})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}
