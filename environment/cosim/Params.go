package cosim

import (
	"fmt"
	"math"
)

// Params holds the flat set of named parameters used to construct a
// co-simulated cart-pole environment. Angles are in radians and are
// measured from the positive direction of the X-axis, so that π/2 is
// a pole standing straight up on the cart.
type Params struct {
	CartMass       float64 `mapstructure:"m_cart" yaml:"m_cart"`
	PoleMass       float64 `mapstructure:"m_pole" yaml:"m_pole"`
	Theta0         float64 `mapstructure:"theta_0" yaml:"theta_0"`
	ThetaDot0      float64 `mapstructure:"theta_dot_0" yaml:"theta_dot_0"`
	TimeStep       float64 `mapstructure:"time_step" yaml:"time_step"`
	PositiveReward float64 `mapstructure:"positive_reward" yaml:"positive_reward"`
	NegativeReward float64 `mapstructure:"negative_reward" yaml:"negative_reward"`
	Force          float64 `mapstructure:"force" yaml:"force"`
	LogLevel       string  `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultParams returns the parameters of the reference cart-pole
// experiment
func DefaultParams() Params {
	return Params{
		CartMass:       10,
		PoleMass:       1,
		Theta0:         85 * math.Pi / 180,
		ThetaDot0:      0,
		TimeStep:       0.05,
		PositiveReward: 1,
		NegativeReward: -100,
		Force:          12,
		LogLevel:       "debug",
	}
}

// Validate returns an error describing why the parameters are invalid,
// or nil if they are valid
func (p Params) Validate() error {
	if p.CartMass <= 0 {
		return fmt.Errorf("cart mass must be positive, got %v", p.CartMass)
	}
	if p.PoleMass <= 0 {
		return fmt.Errorf("pole mass must be positive, got %v", p.PoleMass)
	}
	if p.TimeStep <= 0 {
		return fmt.Errorf("time step must be positive, got %v", p.TimeStep)
	}
	if p.Force < 0 {
		return fmt.Errorf("force magnitude cannot be negative, got %v",
			p.Force)
	}
	return nil
}
