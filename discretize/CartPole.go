package discretize

import (
	"math"

	"github.com/cosimrl/cartpoleql/environment/cosim/cartpole"
	"gonum.org/v1/gonum/spatial/r1"
)

// CartPoleBins is the number of bins used for every cart-pole feature
const CartPoleBins = 10

// Bounds used to bin each cart-pole feature. Values outside these
// bounds land in the edge bins.
var (
	PositionBounds        = r1.Interval{Min: -2.4, Max: 2.4}
	VelocityBounds        = r1.Interval{Min: -1, Max: 1}
	AngleBounds           = r1.Interval{Min: 78 * math.Pi / 180, Max: 102 * math.Pi / 180}
	AngularVelocityBounds = r1.Interval{Min: -2, Max: 2}
)

// NewCartPole returns the Discretizer used for the co-simulated
// cart-pole. Digits are ordered (position, angle, velocity, angular
// velocity).
func NewCartPole() *Discretizer {
	d, err := New(
		Dimension{cartpole.Position, PositionBounds, CartPoleBins},
		Dimension{cartpole.Angle, AngleBounds, CartPoleBins},
		Dimension{cartpole.Velocity, VelocityBounds, CartPoleBins},
		Dimension{cartpole.AngularVelocity, AngularVelocityBounds,
			CartPoleBins},
	)
	if err != nil {
		panic(err)
	}
	return d
}
