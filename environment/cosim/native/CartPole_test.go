package native

import (
	"math"
	"testing"

	"github.com/cosimrl/cartpoleql/environment/cosim"
)

func TestReset(t *testing.T) {
	p := cosim.DefaultParams()
	c, err := New(p)
	if err != nil {
		t.Fatal(err)
	}

	state, err := c.Reset()
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 0, p.Theta0, p.ThetaDot0}
	for i := range want {
		if state.AtVec(i) != want[i] {
			t.Errorf("reset: feature %d = %v, want %v", i, state.AtVec(i),
				want[i])
		}
	}
}

func TestStepBeforeReset(t *testing.T) {
	c, err := New(cosim.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.DoStep(1); err == nil {
		t.Error("doStep: expected an error before reset")
	}
}

func TestClosed(t *testing.T) {
	c, err := New(cosim.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Reset(); err == nil {
		t.Error("reset: expected an error on a closed model")
	}
}

func TestInvalidParams(t *testing.T) {
	p := cosim.DefaultParams()
	p.TimeStep = 0
	if _, err := New(p); err == nil {
		t.Error("new: expected an error for a zero time step")
	}
}

func TestPoleFalls(t *testing.T) {
	p := cosim.DefaultParams()
	p.Theta0 = 85 * math.Pi / 180 // leaning towards positive x

	c, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Reset(); err != nil {
		t.Fatal(err)
	}

	// Without any force the pole keeps falling in the direction it
	// leans, which moves the angle further below upright.
	var theta float64
	for i := 0; i < 10; i++ {
		state, err := c.DoStep(0)
		if err != nil {
			t.Fatal(err)
		}
		theta = state.AtVec(2)
	}
	if theta >= p.Theta0 {
		t.Errorf("pole did not fall: theta %v >= theta_0 %v", theta,
			p.Theta0)
	}
}

func TestForcePushesCart(t *testing.T) {
	p := cosim.DefaultParams()
	p.Theta0 = math.Pi / 2

	c, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Reset(); err != nil {
		t.Fatal(err)
	}

	state, err := c.DoStep(p.Force)
	if err != nil {
		t.Fatal(err)
	}
	if state.AtVec(1) <= 0 {
		t.Errorf("positive force should accelerate the cart right, "+
			"velocity = %v", state.AtVec(1))
	}

	c.Reset()
	state, err = c.DoStep(-p.Force)
	if err != nil {
		t.Fatal(err)
	}
	if state.AtVec(1) >= 0 {
		t.Errorf("negative force should accelerate the cart left, "+
			"velocity = %v", state.AtVec(1))
	}
}
