package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cosimrl/cartpoleql/agent/tabular/qlearning"
	"github.com/cosimrl/cartpoleql/discretize"
	"github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/environment/cosim"
	"github.com/cosimrl/cartpoleql/environment/cosim/cartpole"
	"github.com/cosimrl/cartpoleql/environment/cosim/native"
	"github.com/cosimrl/cartpoleql/environment/wrappers"
	"github.com/cosimrl/cartpoleql/experiment/trackers"
	ts "github.com/cosimrl/cartpoleql/timestep"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

var errSim = errors.New("simulator failed")

// fixedSim always reports the same state
type fixedSim struct {
	state []float64
	err   error
	steps int
}

func (f *fixedSim) Reset() (*mat.VecDense, error) {
	return mat.NewVecDense(4, append([]float64(nil), f.state...)), nil
}

func (f *fixedSim) DoStep(float64) (*mat.VecDense, error) {
	f.steps++
	if f.err != nil {
		return nil, f.err
	}
	return mat.NewVecDense(4, append([]float64(nil), f.state...)), nil
}

func (f *fixedSim) Close() error { return nil }

func upright() []float64 {
	return []float64{0, 0, cartpole.Upright, 0}
}

func newEnv(t *testing.T, sim cosim.Simulator) environment.Environment {
	c, err := cartpole.NewFromParams(sim, cosim.DefaultParams(), nil)
	if err != nil {
		t.Fatal(err)
	}
	env, err := wrappers.NewDiscretized(c, discretize.NewCartPole())
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func newNativeEnv(t *testing.T) environment.Environment {
	sim, err := native.New(cosim.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return newEnv(t, sim)
}

func newAgent(t *testing.T, env environment.Environment,
	seed uint64) *qlearning.QLearning {
	q, err := qlearning.New(env, qlearning.DefaultConfig(), seed)
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestOnlineStepBudget(t *testing.T) {
	Convey("Given a simulator whose pole never falls", t, func() {
		env := newEnv(t, &fixedSim{state: upright()})
		lengths := trackers.NewEpisodeLength()
		returns := trackers.NewReturn()
		exp := NewOnline(env, newAgent(t, env, 1), 1, 500, nil, lengths)
		exp.Register(returns)

		Convey("One episode with a budget of 500 steps", func() {
			So(exp.Run(context.Background()), ShouldBeNil)
			episodes := exp.Episodes()
			So(len(episodes), ShouldEqual, 1)

			Convey("lasts exactly 500 steps and ends at the limit", func() {
				So(episodes[0].Length, ShouldEqual, 500)
				So(episodes[0].End, ShouldEqual, ts.StepLimit)
				So(episodes[0].Return, ShouldEqual, 500.0)
			})

			Convey("and is seen by every tracker", func() {
				So(lengths.Data(), ShouldResemble, []int{500})
				So(returns.Data(), ShouldResemble, []float64{500})
			})
		})
	})
}

func TestOnlineFailure(t *testing.T) {
	Convey("Given a simulator whose pole has fallen", t, func() {
		fallen := []float64{0, 0, 60 * math.Pi / 180, 0}
		env := newEnv(t, &fixedSim{state: fallen})
		exp := NewOnline(env, newAgent(t, env, 1), 3, 500, nil)

		Convey("Every episode ends after one step with the penalty", func() {
			So(exp.Run(context.Background()), ShouldBeNil)
			So(len(exp.Episodes()), ShouldEqual, 3)
			for _, e := range exp.Episodes() {
				So(e.Length, ShouldEqual, 1)
				So(e.End, ShouldEqual, ts.AngleLimit)
				So(e.Return, ShouldEqual, -100.0)
			}
			So(exp.EpisodeLengths(), ShouldResemble, []float64{1, 1, 1})
		})
	})

	Convey("Given a simulator that fails", t, func() {
		env := newEnv(t, &fixedSim{state: upright(), err: errSim})
		exp := NewOnline(env, newAgent(t, env, 1), 3, 500, nil)

		Convey("The failure reaches the caller", func() {
			err := exp.Run(context.Background())
			So(errors.Is(err, errSim), ShouldBeTrue)
			So(exp.Episodes(), ShouldBeEmpty)
		})
	})
}

func TestOnlineEpsilonDecay(t *testing.T) {
	Convey("Given an agent learning on the reference cart-pole", t, func() {
		env := newNativeEnv(t)
		q := newAgent(t, env, 3)
		exp := NewOnline(env, q, 1, 500, nil)

		Convey("ε never increases from one episode to the next", func() {
			last := q.Epsilon()
			for i := 0; i < 25; i++ {
				e, err := exp.RunEpisode()
				So(err, ShouldBeNil)
				So(e.Length, ShouldBeBetweenOrEqual, 1, 500)
				So(e.End, ShouldNotEqual, ts.Running)
				So(q.Epsilon(), ShouldBeLessThanOrEqualTo, last)
				last = q.Epsilon()
			}
			So(last, ShouldBeLessThan, qlearning.DefaultEpsilon)
		})
	})
}

func TestOnlineCancel(t *testing.T) {
	env := newEnv(t, &fixedSim{state: upright()})
	exp := NewOnline(env, newAgent(t, env, 1), 10, 5, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := exp.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n := len(exp.Episodes()); n != 0 {
		t.Errorf("expected no episodes after cancellation, got %d", n)
	}
}

func TestBatch(t *testing.T) {
	Convey("Given a batch of 3 repetitions of 5 episodes", t, func() {
		env := newNativeEnv(t)
		cfg := Config{Type: OnlineExp, Episodes: 5, MaxEpisodeSteps: 200,
			Repetitions: 3, Seed: 11}
		lengths := trackers.NewEpisodeLength()

		batch, err := NewBatch(env, qlearning.DefaultConfig(), cfg, nil,
			lengths)
		So(err, ShouldBeNil)

		Convey("Running it fills the episode-length matrix", func() {
			result, err := batch.Run(context.Background())
			So(err, ShouldBeNil)

			r, c := result.Lengths.Dims()
			So(r, ShouldEqual, 5)
			So(c, ShouldEqual, 3)
			So(len(result.ExecTimes), ShouldEqual, 3)
			So(len(result.Episodes), ShouldEqual, 3)
			So(len(lengths.Data()), ShouldEqual, 15)

			for rep := 0; rep < 3; rep++ {
				So(result.ExecTimes[rep], ShouldBeGreaterThanOrEqualTo, 0.0)
				for ep := 0; ep < 5; ep++ {
					l := result.Lengths.At(ep, rep)
					So(l, ShouldBeBetweenOrEqual, 1.0, 200.0)
					So(l, ShouldEqual, float64(result.Episodes[rep][ep].Length))
				}

				s := result.Summary(rep)
				So(s.Max, ShouldBeGreaterThanOrEqualTo, s.Mean)
				So(math.IsNaN(s.Std), ShouldBeFalse)
			}

			So(result.MeanCurve().Len(), ShouldEqual, 5)
		})
	})

	Convey("An invalid configuration is rejected", t, func() {
		env := newNativeEnv(t)
		_, err := NewBatch(env, qlearning.DefaultConfig(), Config{}, nil)
		So(err, ShouldNotBeNil)

		bad := qlearning.DefaultConfig()
		bad.LearningRate = 0
		_, err = NewBatch(env, bad, DefaultConfig(), nil)
		So(err, ShouldNotBeNil)
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})
	if s.Mean != 2.5 {
		t.Errorf("expected mean 2.5, got %v", s.Mean)
	}
	if math.Abs(s.Std-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("expected std %v, got %v", math.Sqrt(1.25), s.Std)
	}
	if s.Max != 4 {
		t.Errorf("expected max 4, got %v", s.Max)
	}

	single := Summarize([]float64{7})
	if single.Std != 0 || single.Mean != 7 {
		t.Errorf("expected (7, 0) for a single length, got (%v, %v)",
			single.Mean, single.Std)
	}

	if empty := Summarize(nil); !math.IsNaN(empty.Mean) {
		t.Errorf("expected NaN mean for no lengths, got %v", empty.Mean)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}

	tests := []Config{
		{Type: "Offline", Episodes: 1, MaxEpisodeSteps: 1, Repetitions: 1},
		{Type: OnlineExp, Episodes: 0, MaxEpisodeSteps: 1, Repetitions: 1},
		{Type: OnlineExp, Episodes: 1, MaxEpisodeSteps: 0, Repetitions: 1},
		{Type: OnlineExp, Episodes: 1, MaxEpisodeSteps: 1, Repetitions: 0},
	}
	for _, c := range tests {
		if err := c.Validate(); err == nil {
			t.Errorf("expected %+v to be invalid", c)
		}
	}
}
