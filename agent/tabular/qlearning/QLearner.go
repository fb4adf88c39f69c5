package qlearning

import (
	"fmt"

	"github.com/cosimrl/cartpoleql/agent"
	"github.com/cosimrl/cartpoleql/logging"
	"github.com/cosimrl/cartpoleql/timestep"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// QLearner implements the update functionality for the tabular
// Q-Learning algorithm:
//
//	Q(s, a) ← Q(s, a) + α(r + γ max_a' Q(s', a') - Q(s, a))
//
// The update always bootstraps from the next state, including on the
// last step of an episode.
type QLearner struct {
	values       *mat.Dense
	step         timestep.TimeStep
	action       int
	nextStep     timestep.TimeStep
	observed     bool
	learningRate float64
	discount     float64
	behaviour    agent.Decayer
	log          logrus.FieldLogger
}

// NewQLearner creates a new QLearner struct
//
// values is the action-value table shared with the policies of the
// agent. The exploration of behaviour is decayed at the end of each
// episode.
func NewQLearner(values *mat.Dense, learningRate, discount float64,
	behaviour agent.Decayer, log logrus.FieldLogger) *QLearner {
	return &QLearner{
		values:       values,
		learningRate: learningRate,
		discount:     discount,
		behaviour:    behaviour,
		log:          logging.OrDiscard(log),
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		q.log.Warnf("ObserveFirst() should only be called on the first "+
			"timestep (current timestep = %d)", t.Number)
	}
	if err := q.checkState(t); err != nil {
		return fmt.Errorf("observeFirst: %w", err)
	}

	q.step = timestep.TimeStep{}
	q.nextStep = t
	q.observed = false
	return nil
}

// Observe observes and records any timestep other than the first timestep
func (q *QLearner) Observe(action mat.Vector, nextStep timestep.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: value-based methods cannot have "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}
	_, numActions := q.values.Dims()
	a := int(action.AtVec(0))
	if a < 0 || a >= numActions || float64(a) != action.AtVec(0) {
		return fmt.Errorf("observe: illegal action %v", action.AtVec(0))
	}
	if err := q.checkState(nextStep); err != nil {
		return fmt.Errorf("observe: %w", err)
	}

	q.step = q.nextStep
	q.action = a
	q.nextStep = nextStep
	q.observed = true
	return nil
}

// Step updates the action-value table shared by the Learner and Policy
func (q *QLearner) Step() error {
	if !q.observed {
		return fmt.Errorf("step: no transition has been observed")
	}

	state := int(q.step.Observation.AtVec(0))
	nextState := int(q.nextStep.Observation.AtVec(0))

	// Create the update target
	maxVal := mat.Max(q.values.RowView(nextState))
	target := q.nextStep.Reward + q.discount*maxVal

	// Move the current estimate towards the target
	currentEstimate := q.values.At(state, q.action)
	tdError := target - currentEstimate
	q.values.Set(state, q.action, currentEstimate+q.learningRate*tdError)

	return nil
}

// EndEpisode decays the exploration of the behaviour policy
func (q *QLearner) EndEpisode() {
	if q.behaviour == nil {
		return
	}
	q.behaviour.Decay()
	q.log.WithField("epsilon", q.behaviour.Epsilon()).Debug("decayed " +
		"exploration")
}

// Values returns the action-value table of the learner
func (q *QLearner) Values() *mat.Dense {
	return q.values
}

func (q *QLearner) checkState(t timestep.TimeStep) error {
	if t.Observation == nil || t.Observation.Len() != 1 {
		return fmt.Errorf("observation must hold a single state index")
	}
	numStates, _ := q.values.Dims()
	s := t.Observation.AtVec(0)
	if s < 0 || int(s) >= numStates || float64(int(s)) != s {
		return fmt.Errorf("illegal state index %v", s)
	}
	return nil
}
