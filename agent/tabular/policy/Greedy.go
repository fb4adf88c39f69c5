// Package policy implements policies over a tabular action-value
// estimate. Observations given to these policies must hold a single
// state index.
package policy

import (
	"fmt"

	env "github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/timestep"
	"github.com/cosimrl/cartpoleql/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Greedy implements a greedy policy over a table of action values with
// one row per state and one column per action. Ties are broken in
// favour of the lowest-numbered action.
type Greedy struct {
	values *mat.Dense
}

// NewGreedy returns a new Greedy policy with a zero-initialized table
// sized for the argument environment
func NewGreedy(e env.Environment) (*Greedy, error) {
	states, actions, err := TableDims(e)
	if err != nil {
		return nil, fmt.Errorf("newGreedy: %w", err)
	}
	return &Greedy{mat.NewDense(states, actions, nil)}, nil
}

// SelectAction returns the greedy action in the state held by t
func (g *Greedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	action := matutils.MaxVec(g.values.RowView(stateOf(t)))
	return mat.NewVecDense(1, []float64{float64(action)})
}

// Values returns the action-value table of the policy
func (g *Greedy) Values() *mat.Dense {
	return g.values
}

// SetValues makes the policy act on a new action-value table
func (g *Greedy) SetValues(values *mat.Dense) error {
	r, c := g.values.Dims()
	nr, nc := values.Dims()
	if r != nr || c != nc {
		return fmt.Errorf("setValues: expected table of shape (%d, %d) "+
			"but got (%d, %d)", r, c, nr, nc)
	}
	g.values = values
	return nil
}

// Eval is a no-op, a greedy policy is always in evaluation mode
func (g *Greedy) Eval() {}

// Train is a no-op, a greedy policy is always in evaluation mode
func (g *Greedy) Train() {}

// IsEval returns true
func (g *Greedy) IsEval() bool { return true }

// TableDims returns the number of states and actions of a tabular
// environment. The environment must have discrete 1-dimensional
// observations enumerated from 0 and discrete 1-dimensional actions
// enumerated from 0.
func TableDims(e env.Environment) (states, actions int, err error) {
	actions, err = e.ActionSpec().NumActions()
	if err != nil {
		return 0, 0, err
	}

	obsSpec := e.ObservationSpec()
	if obsSpec.Cardinality != env.Discrete {
		return 0, 0, fmt.Errorf("tableDims: observations must be discrete " +
			"state indices")
	}
	if obsSpec.LowerBound.Len() != 1 {
		return 0, 0, fmt.Errorf("tableDims: observations must be " +
			"1-dimensional")
	}
	if obsSpec.LowerBound.AtVec(0) != 0 {
		return 0, 0, fmt.Errorf("tableDims: states must be enumerated " +
			"starting from 0")
	}
	states = int(obsSpec.UpperBound.AtVec(0)) + 1

	return states, actions, nil
}

func stateOf(t timestep.TimeStep) int {
	return int(t.Observation.AtVec(0))
}
