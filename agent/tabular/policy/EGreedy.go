package policy

import (
	"fmt"

	env "github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over a table of action values.
// With probability ε an action is chosen uniformly at random, otherwise
// the greedy action is chosen. ε shrinks by a constant factor on each
// call to Decay. In evaluation mode the policy acts greedily.
type EGreedy struct {
	*Greedy
	epsilon float64
	decay   float64
	eval    bool
	seed    rand.Source // Seed for random number generation
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected and decay is the
// multiplicative factor applied to ε by Decay
func NewEGreedy(e, decay float64, seed uint64,
	environment env.Environment) (*EGreedy, error) {
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon must be in [0, 1], "+
			"got %v", e)
	}
	if decay <= 0 || decay > 1 {
		return nil, fmt.Errorf("newEGreedy: decay must be in (0, 1], "+
			"got %v", decay)
	}

	greedy, err := NewGreedy(environment)
	if err != nil {
		return nil, fmt.Errorf("newEGreedy: %w", err)
	}

	return &EGreedy{
		Greedy:  greedy,
		epsilon: e,
		decay:   decay,
		seed:    rand.NewSource(seed),
	}, nil
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	greedy := p.Greedy.SelectAction(t)
	if p.eval {
		return greedy
	}
	greedyAction := int(greedy.AtVec(0))

	// Calculate the ε probability of choosing any action at random
	_, numActions := p.values.Dims()
	prob := p.epsilon / float64(numActions)
	actionProbabilites := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		actionProbabilites[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilites[greedyAction] += (1.0 - p.epsilon)

	dist := distuv.NewCategorical(actionProbabilites, p.seed)
	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// Epsilon returns the current exploration probability
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the exploration probability
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// Decay shrinks ε by the decay factor
func (p *EGreedy) Decay() {
	p.epsilon *= p.decay
}

// Eval sets the policy to evaluation mode, where it acts greedily
func (p *EGreedy) Eval() { p.eval = true }

// Train sets the policy to training mode
func (p *EGreedy) Train() { p.eval = false }

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool { return p.eval }
