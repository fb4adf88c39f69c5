package experiment

import (
	"context"
	"fmt"

	"github.com/cosimrl/cartpoleql/agent"
	env "github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/experiment/trackers"
	"github.com/cosimrl/cartpoleql/logging"
	ts "github.com/cosimrl/cartpoleql/timestep"
	"github.com/sirupsen/logrus"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
//
// Each episode is cut off after a fixed number of steps. An episode
// that is cut off ends with timestep.StepLimit.
type Online struct {
	env.Environment
	agent.Agent
	episodes int
	limit    env.StepLimit
	trackers []trackers.Tracker
	results  []Episode
	log      logrus.FieldLogger
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The experiment runs for the given
// number of episodes, each of at most maxEpisodeSteps steps, and the t
// parameter is a slice of trackers.Tracker which observe every
// TimeStep.
func NewOnline(e env.Environment, a agent.Agent, episodes,
	maxEpisodeSteps int, log logrus.FieldLogger,
	t ...trackers.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		episodes:    episodes,
		limit:       env.NewStepLimit(maxEpisodeSteps),
		trackers:    t,
		log:         logging.OrDiscard(log),
	}
}

// Register registers a trackers.Tracker with an Experiment so that data
// generated during the experiment can be tracked
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment and records it
func (o *Online) RunEpisode() (Episode, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return Episode{}, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return Episode{}, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(step)

	var record Episode
	action := o.Agent.SelectAction(step)
	for !step.Last() {
		next, done, err := o.Environment.Step(action)
		if err != nil {
			return Episode{}, fmt.Errorf("runEpisode: step %d: %w",
				step.Number+1, err)
		}
		step = next
		if done {
			step.StepType = ts.Last
		}

		// Cut the episode off if the step budget has been used up
		o.limit.End(&step)
		record.Return += step.Reward

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return Episode{}, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return Episode{}, fmt.Errorf("runEpisode: %w", err)
		}

		o.track(step)

		if !step.Last() {
			action = o.Agent.SelectAction(step)
		}
	}
	o.Agent.EndEpisode()

	record.Length = step.Number
	record.End = step.EndType()
	o.results = append(o.results, record)

	fields := logrus.Fields{
		"episode": len(o.results) - 1,
		"length":  record.Length,
		"end":     record.End,
		"return":  record.Return,
	}
	if d, ok := o.Agent.(interface{ Epsilon() float64 }); ok {
		fields["epsilon"] = d.Epsilon()
	}
	o.log.WithFields(fields).Info("episode finished")

	return record, nil
}

// Run runs all episodes of the experiment. Cancellation of ctx is
// checked between episodes.
func (o *Online) Run(ctx context.Context) error {
	for len(o.results) < o.episodes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run: stopped after %d episodes: %w",
				len(o.results), err)
		}
		if _, err := o.RunEpisode(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	return nil
}

// Episodes returns the records of all finished episodes
func (o *Online) Episodes() []Episode {
	episodes := make([]Episode, len(o.results))
	copy(episodes, o.results)
	return episodes
}

// EpisodeLengths returns the lengths of all finished episodes
func (o *Online) EpisodeLengths() []float64 {
	lengths := make([]float64, len(o.results))
	for i, e := range o.results {
		lengths[i] = float64(e.Length)
	}
	return lengths
}

// track tracks the current timestep by sending it to each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
