package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/cosimrl/cartpoleql/agent"
	env "github.com/cosimrl/cartpoleql/environment"
	"github.com/cosimrl/cartpoleql/experiment/trackers"
	"github.com/cosimrl/cartpoleql/logging"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Batch runs a number of independent repetitions of an Online
// experiment one after the other. Every repetition trains a fresh agent
// created from the same agent.Config on the same environment, which is
// reset at the start of every episode.
type Batch struct {
	env         env.Environment
	agentConfig agent.Config
	config      Config
	trackers    []trackers.Tracker
	log         logrus.FieldLogger
}

// Result holds the in-memory results of a Batch
type Result struct {
	// Lengths holds one row per episode and one column per repetition
	Lengths *mat.Dense

	// ExecTimes holds the wall-clock time of each repetition in seconds
	ExecTimes []float64

	// Episodes holds the episode records of each repetition
	Episodes [][]Episode
}

// NewBatch returns a new Batch. The trackers t observe the TimeSteps
// of every repetition.
func NewBatch(e env.Environment, a agent.Config, c Config,
	log logrus.FieldLogger, t ...trackers.Tracker) (*Batch, error) {
	if e == nil {
		return nil, fmt.Errorf("newBatch: nil environment")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newBatch: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("newBatch: %w", err)
	}

	return &Batch{
		env:         e,
		agentConfig: a,
		config:      c,
		trackers:    t,
		log:         logging.OrDiscard(log),
	}, nil
}

// Run runs every repetition. Repetition i uses the agent seed
// Config.Seed + i.
func (b *Batch) Run(ctx context.Context) (*Result, error) {
	reps := b.config.Repetitions
	result := &Result{
		Lengths:   mat.NewDense(b.config.Episodes, reps, nil),
		ExecTimes: make([]float64, reps),
		Episodes:  make([][]Episode, reps),
	}

	for rep := 0; rep < reps; rep++ {
		log := b.log.WithField("experiment", rep)

		seed := b.config.Seed + uint64(rep)
		a, err := b.agentConfig.CreateAgent(b.env, seed)
		if err != nil {
			return nil, fmt.Errorf("run: could not create agent: %w", err)
		}

		online := NewOnline(b.env, a, b.config.Episodes,
			b.config.MaxEpisodeSteps, log, b.trackers...)

		start := time.Now()
		if err := online.Run(ctx); err != nil {
			return nil, fmt.Errorf("run: experiment %d: %w", rep, err)
		}
		result.ExecTimes[rep] = time.Since(start).Seconds()

		result.Lengths.SetCol(rep, online.EpisodeLengths())
		result.Episodes[rep] = online.Episodes()

		summary := result.Summary(rep)
		log.WithFields(logrus.Fields{
			"seconds": result.ExecTimes[rep],
			"mean":    summary.Mean,
			"std":     summary.Std,
			"max":     summary.Max,
		}).Info("experiment finished")
	}

	return result, nil
}
