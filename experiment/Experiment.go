// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"

	"github.com/cosimrl/cartpoleql/experiment/trackers"
	ts "github.com/cosimrl/cartpoleql/timestep"
)

// Experiment outlines structs that can run experiments. The Run()
// method will run all episodes until the episode limit is reached or
// the context is cancelled. The RunEpisode() function will run a
// single episode.
//
// Experiments send each TimeStep to Trackers using the Tracker's
// Track() method. New Trackers can be registered with an Experiment
// through the constructor or through an Experiment's Register()
// function.
type Experiment interface {
	Run(ctx context.Context) error
	RunEpisode() (Episode, error)

	// Adds a new trackers.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)

	// Episodes returns the records of all finished episodes
	Episodes() []Episode
}

// Episode records a finished episode. Episodes are never modified after
// they are recorded.
type Episode struct {
	Length int
	End    ts.EndType
	Return float64
}

// Type is the type of an experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment
type Config struct {
	Type            Type   `mapstructure:"type" yaml:"type"`
	Episodes        int    `mapstructure:"episodes" yaml:"episodes"`
	MaxEpisodeSteps int    `mapstructure:"max_episode_steps" yaml:"max_episode_steps"`
	Repetitions     int    `mapstructure:"repetitions" yaml:"repetitions"`
	Seed            uint64 `mapstructure:"seed" yaml:"seed"`
}

// DefaultConfig returns the default experiment configuration
func DefaultConfig() Config {
	return Config{
		Type:            OnlineExp,
		Episodes:        300,
		MaxEpisodeSteps: 500,
		Repetitions:     1,
		Seed:            0,
	}
}

// Validate returns an error describing why the Config is invalid, if
// it is
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("no such experiment type %q", c.Type)
	}
	if c.Episodes < 1 {
		return fmt.Errorf("episodes must be positive, got %d", c.Episodes)
	}
	if c.MaxEpisodeSteps < 1 {
		return fmt.Errorf("max episode steps must be positive, got %d",
			c.MaxEpisodeSteps)
	}
	if c.Repetitions < 1 {
		return fmt.Errorf("repetitions must be positive, got %d",
			c.Repetitions)
	}
	return nil
}
