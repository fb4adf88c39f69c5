// Package trackers implements Trackers, which observe the TimeSteps of
// an experiment and keep track of derived data in memory
package trackers

import (
	ts "github.com/cosimrl/cartpoleql/timestep"
)

// Tracker keeps track of experiment data. An experiment sends every
// TimeStep it sees to each of its Trackers, starting with the first
// TimeStep of each episode.
type Tracker interface {
	Track(t ts.TimeStep)
}

// TrackerFunc adapts an ordinary function to the Tracker interface
type TrackerFunc func(t ts.TimeStep)

// Track calls f(t)
func (f TrackerFunc) Track(t ts.TimeStep) {
	f(t)
}
