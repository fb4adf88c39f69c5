package trackers

import (
	ts "github.com/cosimrl/cartpoleql/timestep"
)

// Bar is a progress display advanced once per unit of work
type Bar interface {
	Increment()
	Display()
}

// Progress advances a Bar by one at the end of every episode
type Progress struct {
	bar Bar
}

// NewProgress returns a new Progress tracker driving bar
func NewProgress(bar Bar) *Progress {
	return &Progress{bar}
}

// Track advances the bar if t is the last step of an episode
func (p *Progress) Track(t ts.TimeStep) {
	if t.Last() {
		p.bar.Increment()
		p.bar.Display()
	}
}
