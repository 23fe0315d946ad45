package cycle

import "github.com/rotblauer/drivecycle/params"

// State is the generator state carried between steps.
type State struct {
	// N is the index of the next sample.
	N int

	// Time is the elapsed time in seconds at step N, rounded to milliseconds.
	Time float64

	// Speed in m/s, always within [0, MaxSpeed].
	Speed float64

	// Dense is the traffic regime. It is redrawn only when Time crosses a whole second.
	Dense bool

	// Rejected is set when the last step's speed update was discarded for leaving [0, MaxSpeed].
	Rejected bool

	// Switched is set when the last step changed the regime.
	Switched bool
}

func NewState(config *params.CycleConfig) State {
	return State{
		N:     0,
		Time:  config.StepTime(0),
		Speed: config.InitialSpeed,
		Dense: false,
	}
}

// Regime names the traffic regime.
func (s State) Regime() string {
	if s.Dense {
		return "dense"
	}
	return "free"
}

// Sample is one emitted row of the drive cycle.
type Sample struct {
	Time  float64 // seconds, 3 decimals
	Speed float64 // m/s, 1 decimal
}
