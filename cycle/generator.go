package cycle

import (
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/params"
)

const (
	timePrecision  = params.StepTimePrecision
	speedPrecision = 1
)

// CrossedSecond reports whether t is the first step past a whole-second boundary,
// ie. whether the integer second of t differs from that of the previous step.
// Integer seconds truncate toward zero, so t=0 has crossed nothing.
func CrossedSecond(t float64, config *params.CycleConfig) bool {
	prev := common.DecimalToFixed(t-config.Interval, timePrecision)
	return int(t) != int(prev)
}

// Acceleration draws an acceleration from the range of the given regime.
func Acceleration(dense bool, config *params.CycleConfig, rng Rand) float64 {
	if dense {
		return Uniform(rng, config.AccelSlow)
	}
	return Uniform(rng, config.AccelFast)
}

// Integrate applies accel over one interval to speed.
// An update that would leave [0, MaxSpeed] is rejected whole: the speed is returned unchanged
// and ok is false. It is never truncated to the bound.
func Integrate(speed, accel float64, config *params.CycleConfig) (next float64, ok bool) {
	next = speed + accel*config.Interval
	if next < 0 || next > config.MaxSpeed {
		return speed, false
	}
	return next, true
}

// Step advances s by one interval and returns the new state and the sample recorded for s.Time.
// The recorded speed is rounded, and the rounded value carries into the next step.
func Step(s State, config *params.CycleConfig, rng Rand) (State, Sample) {
	s.Switched = false
	if CrossedSecond(s.Time, config) {
		dense := Coin(rng)
		s.Switched = dense != s.Dense
		s.Dense = dense
	}

	speed, ok := Integrate(s.Speed, Acceleration(s.Dense, config, rng), config)
	s.Rejected = !ok
	s.Speed = common.DecimalToFixed(speed, speedPrecision)

	sample := Sample{
		Time:  common.DecimalToFixed(s.Time, timePrecision),
		Speed: s.Speed,
	}

	s.N++
	s.Time = config.StepTime(s.N)
	return s, sample
}

// Generate runs the generator from its initial state until Duration is reached.
// It returns the series and the final state.
// Samples, rejected updates and regime switches are counted in reg
// (see MetricSamples et al.), or in metrics.DefaultRegistry if reg is nil.
func Generate(config *params.CycleConfig, rng Rand, reg metrics.Registry) (*Series, State, error) {
	if err := config.Validate(); err != nil {
		return nil, State{}, err
	}
	m := newMeter(reg)
	state := NewState(config)
	series := NewSeries(config.Steps())
	for state.Time < config.Duration {
		var sample Sample
		state, sample = Step(state, config, rng)
		m.mark(state)
		series.Append(sample)
	}
	return series, state, nil
}
