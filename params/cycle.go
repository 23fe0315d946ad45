package params

import (
	"errors"
	"fmt"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/drivecycle/common"
	"math"
)

// StepTimePrecision is the number of fractional digits kept in step times.
const StepTimePrecision = 3

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

func (r Range) Valid() bool {
	return r.Min <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// CycleConfig configures the drive cycle generator.
// All units are metric: m/s, m/s^2, seconds.
type CycleConfig struct {
	// AccelFast bounds acceleration draws while traffic is free-flowing.
	AccelFast Range

	// AccelSlow bounds acceleration draws while traffic is dense.
	// Dense traffic can brake as well as creep forward.
	AccelSlow Range

	// MaxSpeed is the highway speed limit. Speed never leaves [0, MaxSpeed].
	MaxSpeed float64

	// Interval is the simulation step.
	Interval float64

	// Duration is the generation horizon. Samples are emitted while time < Duration.
	Duration float64

	InitialSpeed float64

	// Seed seeds the random source. Zero means seed from the runtime.
	Seed uint64

	// Output is the destination file. A .gz suffix compresses it.
	Output string `hash:"ignore"`
}

func DefaultCycleConfig() *CycleConfig {
	return &CycleConfig{
		AccelFast:    Range{Min: 0.0, Max: 10.0},
		AccelSlow:    Range{Min: -10.0, Max: 5.0},
		MaxSpeed:     common.SpeedOfDrivingHighwayMax,
		Interval:     0.01,
		Duration:     700,
		InitialSpeed: 0.0,
		Seed:         0,
		Output:       DefaultDriveCycleOutput,
	}
}

var (
	ErrInvalidInterval   = errors.New("interval must be positive and finite")
	ErrIntervalPrecision = errors.New("interval must be a whole number of milliseconds")
	ErrInvalidDuration   = errors.New("duration must be positive and finite")
	ErrInvalidMaxSpeed   = errors.New("max speed must be positive and finite")
	ErrInvalidRange      = errors.New("acceleration range min exceeds max")
	ErrInitialSpeed      = errors.New("initial speed outside [0, max speed]")
)

// Validate returns the first configuration error found, if any.
func (c *CycleConfig) Validate() error {
	switch {
	case !positive(c.Interval):
		return fmt.Errorf("%w: %v", ErrInvalidInterval, c.Interval)
	case common.DecimalToFixed(c.Interval, StepTimePrecision) != c.Interval:
		// Step times are rounded to milliseconds, so finer intervals repeat timestamps.
		return fmt.Errorf("%w: %v", ErrIntervalPrecision, c.Interval)
	case !positive(c.Duration):
		return fmt.Errorf("%w: %v", ErrInvalidDuration, c.Duration)
	case !positive(c.MaxSpeed):
		return fmt.Errorf("%w: %v", ErrInvalidMaxSpeed, c.MaxSpeed)
	case !c.AccelFast.Valid():
		return fmt.Errorf("%w: fast %s", ErrInvalidRange, c.AccelFast)
	case !c.AccelSlow.Valid():
		return fmt.Errorf("%w: slow %s", ErrInvalidRange, c.AccelSlow)
	case !(c.InitialSpeed >= 0 && c.InitialSpeed <= c.MaxSpeed):
		return fmt.Errorf("%w: %v", ErrInitialSpeed, c.InitialSpeed)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Steps is the number of samples the generator emits for this config.
func (c *CycleConfig) Steps() int {
	n := 0
	for c.StepTime(n) < c.Duration {
		n++
	}
	return n
}

// StepTime is the elapsed time at step n, rounded to milliseconds.
// Deriving time from the step index keeps float drift from accumulating.
func (c *CycleConfig) StepTime(n int) float64 {
	return common.DecimalToFixed(float64(n)*c.Interval, StepTimePrecision)
}

// Fingerprint hashes the generation parameters, ignoring the output path.
// Two configs with equal fingerprints and a fixed seed generate identical cycles.
func (c *CycleConfig) Fingerprint() (uint64, error) {
	return hashstructure.Hash(c, hashstructure.FormatV2, nil)
}
