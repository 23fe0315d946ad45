// Package checks verifies vehicle-following and speed-tracking requirements
// against simulation logs.
package checks

import (
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/params"
	"github.com/rotblauer/drivecycle/simlog"
	"math"
)

// Check evaluates one requirement against a scenario log.
// The frame given to Evaluate has already had its warm-up rows removed.
type Check interface {
	Name() string
	Requirement() string
	Evaluate(f *simlog.Frame, config *params.RequirementConfig) (*Result, error)
}

// All returns every requirement check.
func All() []Check {
	return []Check{FollowingDistance{}, SpeedError{}}
}

// Apply runs c on f after dropping the configured warm-up rows.
// An evaluation error is reported as a result with StatusError.
func Apply(c Check, f *simlog.Frame, config *params.RequirementConfig) *Result {
	res, err := c.Evaluate(f.Skip(config.WarmupRows), config)
	if err != nil {
		return &Result{
			Check:       c.Name(),
			Requirement: c.Requirement(),
			Scenario:    f.Scenario,
			Status:      StatusError,
			Reason:      err.Error(),
		}
	}
	return res
}

func newResult(c Check, f *simlog.Frame) *Result {
	return &Result{
		Check:       c.Name(),
		Requirement: c.Requirement(),
		Scenario:    f.Scenario,
		Status:      StatusPass,
	}
}

func columns(f *simlog.Frame, names ...string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}

// FollowingDistance requires that, at all times, the lead vehicle is no closer ahead of the ego
// than the minimum following distance for the lead's speed.
type FollowingDistance struct{}

func (FollowingDistance) Name() string        { return "minimum_following_distance" }
func (FollowingDistance) Requirement() string { return "distance" }

// MinimumDistance is the closest permitted following distance in meters
// for a lead vehicle travelling at leadSpeed m/s.
func MinimumDistance(leadSpeed float64, config params.FollowingDistanceConfig) float64 {
	return config.Coefficient*math.Pow(common.MPH(leadSpeed), config.Exponent) + config.Offset
}

func (c FollowingDistance) Evaluate(f *simlog.Frame, config *params.RequirementConfig) (*Result, error) {
	res := newResult(c, f)
	if !f.Has(simlog.ColLeadX) {
		res.Status = StatusSkip
		res.Reason = "There is no lead vehicle in this scenario"
		return res, nil
	}
	cols, err := columns(f, simlog.ColTime, simlog.ColEgoX, simlog.ColLeadX, simlog.ColLeadSpeed)
	if err != nil {
		return nil, err
	}
	tm, egoX, leadX, leadSpeed := cols[0], cols[1], cols[2], cols[3]

	failures := &Table{Columns: []string{"time", "distance", "needed_distance"}}
	for i := 0; i < f.Len(); i++ {
		gap := leadX[i] - egoX[i]
		needed := MinimumDistance(leadSpeed[i], config.FollowingDistance)
		if gap < needed {
			failures.Rows = append(failures.Rows, []float64{tm[i], gap, needed})
		}
	}
	if failures.Len() > 0 {
		res.Status = StatusFail
		res.Failures = failures
	}
	return res, nil
}

// SpeedError requires that, in steady state, the ego's relative speed error stays within threshold.
//
// Steady state is cruising with the CAV system engaged: acceleration within the threshold
// (which rules out launches and hard braking but admits ordinary speed-keeping noise),
// brakes released, and cav_enable set.
type SpeedError struct{}

func (SpeedError) Name() string        { return "speed_error" }
func (SpeedError) Requirement() string { return "speed error" }

// RelativeSpeedError is |target - actual| / target.
// A zero target yields +Inf, or NaN when the speed is zero as well.
func RelativeSpeedError(speed, target float64) float64 {
	return math.Abs((target - speed) / target)
}

// SteadyState reports whether a logged timestep counts as steady-state cruising.
func SteadyState(accel, brake, cavEnable float64, config params.SpeedErrorConfig) bool {
	return math.Abs(accel) <= config.AccelerationThreshold && brake == 0 && cavEnable == 1
}

func (c SpeedError) Evaluate(f *simlog.Frame, config *params.RequirementConfig) (*Result, error) {
	res := newResult(c, f)
	cols, err := columns(f,
		simlog.ColTime, simlog.ColEgoAccel, simlog.ColBrakePosition, simlog.ColCAVEnable,
		simlog.ColEgoSpeed, simlog.ColEgoSetSpeed,
	)
	if err != nil {
		return nil, err
	}
	tm, accel, brake, cav, speed, target := cols[0], cols[1], cols[2], cols[3], cols[4], cols[5]

	failures := &Table{Columns: []string{"time", "ego_speed", "ego_target_speed", "relative_speed_error"}}
	for i := 0; i < f.Len(); i++ {
		if !SteadyState(accel[i], brake[i], cav[i], config.SpeedError) {
			continue
		}
		// NaN errors never exceed the threshold.
		rel := RelativeSpeedError(speed[i], target[i])
		if rel > config.SpeedError.RelativeErrorThreshold {
			failures.Rows = append(failures.Rows, []float64{tm[i], speed[i], target[i], rel})
		}
	}
	if failures.Len() > 0 {
		res.Status = StatusFail
		res.Failures = failures
	}
	return res, nil
}
