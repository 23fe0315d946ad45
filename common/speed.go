package common

// All units are metric unless named otherwise:
// - Speed is in m/s
// - Distance is in meters
// - Time is in seconds
// - Acceleration is in m/s^2

// MPSToMPH converts meters per second to miles per hour.
const MPSToMPH = 2.23694

const SpeedOfDrivingHighwayMax = 30.0 // or 108 km/h or 67 mph

func MPH(mps float64) float64 {
	return mps * MPSToMPH
}
