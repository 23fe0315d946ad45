package params

// FollowingDistanceConfig parameterizes the minimum following distance curve,
// Coefficient * (lead speed in mph)^Exponent + Offset, in meters.
type FollowingDistanceConfig struct {
	Coefficient float64
	Exponent    float64
	Offset      float64
}

// SpeedErrorConfig gates the steady-state speed tracking requirement.
type SpeedErrorConfig struct {
	// AccelerationThreshold bounds |acceleration| for a steady state, in m/s^2.
	// About a quarter of a 0-60 mph in 10 s launch.
	AccelerationThreshold float64

	// RelativeErrorThreshold is the largest tolerated |target-actual|/target, in [0, 1].
	RelativeErrorThreshold float64
}

type RequirementConfig struct {
	// WarmupRows are skipped at the head of every log; they hold simulator setup.
	WarmupRows int

	FollowingDistance FollowingDistanceConfig
	SpeedError        SpeedErrorConfig
}

var DefaultWarmupRows = 10

func DefaultRequirementConfig() *RequirementConfig {
	return &RequirementConfig{
		WarmupRows: DefaultWarmupRows,
		FollowingDistance: FollowingDistanceConfig{
			Coefficient: 2.8,
			Exponent:    0.45,
			Offset:      8,
		},
		SpeedError: SpeedErrorConfig{
			AccelerationThreshold:  0.67,
			RelativeErrorThreshold: 0.1,
		},
	}
}
