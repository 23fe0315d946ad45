package params

import (
	"errors"
	"math"
	"testing"
)

func TestCycleConfig_Validate(t *testing.T) {
	if err := DefaultCycleConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cases := []struct {
		name   string
		modify func(c *CycleConfig)
		want   error
	}{
		{"zero interval", func(c *CycleConfig) { c.Interval = 0 }, ErrInvalidInterval},
		{"infinite interval", func(c *CycleConfig) { c.Interval = math.Inf(1) }, ErrInvalidInterval},
		{"sub-millisecond interval", func(c *CycleConfig) { c.Interval = 0.0004 }, ErrIntervalPrecision},
		{"fractional millisecond interval", func(c *CycleConfig) { c.Interval = 0.0015 }, ErrIntervalPrecision},
		{"negative duration", func(c *CycleConfig) { c.Duration = -1 }, ErrInvalidDuration},
		{"infinite duration", func(c *CycleConfig) { c.Duration = math.Inf(1) }, ErrInvalidDuration},
		{"NaN duration", func(c *CycleConfig) { c.Duration = math.NaN() }, ErrInvalidDuration},
		{"infinite max speed", func(c *CycleConfig) { c.MaxSpeed = math.Inf(1) }, ErrInvalidMaxSpeed},
		{"zero max speed", func(c *CycleConfig) { c.MaxSpeed = 0 }, ErrInvalidMaxSpeed},
		{"inverted fast range", func(c *CycleConfig) { c.AccelFast = Range{Min: 1, Max: 0} }, ErrInvalidRange},
		{"inverted slow range", func(c *CycleConfig) { c.AccelSlow = Range{Min: 5, Max: -10} }, ErrInvalidRange},
		{"initial speed above max", func(c *CycleConfig) { c.InitialSpeed = 31 }, ErrInitialSpeed},
		{"NaN initial speed", func(c *CycleConfig) { c.InitialSpeed = math.NaN() }, ErrInitialSpeed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultCycleConfig()
			tc.modify(c)
			if err := c.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCycleConfig_Steps(t *testing.T) {
	c := DefaultCycleConfig()
	if got := c.Steps(); got != 70_000 {
		t.Errorf("expected 70000 steps, got %d", got)
	}
	if got := c.StepTime(69_999); got != 699.99 {
		t.Errorf("expected last step at 699.99, got %v", got)
	}
	c.Interval = 0.1
	c.Duration = 1
	if got := c.Steps(); got != 10 {
		t.Errorf("expected 10 steps, got %d", got)
	}
}

func TestCycleConfig_MillisecondIntervals(t *testing.T) {
	for _, interval := range []float64{0.001, 0.005, 0.01, 0.02, 0.1, 0.25, 1} {
		c := DefaultCycleConfig()
		c.Interval = interval
		c.Duration = 2
		if err := c.Validate(); err != nil {
			t.Errorf("interval %v: %v", interval, err)
			continue
		}
		n := c.Steps()
		if want := int(math.Round(c.Duration / interval)); n != want {
			t.Errorf("interval %v: expected %d steps, got %d", interval, want, n)
		}
		for i := 1; i < n; i++ {
			if d := c.StepTime(i) - c.StepTime(i-1); math.Abs(d-interval) > 0.0005 {
				t.Fatalf("interval %v: step %d advanced by %v", interval, i, d)
			}
		}
	}
}

func TestCycleConfig_Fingerprint(t *testing.T) {
	a, b := DefaultCycleConfig(), DefaultCycleConfig()
	b.Output = "elsewhere.csv.gz"
	ha, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	hb, err := b.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Error("output path should not change the fingerprint")
	}
	b.Seed = 42
	if hb, _ = b.Fingerprint(); ha == hb {
		t.Error("seed should change the fingerprint")
	}
}
