package cycle

import (
	"bytes"
	"errors"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/params"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// fixedRand replays fixed sequences of draws, cycling when exhausted.
type fixedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *fixedRand) Float64() float64 {
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *fixedRand) IntN(n int) int {
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

// countingRand counts coin draws on top of another source.
type countingRand struct {
	Rand
	coins int
}

func (r *countingRand) IntN(n int) int {
	r.coins++
	return r.Rand.IntN(n)
}

func TestGenerate_Defaults(t *testing.T) {
	config := params.DefaultCycleConfig()
	reg := metrics.NewRegistry()
	series, final, err := Generate(config, NewRand(42), reg)
	if err != nil {
		t.Fatal(err)
	}
	if series.Len() != 70_000 {
		t.Fatalf("expected 70000 rows, got %d", series.Len())
	}
	if final.N != series.Len() {
		t.Errorf("final state index %d != rows %d", final.N, series.Len())
	}
	if series.Samples[0].Time != 0 {
		t.Errorf("first sample at %v", series.Samples[0].Time)
	}
	if last := series.Samples[series.Len()-1].Time; last != 699.99 {
		t.Errorf("last sample at %v", last)
	}
	for i, s := range series.Samples {
		if s.Speed < 0 || s.Speed > config.MaxSpeed {
			t.Fatalf("row %d: speed %v out of bounds", i, s.Speed)
		}
		if i == 0 {
			continue
		}
		dt := s.Time - series.Samples[i-1].Time
		if math.Abs(dt-config.Interval) > 0.0005 {
			t.Fatalf("row %d: time step %v, want %v", i, dt, config.Interval)
		}
	}
	if n := common.CounterValue(reg, MetricSamples); n != int64(series.Len()) {
		t.Errorf("counted %d samples, generated %d", n, series.Len())
	}
	switches := common.CounterValue(reg, MetricSwitches)
	if switches == 0 || switches > 699 {
		t.Errorf("expected between 1 and 699 regime switches over 700 seconds, got %d", switches)
	}
	t.Logf("rejected=%d switches=%d final speed=%v", common.CounterValue(reg, MetricRejected), switches, final.Speed)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	config := params.DefaultCycleConfig()
	config.Interval = 0
	if _, _, err := Generate(config, NewRand(1), metrics.NewRegistry()); !errors.Is(err, params.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
	config = params.DefaultCycleConfig()
	config.Interval = 0.0004
	config.Duration = 0.01
	if _, _, err := Generate(config, NewRand(1), metrics.NewRegistry()); !errors.Is(err, params.ErrIntervalPrecision) {
		t.Errorf("expected ErrIntervalPrecision, got %v", err)
	}
	config = params.DefaultCycleConfig()
	config.AccelSlow = params.Range{Min: 5, Max: -10}
	if _, _, err := Generate(config, NewRand(1), metrics.NewRegistry()); !errors.Is(err, params.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestIntegrate(t *testing.T) {
	config := params.DefaultCycleConfig()
	cases := []struct {
		name  string
		speed float64
		accel float64
		want  float64
		ok    bool
	}{
		{"over max is rejected, not truncated", 29.95, 10, 29.95, false},
		{"under zero is rejected, not truncated", 0.05, -10, 0.05, false},
		{"exactly max is accepted", 29.9, 10, 30.0, true},
		{"braking", 10, -10, 9.9, true},
		{"coasting", 10, 0, 10, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Integrate(c.speed, c.accel, config)
			if ok != c.ok || math.Abs(got-c.want) > 1e-9 {
				t.Errorf("Integrate(%v, %v) = %v, %v; want %v, %v", c.speed, c.accel, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestStep_RejectsNearMax(t *testing.T) {
	config := params.DefaultCycleConfig()
	// Mid-second, free-flow, acceleration at the top of the fast range.
	s := State{N: 50, Time: 0.5, Speed: 29.93}
	rng := &fixedRand{floats: []float64{0.999999}, ints: []int{0}}
	next, sample := Step(s, config, rng)
	if !next.Rejected {
		t.Error("expected a rejected update")
	}
	// Truncation would have produced 30.0.
	if sample.Speed != 29.9 {
		t.Errorf("expected speed to hold at 29.9 after rounding, got %v", sample.Speed)
	}
	if sample.Time != 0.5 || next.Time != 0.51 || next.N != 51 {
		t.Errorf("unexpected advance: sample %+v next %+v", sample, next)
	}
	if rng.ii != 0 {
		t.Error("density redrawn mid-second")
	}
}

func TestStep_StuckAtZeroInDenseTraffic(t *testing.T) {
	config := params.DefaultCycleConfig()
	config.Duration = 3
	// Always dense, always full braking.
	rng := &fixedRand{floats: []float64{0}, ints: []int{1}}
	reg := metrics.NewRegistry()
	series, final, err := Generate(config, rng, reg)
	if err != nil {
		t.Fatal(err)
	}
	if !final.Dense || !final.Rejected {
		t.Errorf("expected a dense final state with a rejected update, got %+v", final)
	}
	for _, s := range series.Samples {
		if s.Speed != 0 {
			t.Fatalf("speed left zero at %v: %v", s.Time, s.Speed)
		}
	}
	// The first second is free flow, and free flow at zero acceleration never rejects.
	if want := int64(series.Len() - 100); common.CounterValue(reg, MetricRejected) != want {
		t.Errorf("expected %d rejections, got %d", want, common.CounterValue(reg, MetricRejected))
	}
	// One switch to dense at t=1, then dense is redrawn as dense.
	if n := common.CounterValue(reg, MetricSwitches); n != 1 {
		t.Errorf("expected 1 regime switch, got %d", n)
	}
}

func TestCrossedSecond(t *testing.T) {
	config := params.DefaultCycleConfig()
	cases := map[float64]bool{
		0:      false,
		0.01:   false,
		0.99:   false,
		1.0:    true,
		1.01:   false,
		2.0:    true,
		699.99: false,
	}
	for tm, want := range cases {
		if got := CrossedSecond(tm, config); got != want {
			t.Errorf("CrossedSecond(%v) = %v, want %v", tm, got, want)
		}
	}
}

func TestStep_DensityGranularity(t *testing.T) {
	config := params.DefaultCycleConfig()
	config.Duration = 20
	rng := &countingRand{Rand: NewRand(3)}

	state := NewState(config)
	regimes := map[int]bool{}
	for state.Time < config.Duration {
		var sample Sample
		state, sample = Step(state, config, rng)
		second := int(sample.Time)
		if dense, seen := regimes[second]; seen && dense != state.Dense {
			t.Fatalf("regime changed within second %d at %v", second, sample.Time)
		}
		regimes[second] = state.Dense
	}
	// Boundaries at 1..19; second 0 keeps the initial free-flow regime.
	if rng.coins != 19 {
		t.Errorf("expected 19 density draws, got %d", rng.coins)
	}
	if regimes[0] {
		t.Error("first second should be free flow")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	dir := t.TempDir()
	config := params.DefaultCycleConfig()
	config.Seed = 7

	paths := []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}
	for _, p := range paths {
		series, _, err := Generate(config, NewRand(config.Seed), metrics.NewRegistry())
		if err != nil {
			t.Fatal(err)
		}
		if err := series.Save(p); err != nil {
			t.Fatal(err)
		}
	}
	a, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same seed produced different files")
	}

	other, _, err := Generate(config, NewRand(8), metrics.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := other.WriteCSV(buf); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, buf.Bytes()) {
		t.Error("different seeds produced identical cycles")
	}
}
