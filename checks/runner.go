package checks

import (
	"context"
	"errors"
	"fmt"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/drivecycle/params"
	"github.com/rotblauer/drivecycle/simlog"
	"github.com/rotblauer/drivecycle/stream"
	"github.com/tidwall/gjson"
	"log/slog"
	"os"
	"path/filepath"
)

// Scenario names a simulation log to check.
type Scenario struct {
	Name string
	Log  string
}

// ScenariosFromPaths names each log after its file.
func ScenariosFromPaths(paths ...string) []Scenario {
	out := make([]Scenario, 0, len(paths))
	for _, p := range paths {
		out = append(out, Scenario{Name: simlog.ScenarioName(p), Log: p})
	}
	return out
}

var ErrManifest = errors.New("invalid scenario manifest")

// ReadManifest reads scenarios from a JSON manifest like
//
//	{"scenarios": [{"name": "open_straight_road", "log": "logs/open_straight_road.csv"}]}
//
// Relative log paths resolve against the manifest's directory. A missing name
// defaults to the log's file name.
func ReadManifest(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s: malformed json", ErrManifest, path)
	}
	list := gjson.GetBytes(data, "scenarios")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %s: no scenarios array", ErrManifest, path)
	}
	dir := filepath.Dir(path)
	var out []Scenario
	for i, item := range list.Array() {
		log := item.Get("log").String()
		if log == "" {
			return nil, fmt.Errorf("%w: %s: scenario %d has no log", ErrManifest, path, i)
		}
		if !filepath.IsAbs(log) {
			log = filepath.Join(dir, log)
		}
		name := item.Get("name").String()
		if name == "" {
			name = simlog.ScenarioName(log)
		}
		out = append(out, Scenario{Name: name, Log: log})
	}
	return out, nil
}

// Counters registered by Run, besides one per Status (see Status.Metric).
const (
	MetricScenarios = "checks/scenarios"
	MetricRepeated  = "checks/repeated"
)

// Run loads each scenario and applies every check to it.
// Results come back in scenario order, then check order.
// A scenario that cannot be loaded yields one error result per check.
// Repeated scenarios are checked once.
// Scenarios and results by status are counted in reg, or in metrics.DefaultRegistry if reg is nil.
func Run(ctx context.Context, scenarios []Scenario, config *params.RequirementConfig, reg metrics.Registry, checks ...Check) ([]*Result, error) {
	if len(checks) == 0 {
		checks = All()
	}
	scenarioCount := metrics.GetOrRegisterCounter(MetricScenarios, reg)
	repeatCount := metrics.GetOrRegisterCounter(MetricRepeated, reg)
	statusCounts := map[Status]metrics.Counter{}
	for _, s := range []Status{StatusPass, StatusFail, StatusSkip, StatusError} {
		statusCounts[s] = metrics.GetOrRegisterCounter(s.Metric(), reg)
	}

	repeated := func(s Scenario) {
		repeatCount.Inc(1)
		slog.Warn("Skipping repeated scenario", "scenario", s.Name, "log", s.Log)
	}
	evaluate := func(s Scenario) []*Result {
		scenarioCount.Inc(1)
		frame, err := simlog.LoadNamed(s.Name, s.Log)
		results := make([]*Result, 0, len(checks))
		for _, c := range checks {
			if err != nil {
				results = append(results, &Result{
					Check:       c.Name(),
					Requirement: c.Requirement(),
					Scenario:    s.Name,
					Status:      StatusError,
					Reason:      err.Error(),
				})
				continue
			}
			res := Apply(c, frame, config)
			slog.Debug("Checked scenario", "scenario", s.Name, "check", c.Name(), "status", res.Status)
			results = append(results, res)
		}
		return results
	}

	batches := stream.Collect(ctx,
		stream.Transform(ctx, evaluate,
			stream.Unique(ctx, repeated,
				stream.Slice(ctx, scenarios))))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*Result
	for _, b := range batches {
		for _, r := range b {
			statusCounts[r.Status].Inc(1)
		}
		out = append(out, b...)
	}
	return out, nil
}
