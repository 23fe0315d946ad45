// Package simlog loads simulation logger output: CSV files with a header row of
// column names and one numeric row per logged timestep.
package simlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/rotblauer/drivecycle/flat"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Column names written by the simulation loggers.
const (
	ColTime = "time"

	ColEgoX          = "ACTOR_ego_x"
	ColLeadX         = "ACTOR_lead_x"
	ColLeadSpeed     = "ACTOR_lead_speed"
	ColEgoSpeed      = "ego_speed"
	ColEgoSetSpeed   = "ego_set_speed"
	ColEgoAccel      = "ego_acceleration"
	ColBrakePosition = "brake_pos"
	ColCAVEnable     = "cav_enable"
)

var ErrMissingColumn = errors.New("missing column")

// Frame is a scenario log held column-wise. All columns have the same length.
type Frame struct {
	Scenario string
	columns  []string
	values   map[string][]float64
	n        int
}

// NewFrame builds a frame from named columns. Column order follows names.
func NewFrame(scenario string, names []string, values map[string][]float64) (*Frame, error) {
	f := &Frame{
		Scenario: scenario,
		columns:  append([]string(nil), names...),
		values:   make(map[string][]float64, len(names)),
	}
	for i, name := range names {
		col, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		if i == 0 {
			f.n = len(col)
		} else if len(col) != f.n {
			return nil, fmt.Errorf("column %s has %d rows, want %d", name, len(col), f.n)
		}
		f.values[name] = col
	}
	return f, nil
}

func (f *Frame) Len() int {
	return f.n
}

func (f *Frame) Columns() []string {
	return f.columns
}

func (f *Frame) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Column returns the named column, or an error naming the column and scenario.
func (f *Frame) Column(name string) ([]float64, error) {
	col, ok := f.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: scenario %s has no %s", ErrMissingColumn, f.Scenario, name)
	}
	return col, nil
}

// Skip returns a frame without the first n rows, eg. simulator setup rows.
// The returned frame shares storage with f.
func (f *Frame) Skip(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.n {
		n = f.n
	}
	out := &Frame{
		Scenario: f.Scenario,
		columns:  f.columns,
		values:   make(map[string][]float64, len(f.values)),
		n:        f.n - n,
	}
	for name, col := range f.values {
		out.values[name] = col[n:]
	}
	return out
}

// ScenarioName derives a scenario name from a log path, eg. "logs/cut_in.csv.gz" -> "cut_in".
func ScenarioName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, flat.GZExt)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Read parses a logger CSV. Empty cells read as NaN.
func Read(scenario string, r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("scenario %s: empty log", scenario)
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario, err)
	}
	names := make([]string, len(header))
	values := make(map[string][]float64, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		if _, dup := values[names[i]]; dup {
			return nil, fmt.Errorf("scenario %s: duplicate column %s", scenario, names[i])
		}
		values[names[i]] = nil
	}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged rows surface here as csv.ErrFieldCount.
			return nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
		line, _ := cr.FieldPos(0)
		for i, cell := range record {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: line %d: column %s: %w", scenario, line, names[i], err)
			}
			values[names[i]] = append(values[names[i]], v)
		}
	}
	for _, name := range names {
		if values[name] == nil {
			values[name] = []float64{}
		}
	}
	return NewFrame(scenario, names, values)
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "", "nan":
		return math.NaN(), nil
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

// Load reads the logger CSV at path, named after its file.
func Load(path string) (*Frame, error) {
	return LoadNamed(ScenarioName(path), path)
}

// LoadNamed reads the logger CSV at path under the given scenario name.
func LoadNamed(scenario, path string) (*Frame, error) {
	r, err := flat.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := Read(scenario, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Path(), err)
	}
	return f, nil
}
