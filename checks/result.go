package checks

import (
	"bytes"
	"fmt"
	"github.com/rotblauer/drivecycle/common"
	"strings"
	"text/tabwriter"
)

type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusSkip  Status = "skip"
	StatusError Status = "error"
)

// Table lists offending rows, one value per column.
type Table struct {
	Columns []string
	Rows    [][]float64
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column returns the values of the named column, or nil.
func (t *Table) Column(name string) []float64 {
	if t == nil {
		return nil
	}
	for i, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(t.Rows))
		for j, row := range t.Rows {
			out[j] = row[i]
		}
		return out
	}
	return nil
}

// String renders the table right-aligned, header first.
func (t *Table) String() string {
	if t == nil {
		return ""
	}
	buf := new(bytes.Buffer)
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, c := range t.Columns {
		fmt.Fprintf(tw, "%s\t", c)
	}
	fmt.Fprintln(tw)
	for _, row := range t.Rows {
		for _, v := range row {
			fmt.Fprintf(tw, "%s\t", formatCell(v))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

func formatCell(v float64) string {
	return common.FormatDecimal(common.DecimalToFixed(v, 6))
}

// Result is the outcome of one check against one scenario.
type Result struct {
	Check       string
	Requirement string
	Scenario    string
	Status      Status

	// Reason explains a skip or an error.
	Reason string

	// Failures holds the offending rows of a failed check.
	Failures *Table
}

func (r *Result) Failed() bool {
	return r.Status == StatusFail || r.Status == StatusError
}

// Report describes a failed result with its table of offending rows.
// It is empty for passing and skipped results.
func (r *Result) Report() string {
	switch r.Status {
	case StatusFail:
		return fmt.Sprintf("Scenario %s failed the %s requirement.\n%s", r.Scenario, r.Requirement, r.Failures)
	case StatusError:
		return fmt.Sprintf("Scenario %s could not be checked for the %s requirement: %s", r.Scenario, r.Requirement, r.Reason)
	}
	return ""
}

func (r *Result) String() string {
	s := fmt.Sprintf("%s %s %s", r.Status, r.Scenario, r.Check)
	if r.Reason != "" {
		s += ": " + r.Reason
	}
	return s
}

// Metric names the counter Run increments for each result with status s.
func (s Status) Metric() string {
	return "checks/" + string(s)
}
