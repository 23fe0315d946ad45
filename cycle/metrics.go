package cycle

import (
	"github.com/ethereum/go-ethereum/metrics"
)

// Counters registered by Generate.
const (
	MetricSamples  = "cycle/samples"
	MetricRejected = "cycle/rejected"
	MetricSwitches = "cycle/switches"
)

type meter struct {
	samples  metrics.Counter
	rejected metrics.Counter
	switches metrics.Counter
}

// newMeter gets or registers the generator counters in reg.
// A nil reg means metrics.DefaultRegistry.
func newMeter(reg metrics.Registry) *meter {
	return &meter{
		samples:  metrics.GetOrRegisterCounter(MetricSamples, reg),
		rejected: metrics.GetOrRegisterCounter(MetricRejected, reg),
		switches: metrics.GetOrRegisterCounter(MetricSwitches, reg),
	}
}

// mark counts the step that produced s.
func (m *meter) mark(s State) {
	m.samples.Inc(1)
	if s.Rejected {
		m.rejected.Inc(1)
	}
	if s.Switched {
		m.switches.Inc(1)
	}
}
