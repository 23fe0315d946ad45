package common

import (
	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"log/slog"
	"sort"
)

// CounterValue returns the count of the named counter in reg, registering it if missing.
func CounterValue(reg metrics.Registry, name string) int64 {
	return metrics.GetOrRegisterCounter(name, reg).Snapshot().Count()
}

// SlogCounters logs msg at info level with args followed by every counter in reg, sorted by name.
func SlogCounters(msg string, reg metrics.Registry, args ...any) {
	counts := map[string]int64{}
	reg.Each(func(name string, i interface{}) {
		if c, ok := i.(metrics.Counter); ok {
			counts[name] = c.Snapshot().Count()
		}
	})
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, name, humanize.Comma(counts[name]))
	}
	slog.Info(msg, args...)
}
