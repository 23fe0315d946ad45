package cycle

import (
	"errors"
	"github.com/montanaflynn/stats"
)

// Summary describes a drive cycle. It is descriptive only.
type Summary struct {
	Rows     int
	Interval float64
	// Duration spans the first sample to one interval past the last.
	Duration float64

	MeanSpeed   float64
	MedianSpeed float64
	P95Speed    float64
	MaxSpeed    float64
	StdDevSpeed float64

	// Distance is the rectangle-rule integral of speed over time, in meters.
	Distance float64

	// StoppedFraction is the share of samples at zero speed.
	StoppedFraction float64
}

var ErrEmptySeries = errors.New("empty series")

func Summarize(s *Series) (*Summary, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	speeds := stats.Float64Data(s.Speeds())
	sum := &Summary{
		Rows:     s.Len(),
		Interval: s.Interval(),
	}
	sum.Duration = s.Samples[s.Len()-1].Time - s.Samples[0].Time + sum.Interval

	var err error
	if sum.MeanSpeed, err = stats.Mean(speeds); err != nil {
		return nil, err
	}
	if sum.MedianSpeed, err = stats.Median(speeds); err != nil {
		return nil, err
	}
	if sum.P95Speed, err = stats.Percentile(speeds, 95); err != nil {
		return nil, err
	}
	if sum.MaxSpeed, err = stats.Max(speeds); err != nil {
		return nil, err
	}
	if sum.StdDevSpeed, err = stats.StandardDeviation(speeds); err != nil {
		return nil, err
	}

	stopped := 0
	for _, v := range speeds {
		sum.Distance += v * sum.Interval
		if v == 0 {
			stopped++
		}
	}
	sum.StoppedFraction = float64(stopped) / float64(sum.Rows)
	return sum, nil
}
