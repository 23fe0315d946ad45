package cycle

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/flat"
	"io"
	"strconv"
)

// Header is the literal first row of every drive cycle file.
var Header = []string{"Time", "Speed (m/s)"}

var ErrHeader = errors.New("unexpected drive cycle header")

// Series is a drive cycle: samples in generation order.
type Series struct {
	Samples []Sample
}

func NewSeries(capacity int) *Series {
	return &Series{Samples: make([]Sample, 0, capacity)}
}

func (s *Series) Append(sample Sample) {
	s.Samples = append(s.Samples, sample)
}

func (s *Series) Len() int {
	return len(s.Samples)
}

// Interval infers the sampling interval from the first two samples.
// It is zero for series shorter than two samples.
func (s *Series) Interval() float64 {
	if len(s.Samples) < 2 {
		return 0
	}
	return common.DecimalToFixed(s.Samples[1].Time-s.Samples[0].Time, timePrecision)
}

func (s *Series) Speeds() []float64 {
	out := make([]float64, len(s.Samples))
	for i, sample := range s.Samples {
		out[i] = sample.Speed
	}
	return out
}

// WriteCSV writes the header and one row per sample.
func (s *Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	row := make([]string, 2)
	for _, sample := range s.Samples {
		row[0] = common.FormatDecimal(sample.Time)
		row[1] = common.FormatDecimal(sample.Speed)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a series written by WriteCSV.
func ReadCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrHeader)
	}
	if err != nil {
		return nil, err
	}
	if len(header) != len(Header) || header[0] != Header[0] || header[1] != Header[1] {
		return nil, fmt.Errorf("%w: %q", ErrHeader, header)
	}
	series := NewSeries(0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: time: %w", line, err)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: speed: %w", line, err)
		}
		series.Append(Sample{Time: t, Speed: v})
	}
	return series, nil
}

// Save persists the series to path, atomically, overwriting any existing file.
// Paths ending in .gz are compressed.
func (s *Series) Save(path string) error {
	return flat.WriteAtomic(path, nil, s.WriteCSV)
}

// Load reads a series from path.
func Load(path string) (*Series, error) {
	r, err := flat.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	series, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Path(), err)
	}
	return series, nil
}
