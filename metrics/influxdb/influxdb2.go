package influxdb

import (
	"errors"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rotblauer/drivecycle/cycle"
	"github.com/rotblauer/drivecycle/params"
	"sync"
	"time"
)

const Measurement = "drive_cycle"

var ErrNotConfigured = errors.New("influxdb not configured")

type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// ConfigFromEnv reads the INFLUXDB_* environment, see params.
func ConfigFromEnv() *Config {
	return &Config{
		URL:    params.INFLUXDB_URL,
		Token:  params.INFLUXDB_TOKEN,
		Org:    params.INFLUXDB_ORG,
		Bucket: params.INFLUXDB_BUCKET,
	}
}

func (c *Config) Enabled() bool {
	return c != nil && c.URL != ""
}

// DriveCyclePoints maps samples to points, offsetting sample times from start.
func DriveCyclePoints(name string, start time.Time, series *cycle.Series) []*write.Point {
	points := make([]*write.Point, 0, series.Len())
	for _, s := range series.Samples {
		offset := time.Duration(s.Time * float64(time.Second)).Round(time.Millisecond)
		p := influxdb2.NewPointWithMeasurement(Measurement).
			SetTime(start.Add(offset)).
			AddTag("cycle", name).
			AddField("speed", s.Speed)
		points = append(points, p)
	}
	return points
}

// ExportDriveCycle posts a drive cycle to an InfluxDB Write API.
// The Write API will buffer and flush.
// The last error encountered is returned.
func ExportDriveCycle(config *Config, name string, start time.Time, series *cycle.Series) error {
	if !config.Enabled() {
		return ErrNotConfigured
	}
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Millisecond)
	client := influxdb2.NewClientWithOptions(config.URL, config.Token, opts)
	writeAPI := client.WriteAPI(config.Org, config.Bucket)

	// Errors returns a channel for reading errors which occurs during async writes.
	// Must be called before performing any writes for errors to be collected.
	// The chan is unbuffered and must be drained or the writer will block.
	// https://github.com/influxdata/influxdb-client-go?tab=readme-ov-file#reading-async-errors
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	for _, p := range DriveCyclePoints(name, start, series) {
		writeAPI.WritePoint(p)
	}
	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
