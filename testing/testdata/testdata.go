package testdata

import (
	"path/filepath"
	"runtime"
)

// basepath is the root directory of this package.
var basepath string

func init() {
	_, currentFile, _, _ := runtime.Caller(0)
	basepath = filepath.Dir(currentFile)
}

// Path returns the absolute path the given relative file or directory path,
// relative to this testdata/ directory in the user's GOPATH.
// If rel is already absolute, it is returned unmodified.
// Taken from https://github.com/grpc/grpc-go/blob/master/testdata/testdata.go.
func Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(basepath, rel)
}

const (
	// SimLogOpenRoad has no lead vehicle and tracks its set speed.
	SimLogOpenRoad = "simlogs/open_straight_road.csv"

	// SimLogTailgating closes to within 5 meters of the lead vehicle at t=0.1.
	SimLogTailgating = "simlogs/straight_road_lead_vehicle_ftp.csv"

	// SimLogManifest names both logs above.
	SimLogManifest = "simlogs/scenarios.json"
)
