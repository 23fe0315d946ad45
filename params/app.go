package params

import (
	"compress/gzip"
	"github.com/ethereum/go-ethereum/metrics"
	"os"
	"path/filepath"
)

func init() {
	metrics.Enabled = true
}

const (
	ConfigDir     = "config"
	DriveCycleDir = "drive_cycle"

	DriveCycleFileName = "highway_randomized_conditions.csv"
)

// DefaultDriveCycleOutput is where generated cycles land when no output is given,
// relative to the working directory.
var DefaultDriveCycleOutput = filepath.Join(ConfigDir, DriveCycleDir, DriveCycleFileName)

var DefaultGZipCompressionLevel = gzip.BestCompression

var DefaultFilePerm os.FileMode = 0660
var DefaultDirPerm os.FileMode = 0770

// EnvPrefix prefixes environment variables read into the CLI configuration,
// eg. DRIVECYCLE_SEED=42.
const EnvPrefix = "DRIVECYCLE"
