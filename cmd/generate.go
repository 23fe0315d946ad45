/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/cycle"
	"github.com/rotblauer/drivecycle/metrics/influxdb"
	"github.com/rotblauer/drivecycle/params"
	"github.com/rotblauer/drivecycle/simlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a randomized highway drive cycle",
	Long: `
Generates a drive cycle emulating dense and free-flow highway traffic and writes it as CSV,
with header "Time,Speed (m/s)" and one row per interval.

Every whole second the traffic is redrawn, with even odds, as dense or free-flowing.
Each interval draws an acceleration from the regime's range; an acceleration that would take
the speed outside [0, max speed] is discarded for that interval.

Flags:

  --out        Output path. Parent directories are created. A .gz suffix compresses.
               (Default is config/drive_cycle/highway_randomized_conditions.csv.)
  --seed       Random seed. The same seed and flags write byte-identical files.
               Zero draws (and logs) a fresh seed.
  --duration   Seconds to generate. (Default is 700.)
  --interval   Seconds per sample, a whole number of milliseconds. (Default is 0.01.)
  --max-speed  Speed limit, m/s. (Default is 30.)
  --fast-min, --fast-max, --slow-min, --slow-max
               Acceleration ranges, m/s^2, for free-flow and dense traffic.
  --influx     Also export the cycle to InfluxDB, per INFLUXDB_URL, INFLUXDB_TOKEN,
               INFLUXDB_ORG and INFLUXDB_BUCKET.

Examples:

  drivecycle generate --seed 42
  drivecycle generate --duration 120 --out /tmp/short.csv.gz
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		config := cycleConfigFromFlags()
		if config.Seed == 0 {
			config.Seed = rand.Uint64()
			slog.Info("Drew random seed", "seed", config.Seed)
		}
		series, err := runGenerate(config)
		if err != nil {
			log.Fatalln(err)
		}
		if viper.GetBool("influx") {
			name := simlog.ScenarioName(config.Output)
			if err := influxdb.ExportDriveCycle(influxdb.ConfigFromEnv(), name, time.Now(), series); err != nil {
				log.Fatalln(err)
			}
			slog.Info("Exported drive cycle to InfluxDB", "cycle", name, "points", humanize.Comma(int64(series.Len())))
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	defaults := params.DefaultCycleConfig()
	flags := generateCmd.Flags()
	flags.String("out", defaults.Output, "Output path (.gz compresses)")
	flags.Uint64("seed", defaults.Seed, "Random seed, 0 for a fresh one")
	flags.Float64("duration", defaults.Duration, "Seconds to generate")
	flags.Float64("interval", defaults.Interval, "Seconds per sample")
	flags.Float64("max-speed", defaults.MaxSpeed, "Maximum speed, m/s")
	flags.Float64("fast-min", defaults.AccelFast.Min, "Free-flow acceleration lower bound, m/s^2")
	flags.Float64("fast-max", defaults.AccelFast.Max, "Free-flow acceleration upper bound, m/s^2")
	flags.Float64("slow-min", defaults.AccelSlow.Min, "Dense traffic acceleration lower bound, m/s^2")
	flags.Float64("slow-max", defaults.AccelSlow.Max, "Dense traffic acceleration upper bound, m/s^2")
	flags.Bool("influx", false, "Export the cycle to InfluxDB")
	bindFlags(flags)
}

func cycleConfigFromFlags() *params.CycleConfig {
	config := params.DefaultCycleConfig()
	config.Output = viper.GetString("out")
	config.Seed = viper.GetUint64("seed")
	config.Duration = viper.GetFloat64("duration")
	config.Interval = viper.GetFloat64("interval")
	config.MaxSpeed = viper.GetFloat64("max-speed")
	config.AccelFast = params.Range{Min: viper.GetFloat64("fast-min"), Max: viper.GetFloat64("fast-max")}
	config.AccelSlow = params.Range{Min: viper.GetFloat64("slow-min"), Max: viper.GetFloat64("slow-max")}
	return config
}

// runGenerate generates and saves a drive cycle per config.
func runGenerate(config *params.CycleConfig) (*cycle.Series, error) {
	fingerprint, err := config.Fingerprint()
	if err != nil {
		return nil, err
	}
	slog.Info("Generating drive cycle",
		"output", config.Output,
		"duration", config.Duration,
		"interval", config.Interval,
		"seed", config.Seed,
		"fingerprint", fmt.Sprintf("%016x", fingerprint))

	started := time.Now()
	reg := metrics.NewRegistry()
	series, final, err := cycle.Generate(config, cycle.NewRand(config.Seed), reg)
	if err != nil {
		return nil, err
	}
	if err := series.Save(config.Output); err != nil {
		return nil, err
	}

	size := "?"
	if fi, err := os.Stat(config.Output); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}
	common.SlogCounters("Wrote drive cycle", reg,
		"path", config.Output,
		"size", size,
		"regime", final.Regime(),
		"elapsed", time.Since(started).Round(time.Millisecond))
	return series, nil
}
