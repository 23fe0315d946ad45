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
	"context"
	"errors"
	"fmt"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/drivecycle/checks"
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/params"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"log"
	"os"
)

var errNoScenarios = errors.New("no scenarios: pass log paths or --manifest")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [--manifest scenarios.json] [log.csv ...]",
	Short: "Check simulation logs against following distance and speed error requirements",
	Long: `
Loads simulation logger CSVs and checks each one against the requirements:

  distance     The gap to the lead vehicle must be at least 2.8 * v^0.45 + 8 meters,
               v the lead speed in mph. Skipped when the log has no lead vehicle.
  speed error  In steady state (|acceleration| <= 0.67, brake released, CAV enabled),
               the relative error between ego speed and set speed must be at most 0.1.

The first --warmup rows of each log are ignored. Scenario names default to log file names.
A manifest names scenarios explicitly:

  {"scenarios": [{"name": "cut_in", "log": "logs/cut_in.csv.gz"}]}

Exits 1 if any check fails.
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		var scenarios []checks.Scenario
		if manifest := viper.GetString("manifest"); manifest != "" {
			s, err := checks.ReadManifest(manifest)
			if err != nil {
				log.Fatalln(err)
			}
			scenarios = append(scenarios, s...)
		}
		scenarios = append(scenarios, checks.ScenariosFromPaths(args...)...)

		config := params.DefaultRequirementConfig()
		config.WarmupRows = viper.GetInt("warmup")

		ctx, stop := common.Interrupted(context.Background())
		defer stop()

		failed, err := runCheck(ctx, os.Stdout, scenarios, config)
		if err != nil {
			log.Fatalln(err)
		}
		if failed {
			stop()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	flags := checkCmd.Flags()
	flags.String("manifest", "", "JSON manifest of scenarios")
	flags.Int("warmup", params.DefaultWarmupRows, "Leading rows of each log to ignore")
	bindFlags(flags)
}

// runCheck runs every check on every scenario, printing one line per result
// and a report for each failure. It returns true if any result failed.
func runCheck(ctx context.Context, w io.Writer, scenarios []checks.Scenario, config *params.RequirementConfig) (failed bool, err error) {
	if len(scenarios) == 0 {
		return false, errNoScenarios
	}
	reg := metrics.NewRegistry()
	results, err := checks.Run(ctx, scenarios, config, reg, checks.All()...)
	if err != nil {
		return false, err
	}
	for _, r := range results {
		fmt.Fprintln(w, r)
	}
	for _, r := range results {
		if r.Failed() {
			failed = true
			fmt.Fprintf(w, "\n%s\n", r.Report())
		}
	}
	common.SlogCounters("Checked scenarios", reg)
	return failed, nil
}
