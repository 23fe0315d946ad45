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
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/cycle"
	"github.com/spf13/cobra"
	"io"
	"log"
	"os"
	"text/tabwriter"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <cycle.csv[.gz]>",
	Short: "Summarize a generated drive cycle",
	Long: `
Reads a drive cycle CSV (optionally gzipped) and prints descriptive statistics:
row count, duration, speed mean, median, 95th percentile, max and standard deviation,
distance travelled and the share of time spent stopped.
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		if err := runDescribe(os.Stdout, args[0]); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(w io.Writer, path string) error {
	series, err := cycle.Load(path)
	if err != nil {
		return err
	}
	sum, err := cycle.Summarize(series)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file\t%s\n", path)
	fmt.Fprintf(tw, "rows\t%s\n", humanize.Comma(int64(sum.Rows)))
	fmt.Fprintf(tw, "interval\t%s s\n", common.FormatDecimal(sum.Interval))
	fmt.Fprintf(tw, "duration\t%s s\n", common.FormatDecimal(common.DecimalToFixed(sum.Duration, 3)))
	for _, row := range []struct {
		name string
		v    float64
	}{
		{"mean speed", sum.MeanSpeed},
		{"median speed", sum.MedianSpeed},
		{"p95 speed", sum.P95Speed},
		{"max speed", sum.MaxSpeed},
		{"speed stddev", sum.StdDevSpeed},
	} {
		fmt.Fprintf(tw, "%s\t%s m/s (%s mph)\n", row.name,
			common.FormatDecimal(common.DecimalToFixed(row.v, 2)),
			common.FormatDecimal(common.DecimalToFixed(common.MPH(row.v), 1)))
	}
	fmt.Fprintf(tw, "distance\t%sm\n", humanize.SIWithDigits(sum.Distance, 2, ""))
	fmt.Fprintf(tw, "stopped\t%s%%\n", common.FormatDecimal(common.DecimalToFixed(sum.StoppedFraction*100, 1)))
	return tw.Flush()
}
