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
	"github.com/rotblauer/drivecycle/common"
	"github.com/rotblauer/drivecycle/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"os"
	"strings"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "drivecycle",
	Short: "Generate synthetic drive cycles and check simulation logs against requirements",
	Long: `
drivecycle generates randomized highway drive cycles (time, speed) emulating
alternating free-flow and dense traffic, and verifies simulation logs against
vehicle-following and speed-tracking requirements.

Flags may also be set in a config file (--config, default $HOME/.drivecycle.yaml)
or in the environment, prefixed DRIVECYCLE_, eg. DRIVECYCLE_SEED=42.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.drivecycle.yaml)")
	pFlags.String("log-level", "info", "Log level: debug, info, warn, error")
	pFlags.String("log-format", "text", "Log format: text or json")
	bindFlags(pFlags)
}

// bindFlags makes flags readable through viper, and so settable by config file and environment.
func bindFlags(flags *pflag.FlagSet) {
	if err := viper.BindPFlags(flags); err != nil {
		log.Fatalln(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".drivecycle")
	}

	viper.SetEnvPrefix(params.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Fatalln(err)
	}
}

// setDefaultSlog installs the default slog logger per the log flags.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	h, err := common.NewSlogHandler(os.Stderr, viper.GetString("log-format"), viper.GetString("log-level"))
	if err != nil {
		log.Fatalln(err)
	}
	slog.SetDefault(slog.New(h).With("cmd", cmd.Name()))
	wd, _ := os.Getwd()
	slog.Debug("Command", "args", args, "wd", wd)
}
