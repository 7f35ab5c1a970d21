package main

import (
	"os"

	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose   bool
	logLevel  string
	logFormat string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "scitree",
		Short: "scitree grows and prunes decision trees",
		Long:  `A tool to grow classification trees from CSV data, prune them against held-out samples, and evaluate them`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.setupLogger()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log at debug level, overriding --log-level")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&(config.logFormat), "log-format", log.FormatConsole, "log format: console, json or cloud")
	rootCmd.AddCommand(versionCmd(), fitCmd(config))
	return rootCmd
}

func (rcc *rootCmdConfig) setupLogger() error {
	level := rcc.logLevel
	if rcc.verbose {
		level = "debug"
	}
	return log.SetupLogger(level, rcc.logFormat)
}
