package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/stlpath/internal/config"
	"github.com/philipparndt/stlpath/internal/logger"
	"github.com/philipparndt/stlpath/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logFile   string
	tolerance float64

	// appConfig is resolved before any subcommand runs
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "stlpath",
	Short: "Find the shortest face path across an STL surface",
	Long: `stlpath reads ASCII or binary STL files, welds the triangle soup into a
connected surface and finds the path with the fewest faces between two
points on it. The path is exported as one centroid and normal per face.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./stlpath.yaml or the user config dir)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	flags.Float64Var(&tolerance, "tolerance", 0, "vertex weld tolerance in model units")
}

// setup loads the config with priority defaults < file < flags and
// installs the logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.LogFile = logFile
	}
	if flags.Changed("tolerance") {
		cfg.Mesh.WeldTolerance = tolerance
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}

	appConfig = cfg
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
