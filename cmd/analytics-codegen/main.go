// Package main provides the CLI entrypoint for analytics-codegen.
//
// analytics-codegen reads an event tracking table (CSV, XLSX or a shared
// Google Sheet), validates every row against a taxonomy registry and merges
// one tracking function per event into the managed region of a Go or Swift
// source file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"analytics-codegen/internal/config"
	"analytics-codegen/internal/logging"
)

// Set by the linker.
var (
	version = "dev"
	commit  = "none"
)

// errFailed signals a run that already reported its own errors.
var errFailed = errors.New("generation failed")

var (
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
)

// skipConfig marks commands that run without a loaded configuration.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   "analytics-codegen",
	Short: "Generate analytics tracking functions from an event table",
	Long: `analytics-codegen turns a spreadsheet of analytics events into typed
tracking functions.

Each row names a screen, component, section, element and action, plus an
optional label and event parameters. Rows are validated against the taxonomy
registry and rendered into the region between

  // BEGIN GENERATED TRACKING FUNCTIONS
  // END GENERATED TRACKING FUNCTIONS

of the output file. Code outside the region is never touched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}

		v, err := config.NewViper(cfgFile)
		if err != nil {
			return err
		}

		if err := bindFlags(v, cmd); err != nil {
			return err
		}

		cfg, err = config.Load(v)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.LoggingOptions())
		if err != nil {
			return err
		}

		if used := v.ConfigFileUsed(); used != "" {
			logger.Debug("Using config file", zap.String("path", used))
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"input":               "input",
	"output":              "output",
	"taxonomy":            "taxonomy",
	"language":            "language",
	"package":             "package",
	"runtime-import":      "runtime_import",
	"runtime-package":     "runtime_package",
	"prefix":              "prefix",
	"parameter-separator": "parameter_separator",
	"advertisement-keys":  "advertisement_keys",
	"strict-dimensions":   "strict_dimensions",
	"debug-dir":           "debug_dir",
	"sheet":               "sheet",
	"sheet-timeout":       "sheet_timeout",
	"log-format":          "log_format",
	"verbose":             "verbose",
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.analytics-codegen.yaml or $HOME/.analytics-codegen.yaml)")
	flags.StringP("input", "i", "", "event table: .csv, .xlsx or a Google Sheets URL")
	flags.StringP("output", "o", "", "destination source file")
	flags.StringP("taxonomy", "t", "", "taxonomy registry YAML")
	flags.StringP("language", "l", "go", "output language: go, swift")
	flags.String("package", "", "package clause for new Go files")
	flags.String("runtime-import", "", "import path of the tracking runtime package")
	flags.String("runtime-package", "", "qualifier of the tracking runtime package")
	flags.String("prefix", "", "function name prefix")
	flags.String("parameter-separator", "", "separator between parameter keys")
	flags.StringSlice("advertisement-keys", nil, "parameter keys that mark advertisement context")
	flags.Bool("strict-dimensions", false, "reject unknown screens, components, sections and elements")
	flags.String("debug-dir", "", "directory for unformatted output when formatting fails")
	flags.String("sheet", "", "XLSX worksheet name (default: first sheet)")
	flags.Duration("sheet-timeout", 0, "timeout for downloading a Google Sheet")
	flags.String("log-format", "", "log format: console, json")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd, checkCmd, watchCmd, versionCmd)
}

// bindFlags lets explicitly set flags override the config file and
// environment.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}
