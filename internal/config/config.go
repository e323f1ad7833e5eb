// Package config loads generator settings from a config file, the
// environment and command-line flags through viper.
//
// Lookup order for the file: an explicit path, ./.analytics-codegen.yaml,
// then $HOME/.analytics-codegen.yaml. Environment variables use the
// ANALYTICS_CODEGEN_ prefix (ANALYTICS_CODEGEN_RUNTIME_IMPORT, ...).
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"analytics-codegen/internal/emit"
	"analytics-codegen/internal/generate"
	"analytics-codegen/internal/ingest"
	"analytics-codegen/internal/logging"
	"analytics-codegen/internal/naming"
	"analytics-codegen/internal/resolve"
)

const (
	// FileName is the config file name without extension.
	FileName = ".analytics-codegen"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "ANALYTICS_CODEGEN"
	// DefaultSheetTimeout bounds a remote spreadsheet download.
	DefaultSheetTimeout = 30 * time.Second
)

var keys = []string{
	"input", "output", "taxonomy", "language", "package", "runtime_import",
	"runtime_package", "prefix", "parameter_separator", "advertisement_keys",
	"strict_dimensions", "debug_dir", "sheet", "sheet_timeout", "log_format", "verbose",
}

// Config holds every setting of a generation run.
type Config struct {
	// Input is a local .csv/.xlsx path or a Google Sheets https URL.
	Input    string `mapstructure:"input"`
	// Output is the destination source file.
	Output   string `mapstructure:"output"`
	// Taxonomy is the registry YAML path.
	Taxonomy string `mapstructure:"taxonomy"`

	Language       string `mapstructure:"language"`
	Package        string `mapstructure:"package"`
	RuntimeImport  string `mapstructure:"runtime_import"`
	RuntimePackage string `mapstructure:"runtime_package"`
	Prefix         string `mapstructure:"prefix"`
	// DebugDir receives unformatted Go output when formatting fails.
	DebugDir       string `mapstructure:"debug_dir"`

	ParameterSeparator string   `mapstructure:"parameter_separator"`
	AdvertisementKeys  []string `mapstructure:"advertisement_keys"`
	StrictDimensions   bool     `mapstructure:"strict_dimensions"`

	// Columns adds header aliases per logical column name.
	Columns map[string][]string `mapstructure:"columns"`

	// Sheet selects the XLSX worksheet.
	Sheet        string        `mapstructure:"sheet"`
	SheetTimeout time.Duration `mapstructure:"sheet_timeout"`

	LogFormat string `mapstructure:"log_format"`
	Verbose   bool   `mapstructure:"verbose"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Language:           emit.LanguageGo,
		Package:            emit.DefaultPackage,
		Prefix:             naming.DefaultPrefix,
		ParameterSeparator: resolve.DefaultSeparator,
		AdvertisementKeys:  []string{resolve.DefaultAdvertisementKey},
		SheetTimeout:       DefaultSheetTimeout,
		LogFormat:          logging.FormatConsole,
	}
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("language", d.Language)
	v.SetDefault("package", d.Package)
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("parameter_separator", d.ParameterSeparator)
	v.SetDefault("advertisement_keys", d.AdvertisementKeys)
	v.SetDefault("sheet_timeout", d.SheetTimeout)
	v.SetDefault("log_format", d.LogFormat)
}

// NewViper returns a viper instance with defaults, environment binding and
// the config file read in. A missing config file is not an error; a file
// that exists but does not parse is.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees environment values for keys viper already knows.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// Load unmarshals v and validates the result.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks required fields and enumerations.
func (c Config) Validate() error {
	var errs []error

	if c.Input == "" {
		errs = append(errs, errors.New("input is required"))
	}

	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}

	if c.Taxonomy == "" {
		errs = append(errs, errors.New("taxonomy is required"))
	}

	if !slices.Contains(emit.Languages(), strings.ToLower(c.Language)) {
		errs = append(errs, fmt.Errorf("language %q is not one of %s", c.Language, strings.Join(emit.Languages(), ", ")))
	}

	if strings.EqualFold(c.Language, emit.LanguageGo) && c.RuntimeImport == "" {
		errs = append(errs, errors.New("runtime_import is required for go output"))
	}

	if c.ParameterSeparator == "" {
		errs = append(errs, errors.New("parameter_separator must not be empty"))
	}

	if c.LogFormat != logging.FormatConsole && c.LogFormat != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("log_format %q is not one of console, json", c.LogFormat))
	}

	for name := range c.Columns {
		if _, err := ingest.ParseColumn(name); err != nil {
			errs = append(errs, fmt.Errorf("columns: %w", err))
		}
	}

	if c.SheetTimeout < 0 {
		errs = append(errs, errors.New("sheet_timeout must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// IngestOptions returns the table ingestion options.
func (c Config) IngestOptions() ingest.Options {
	opts := ingest.DefaultOptions()
	opts.Sheet = c.Sheet

	for name, aliases := range c.Columns {
		col, err := ingest.ParseColumn(name)
		if err != nil {
			continue
		}

		opts.Aliases[col] = append(opts.Aliases[col], aliases...)
	}

	return opts
}

// ResolveOptions returns the row validation options.
func (c Config) ResolveOptions() resolve.Options {
	return resolve.Options{
		Separator:         c.ParameterSeparator,
		AdvertisementKeys: c.AdvertisementKeys,
		StrictDimensions:  c.StrictDimensions,
		SuggestLimit:      resolve.DefaultSuggestLimit,
	}
}

// EmitConfig returns the emitter configuration.
func (c Config) EmitConfig() emit.Config {
	return emit.Config{
		Package:        c.Package,
		RuntimeImport:  c.RuntimeImport,
		RuntimePackage: c.RuntimePackage,
		DebugDir:       c.DebugDir,
	}
}

// DriverOptions returns the generation driver options.
func (c Config) DriverOptions() generate.Options {
	return generate.Options{Prefix: c.Prefix, Resolve: c.ResolveOptions()}
}

// LoggingOptions returns the logger options.
func (c Config) LoggingOptions() logging.Options {
	return logging.Options{Verbose: c.Verbose, Format: c.LogFormat}
}
