package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/reusecalc/internal/config"
	"github.com/rshade/reusecalc/internal/engine"
	"github.com/rshade/reusecalc/internal/logging"
	"github.com/rshade/reusecalc/internal/reference"
)

// loadTables returns the factor library named by --reference or the config,
// or the embedded library. The configured min_version applies either way.
func loadTables(cmd *cobra.Command) (*reference.Tables, error) {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := configFromContext(ctx)

	path, _ := cmd.Flags().GetString("reference")
	if path == "" {
		path = cfg.Reference.File
	}

	var (
		tables *reference.Tables
		err    error
	)
	if path == "" {
		tables, err = reference.Default()
		if err == nil {
			err = tables.CheckVersion(cfg.Reference.MinVersion)
		}
	} else {
		tables, err = reference.LoadWithConstraint(path, cfg.Reference.MinVersion)
	}
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("reference_file", path).Msg("failed to load factor library")
		return nil, fmt.Errorf("loading factor library: %w", err)
	}

	log.Debug().Ctx(ctx).
		Str("reference_file", path).
		Str("reference_version", tables.Version().String()).
		Msg("factor library loaded")
	return tables, nil
}

// newCalculator loads the factor library and builds a calculator over it.
func newCalculator(cmd *cobra.Command) (*engine.Calculator, error) {
	tables, err := loadTables(cmd)
	if err != nil {
		return nil, err
	}
	return engine.NewCalculator(tables)
}

// resolveOutputFormat returns the --output value, or the configured default
// when the flag was not given.
func resolveOutputFormat(cmd *cobra.Command, flagValue string) (string, error) {
	format := flagValue
	if !cmd.Flags().Changed("output") {
		format = configFromContext(cmd.Context()).Output.DefaultFormat
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains([]string{outputFormatTable, outputFormatJSON, outputFormatNDJSON}, format) {
		return "", fmt.Errorf("%w: got %q", config.ErrInvalidOutputFormat, format)
	}
	return format, nil
}

// displayCurrency picks the project's currency label, falling back to the
// configured one.
func displayCurrency(cmd *cobra.Command, projectCurrency string) string {
	if projectCurrency != "" {
		return projectCurrency
	}
	return configFromContext(cmd.Context()).Output.Currency
}
