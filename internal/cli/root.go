// Package cli implements the reusecalc command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/reusecalc/internal/config"
	"github.com/rshade/reusecalc/internal/logging"
)

// Output formats accepted by --output.
const (
	outputFormatTable  = config.FormatTable
	outputFormatJSON   = config.FormatJSON
	outputFormatNDJSON = config.FormatNDJSON
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// configFromContext returns the configuration loaded by the root command, or
// the defaults when a command runs without it.
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.Default()
}

// NewRootCmd creates the root Cobra command for the reusecalc CLI. It loads
// configuration, wires up logging and tracing, and registers the project,
// org, reference and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "reusecalc",
		Short: "Reusable foodware impact calculator",
		Long: `reusecalc projects the annual financial and environmental impact of
replacing single-use foodservice products with reusables.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $REUSECALC_HOME/config.yaml)")
	cmd.PersistentFlags().String("reference", "", "factor library file (default: embedded library)")

	cmd.AddCommand(newProjectCmd(), newOrgCmd(), newReferenceCmd(), newConfigCmd())

	return cmd
}

// loadConfig reads the --config file, or the default config path.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Report on one project
  reusecalc project report --input cafe.yaml

  # Same report as JSON
  reusecalc project report --input cafe.yaml --output json

  # Roll up every project in several documents
  reusecalc org rollup --input campus.json --input annex.yaml

  # Show the materials in the factor library
  reusecalc reference list materials

  # Check a replacement factor library
  reusecalc reference validate factors.yaml --min-version ">= 1.0.0"

  # Initialize configuration
  reusecalc config init`

// newProjectCmd creates the project command group.
func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "project", Short: "Single-project reports"}
	cmd.AddCommand(NewProjectReportCmd())
	return cmd
}

// newOrgCmd creates the org command group.
func newOrgCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "org", Short: "Organization-wide reports"}
	cmd.AddCommand(NewOrgRollupCmd())
	return cmd
}

// newReferenceCmd creates the reference command group.
func newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "reference", Short: "Inspect and validate the factor library"}
	cmd.AddCommand(NewReferenceListCmd(), NewReferenceValidateCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
