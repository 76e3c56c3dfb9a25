package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/reusecalc/internal/engine"
	"github.com/rshade/reusecalc/internal/ingest"
	"github.com/rshade/reusecalc/internal/logging"
)

// OrgRollupParams holds the flags of the org rollup command.
type OrgRollupParams struct {
	InputPaths  []string
	Concurrency int
	BatchSize   int
	Output      string
}

// NewOrgRollupCmd creates the "org rollup" command, which sums the
// projections of every project across one or more documents.
func NewOrgRollupCmd() *cobra.Command {
	var params OrgRollupParams

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Sum project reports across an organization",
		Example: `  # Roll up two documents
  reusecalc org rollup --input campus.json --input annex.yaml

  # One project per NDJSON line
  reusecalc org rollup --input campus.json --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeOrgRollup(cmd, params)
		},
	}

	cmd.Flags().StringArrayVar(&params.InputPaths, "input", nil, "project document (repeatable)")
	cmd.Flags().IntVar(&params.Concurrency, "concurrency", 0, "batches computed at once (default from config)")
	cmd.Flags().IntVar(&params.BatchSize, "batch-size", 0, "projects per batch (0 = default)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, "output format (table, json, ndjson)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func executeOrgRollup(cmd *cobra.Command, params OrgRollupParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}

	concurrency := params.Concurrency
	if !cmd.Flags().Changed("concurrency") {
		concurrency = configFromContext(ctx).Rollup.Concurrency
	}
	if concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	if params.BatchSize < 0 {
		return fmt.Errorf("batch-size must be >= 0, got %d", params.BatchSize)
	}

	calc, err := newCalculator(cmd)
	if err != nil {
		return err
	}

	projects, err := ingest.LoadProjects(ctx, calc.Tables(), params.InputPaths...)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Strs("inputs", params.InputPaths).Msg("failed to load projects")
		return fmt.Errorf("loading projects: %w", err)
	}

	org, err := calc.GetOrganizationProjections(ctx, projects, engine.RollupOptions{
		Concurrency: concurrency,
		BatchSize:   params.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("rolling up projects: %w", err)
	}

	return renderOrganization(cmd.OutOrStdout(), format, displayCurrency(cmd, ""), org)
}
