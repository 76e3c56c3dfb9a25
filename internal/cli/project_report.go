package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/reusecalc/internal/engine"
	"github.com/rshade/reusecalc/internal/ingest"
	"github.com/rshade/reusecalc/internal/logging"
)

// ProjectReportParams holds the flags of the project report command.
type ProjectReportParams struct {
	InputPath string
	ProjectID string
	Output    string
}

// NewProjectReportCmd creates the "project report" command, which computes
// the full projections for every project in a document.
func NewProjectReportCmd() *cobra.Command {
	var params ProjectReportParams

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the annual impact report for a project",
		Long: `Loads a project document (YAML or JSON), resolves its products against
the factor library and prints the financial, environmental and purchasing
projections for each project it contains.`,
		Example: `  # Table output
  reusecalc project report --input cafe.yaml

  # One project from a multi-project document, as JSON
  reusecalc project report --input campus.json --project dining-hall --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeProjectReport(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.InputPath, "input", "", "path to a project document (YAML or JSON)")
	cmd.Flags().StringVar(&params.ProjectID, "project", "", "only report the project with this ID")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, "output format (table, json, ndjson)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func executeProjectReport(cmd *cobra.Command, params ProjectReportParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}

	calc, err := newCalculator(cmd)
	if err != nil {
		return err
	}

	projects, err := ingest.LoadProjects(ctx, calc.Tables(), params.InputPath)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("input", params.InputPath).Msg("failed to load projects")
		return fmt.Errorf("loading projects: %w", err)
	}
	projects, err = filterProjects(projects, params.ProjectID)
	if err != nil {
		return err
	}

	reports := make([]projectReport, 0, len(projects))
	for _, project := range projects {
		p, projErr := calc.GetProjections(ctx, project)
		if projErr != nil {
			log.Error().Ctx(ctx).Err(projErr).Str("project_id", project.ID).Msg("projection failed")
			return fmt.Errorf("project %s: %w", projectLabel(project), projErr)
		}
		reports = append(reports, projectReport{ID: project.ID, Name: project.Name, Projections: p})
	}
	log.Debug().Ctx(ctx).Int("project_count", len(reports)).Msg("projections computed")

	currency := ""
	if len(projects) > 0 {
		currency = projects[0].Currency
	}
	return renderProjectReports(cmd.OutOrStdout(), format, displayCurrency(cmd, currency), reports)
}

// filterProjects keeps only the project with id, when id is set.
func filterProjects(projects []engine.ProjectInput, id string) ([]engine.ProjectInput, error) {
	if id == "" {
		return projects, nil
	}
	for _, p := range projects {
		if p.ID == id {
			return []engine.ProjectInput{p}, nil
		}
	}
	return nil, fmt.Errorf("project %q not found in input", id)
}

func projectLabel(p engine.ProjectInput) string {
	if p.Name != "" {
		return fmt.Sprintf("%q (%s)", p.Name, p.ID)
	}
	return p.ID
}
