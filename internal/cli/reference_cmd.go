package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/reusecalc/internal/reference"
	"github.com/rshade/reusecalc/internal/units"
)

// referenceLister prints one reference table.
type referenceLister func(w io.Writer, t *reference.Tables) error

//nolint:gochecknoglobals // Fixed lookup table of listable tables.
var referenceListers = map[string]referenceLister{
	"materials":   listMaterials,
	"categories":  listCategories,
	"types":       listProductTypes,
	"states":      listStates,
	"frequencies": listFrequencies,
	"dishwashers": listDishwashers,
	"costs":       listCostCategories,
	"waste":       listWasteStreams,
}

func referenceTableNames() []string {
	names := make([]string, 0, len(referenceListers))
	for name := range referenceListers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewReferenceListCmd creates the "reference list" command.
func NewReferenceListCmd() *cobra.Command {
	names := referenceTableNames()
	return &cobra.Command{
		Use:       "list TABLE",
		Short:     "List a table from the factor library",
		Long:      "Lists one factor library table. Tables: " + strings.Join(names, ", "),
		Example:   "  reusecalc reference list materials",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}
			return referenceListers[args[0]](cmd.OutOrStdout(), tables)
		},
	}
}

// NewReferenceValidateCmd creates the "reference validate" command, which
// checks a replacement factor library before it is configured.
func NewReferenceValidateCmd() *cobra.Command {
	var minVersion string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a factor library file",
		Example: `  reusecalc reference validate factors.yaml
  reusecalc reference validate factors.yaml --min-version "^1.2.0"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			constraint := minVersion
			if constraint == "" {
				constraint = configFromContext(cmd.Context()).Reference.MinVersion
			}
			tables, err := reference.LoadWithConstraint(args[0], constraint)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: valid factor library version %s\n", args[0], tables.Version())
			fmt.Fprintf(w, "  %d materials, %d categories, %d product types, %d dishwashers, %d states\n",
				len(tables.Materials()), len(tables.ProductCategories()), len(tables.ProductTypes()),
				len(tables.Dishwashers()), len(tables.States()))
			return nil
		},
	}

	cmd.Flags().StringVar(&minVersion, "min-version", "", "semver constraint the library must satisfy")
	return cmd
}

func listMaterials(w io.Writer, t *reference.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMTCO2E/LB\tWATER GAL/LB")
	for _, m := range t.Materials() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\n", m.ID, m.Name, m.MTCO2ePerLb, m.WaterUsageGalPerLb)
	}
	return tw.Flush()
}

func listCategories(w io.Writer, t *reference.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range t.ProductCategories() {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

func listProductTypes(w io.Writer, t *reference.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
	for _, pt := range t.ProductTypes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", pt.ID, pt.Name, pt.CategoryID)
	}
	return tw.Flush()
}

func listStates(w io.Writer, t *reference.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tGAS $/THERM\tELECTRIC $/KWH\tWATER $/GAL")
	for _, s := range t.States() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\n", s.Code, s.Name, s.Rates.Gas, s.Rates.Electric, s.Rates.Water)
	}
	avg := t.NationalAverageRates()
	fmt.Fprintf(tw, "-\tNational average\t%g\t%g\t%g\n", avg.Gas, avg.Electric, avg.Water)
	return tw.Flush()
}

func listFrequencies(w io.Writer, t *reference.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "FREQUENCY\tPER YEAR")
	for _, f := range t.Frequencies() {
		fmt.Fprintf(tw, "%s\t%s\n", f.Name, units.FormatNumber(f.AnnualOccurrence, 0))
	}
	return tw.Flush()
}

func listDishwashers(w io.Writer, t *reference.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tTEMPERATURE\tENERGY STAR\tWATER GAL/RACK\tKWH/RACK")
	for _, d := range t.Dishwashers() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%g\t%g\n",
			d.Type, d.Temperature, d.EnergyStarCertified, d.WaterGallonsPerRack, d.ElectricKWhPerRack)
	}
	return tw.Flush()
}

func listCostCategories(w io.Writer, t *reference.Tables) error {
	for _, c := range t.AdditionalCostCategories() {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}

func listWasteStreams(w io.Writer, t *reference.Tables) error {
	for _, s := range t.WasteStreams() {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
