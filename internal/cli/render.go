package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/reusecalc/internal/engine"
	"github.com/rshade/reusecalc/internal/greenops"
	"github.com/rshade/reusecalc/internal/units"
)

// Rendering constants.
const (
	tabPadding     = 2
	summaryWidth   = 64
	notApplicable  = "N/A"
	weightDecimals = 2
	ghgDecimals    = 4
)

// projectReport is the JSON shape of one project's report.
type projectReport struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Projections *engine.Projections `json:"projections"`
}

// reportStyle applies terminal styling. The zero value renders plain text.
type reportStyle struct {
	styled  bool
	title   lipgloss.Style
	section lipgloss.Style
	savings lipgloss.Style
	cost    lipgloss.Style
	box     lipgloss.Style
}

func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

func boxTitleColor() lipgloss.Color { return lipgloss.Color("39") }

func savingsColor() lipgloss.Color { return lipgloss.Color("42") }

func costColor() lipgloss.Color { return lipgloss.Color("196") }

// newReportStyle returns lipgloss styling when w is a terminal.
func newReportStyle(w io.Writer) reportStyle {
	if !isWriterTerminal(w) {
		return reportStyle{}
	}
	return reportStyle{
		styled:  true,
		title:   lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor()),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		savings: lipgloss.NewStyle().Foreground(savingsColor()),
		cost:    lipgloss.NewStyle().Foreground(costColor()),
		box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(boxBorderColor()).
			Padding(0, 1).
			Width(summaryWidth),
	}
}

// isWriterTerminal reports whether w is a terminal file.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

func (s reportStyle) heading(text string, underline rune) string {
	if s.styled {
		return s.title.Render(text)
	}
	return text + "\n" + strings.Repeat(string(underline), len(text))
}

func (s reportStyle) sectionTitle(text string) string {
	if s.styled {
		return s.section.Render(text)
	}
	return text
}

// money colors a signed change: negative is savings.
func (s reportStyle) money(v float64, currency string) string {
	text := units.FormatDollars(v, currency)
	if !s.styled {
		return text
	}
	switch {
	case v < 0:
		return s.savings.Render(text)
	case v > 0:
		return s.cost.Render(text)
	default:
		return text
	}
}

func (s reportStyle) boxed(body string) string {
	if s.styled {
		return s.box.Render(strings.TrimRight(body, "\n"))
	}
	return body
}

// formatOptional renders a nil payback or ROI as N/A.
func formatOptional(v *float64, precision int, suffix string) string {
	if v == nil {
		return notApplicable
	}
	return units.FormatNumber(*v, precision) + suffix
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderNDJSON writes each item on its own line.
func renderNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// renderProjectReports writes project reports in the requested format.
func renderProjectReports(w io.Writer, format, currency string, reports []projectReport) error {
	switch format {
	case outputFormatJSON:
		return renderJSON(w, reports)
	case outputFormatNDJSON:
		return renderNDJSON(w, reports)
	default:
		style := newReportStyle(w)
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderProjectTable(w, style, currency, r); err != nil {
				return err
			}
		}
		return nil
	}
}

// renderProjectTable writes one project's report as text.
func renderProjectTable(w io.Writer, style reportStyle, currency string, r projectReport) error {
	p := r.Projections
	title := "Project: " + r.Name
	if r.Name == "" {
		title = "Project: " + r.ID
	}
	fmt.Fprintln(w, style.heading(title, '='))
	fmt.Fprintln(w)

	summary, err := summaryBlock(style, currency, p.AnnualSummary, p.FinancialResults.Summary,
		p.FinancialResults.OneTimeCosts.Total)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, style.boxed(summary))
	fmt.Fprintln(w)

	renderAnnualCosts(w, style, currency, p.FinancialResults.AnnualCostChanges)
	renderOneTimeCosts(w, style, currency, p.FinancialResults.OneTimeCosts)
	renderSingleUse(w, style, currency, p.SingleUseProductResults)
	renderEnvironmental(w, style, p.EnvironmentalResults)
	renderUtilities(w, style, currency, p.FinancialResults.UtilityDetails)
	return nil
}

// summaryBlock builds the headline lines shared by project and org reports.
func summaryBlock(
	style reportStyle,
	currency string,
	annual engine.AnnualSummary,
	fin engine.FinancialSummary,
	oneTime float64,
) (string, error) {
	change, err := greenops.DescribeChange(annual.GreenhouseGasEmissions)
	if err != nil {
		return "", fmt.Errorf("describing emissions change: %w", err)
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Net annual cost change:\t%s\n", style.money(annual.DollarCost, currency))
	fmt.Fprintf(tw, "One-time costs:\t%s\n", units.FormatDollars(oneTime, currency))
	fmt.Fprintf(tw, "Payback period:\t%s\n", formatOptional(fin.PaybackPeriodsMonths, 0, " months"))
	fmt.Fprintf(tw, "Annual ROI:\t%s\n", formatOptional(fin.AnnualROIPercent, 2, "%"))
	fmt.Fprintf(tw, "Single-use units change:\t%s\n", units.FormatNumber(annual.SingleUseProductCount, 0))
	fmt.Fprintf(tw, "Waste weight change:\t%s lb\n", units.FormatNumber(annual.WasteWeight, weightDecimals))
	fmt.Fprintf(tw, "GHG reduction:\t%s MTCO2e\n", units.FormatNumber(annual.GreenhouseGasEmissions, ghgDecimals))
	_ = tw.Flush()
	b.WriteString(change.Headline)
	b.WriteString("\n")
	return b.String(), nil
}

func renderAnnualCosts(w io.Writer, style reportStyle, currency string, c engine.AnnualCostChanges) {
	fmt.Fprintln(w, style.sectionTitle("Annual cost changes"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "  Single-use products\t%s\n", style.money(c.SingleUseProductChange, currency))
	fmt.Fprintf(tw, "  Reusable replacements\t%s\n", style.money(c.ReusableProductCosts, currency))
	fmt.Fprintf(tw, "  Additional costs\t%s\n", style.money(c.AdditionalCosts, currency))
	fmt.Fprintf(tw, "  Utilities\t%s\n", style.money(c.Utilities, currency))
	fmt.Fprintf(tw, "  Waste hauling\t%s\n", style.money(c.WasteHauling, currency))
	fmt.Fprintf(tw, "  Total\t%s\n", style.money(c.Total, currency))
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func renderOneTimeCosts(w io.Writer, style reportStyle, currency string, c engine.OneTimeCosts) {
	fmt.Fprintln(w, style.sectionTitle("One-time costs"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "  Reusable products\t%s\n", units.FormatDollars(c.ReusableProductCosts, currency))
	fmt.Fprintf(tw, "  Additional costs\t%s\n", units.FormatDollars(c.AdditionalCosts, currency))
	fmt.Fprintf(tw, "  Total\t%s\n", units.FormatDollars(c.Total, currency))
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func renderSingleUse(w io.Writer, style reportStyle, currency string, r engine.SingleUseProductResults) {
	fmt.Fprintln(w, style.sectionTitle("Single-use purchasing"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "  \tBASELINE\tFORECAST\tCHANGE\t%")
	writeMoneyRow(tw, "Annual cost", r.Summary.AnnualCost, currency)
	writeCountRow(tw, "Annual units", r.Summary.AnnualUnits)
	writeCountRow(tw, "Products", r.Summary.ProductCount)
	_ = tw.Flush()
	fmt.Fprintln(w)

	for _, table := range []struct {
		title string
		rows  []engine.BreakdownRow
	}{
		{"By material", r.ResultsByType.Material.Rows},
		{"By product category", r.ResultsByType.ProductCategory.Rows},
		{"By product type", r.ResultsByType.ProductType.Rows},
	} {
		if len(table.rows) == 0 {
			continue
		}
		fmt.Fprintln(w, style.sectionTitle(table.title))
		tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tBASELINE\tFORECAST\tCHANGE\t%")
		for _, row := range table.rows {
			writeMoneyRow(tw, row.Name, row.AnnualCost, currency)
		}
		_ = tw.Flush()
		fmt.Fprintln(w)
	}
}

func renderEnvironmental(w io.Writer, style reportStyle, e engine.EnvironmentalResults) {
	fmt.Fprintln(w, style.sectionTitle("Greenhouse gas reductions (MTCO2e)"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "  Landfill waste\t%s\n", units.FormatNumber(e.AnnualGasEmissionChanges.LandfillWaste, ghgDecimals))
	fmt.Fprintf(tw, "  Dishwashing\t%s\n", units.FormatNumber(e.AnnualGasEmissionChanges.Dishwashing, ghgDecimals))
	fmt.Fprintf(tw, "  Total\t%s\n", units.FormatNumber(e.AnnualGasEmissionChanges.Total, ghgDecimals))
	_ = tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintln(w, style.sectionTitle("Waste (lb) and water (gal)"))
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "  \tBASELINE\tFORECAST\tCHANGE\t%")
	writeCountRow(tw, "Product weight", e.AnnualWasteChanges.DisposableProductWeight)
	writeCountRow(tw, "Shipping box weight", e.AnnualWasteChanges.DisposableShippingBoxWeight)
	writeCountRow(tw, "Total waste", e.AnnualWasteChanges.Total)
	writeCountRow(tw, "Product water", e.AnnualWaterUsageChanges.DisposableProducts)
	writeCountRow(tw, "Dishwashing water", e.AnnualWaterUsageChanges.Dishwashing)
	writeCountRow(tw, "Total water", e.AnnualWaterUsageChanges.Total)
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func renderUtilities(w io.Writer, style reportStyle, currency string, d engine.DishwasherResults) {
	if d.Baseline.RacksPerYear == 0 && d.Forecast.RacksPerYear == 0 {
		return
	}
	fmt.Fprintln(w, style.sectionTitle("Dishwasher utilities"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "  \tBASELINE\tFORECAST")
	fmt.Fprintf(tw, "  Racks per year\t%s\t%s\n",
		units.FormatNumber(d.Baseline.RacksPerYear, 0), units.FormatNumber(d.Forecast.RacksPerYear, 0))
	fmt.Fprintf(tw, "  Electric (kWh)\t%s\t%s\n",
		units.FormatNumber(d.Baseline.ElectricUsage, weightDecimals),
		units.FormatNumber(d.Forecast.ElectricUsage, weightDecimals))
	fmt.Fprintf(tw, "  Gas (therms)\t%s\t%s\n",
		units.FormatNumber(d.Baseline.GasUsage, weightDecimals), units.FormatNumber(d.Forecast.GasUsage, weightDecimals))
	fmt.Fprintf(tw, "  Water (gal)\t%s\t%s\n",
		units.FormatNumber(d.Baseline.WaterUsage, weightDecimals),
		units.FormatNumber(d.Forecast.WaterUsage, weightDecimals))
	fmt.Fprintf(tw, "  Total cost\t%s\t%s\n",
		units.FormatDollars(d.Baseline.TotalCost, currency), units.FormatDollars(d.Forecast.TotalCost, currency))
	fmt.Fprintf(tw, "  Change\t\t%s\n", style.money(d.CostChange(), currency))
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func writeMoneyRow(tw *tabwriter.Writer, label string, row engine.ChangeSummary, currency string) {
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", label,
		units.FormatDollars(row.Baseline, currency),
		units.FormatDollars(row.Followup, currency),
		units.FormatDollars(row.Change, currency),
		units.FormatPercent(row.ChangePercent))
}

func writeCountRow(tw *tabwriter.Writer, label string, row engine.ChangeSummary) {
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", label,
		units.FormatNumber(row.Baseline, weightDecimals),
		units.FormatNumber(row.Followup, weightDecimals),
		units.FormatNumber(row.Change, weightDecimals),
		units.FormatPercent(row.ChangePercent))
}

// renderOrganization writes an organization roll-up in the requested format.
func renderOrganization(w io.Writer, format, currency string, org *engine.OrganizationProjections) error {
	switch format {
	case outputFormatJSON:
		return renderJSON(w, org)
	case outputFormatNDJSON:
		return renderNDJSON(w, org.Projects)
	default:
		return renderOrganizationTable(w, newReportStyle(w), currency, org)
	}
}

func renderOrganizationTable(w io.Writer, style reportStyle, currency string, org *engine.OrganizationProjections) error {
	fmt.Fprintln(w, style.heading(fmt.Sprintf("Organization roll-up (%d projects)", org.ProjectCount), '='))
	fmt.Fprintln(w)

	summary, err := summaryBlock(style, currency, org.AnnualSummary, org.Financial.Summary,
		org.Financial.OneTimeCosts.Total)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, style.boxed(summary))
	fmt.Fprintln(w)

	renderAnnualCosts(w, style, currency, org.Financial.AnnualCostChanges)
	renderOneTimeCosts(w, style, currency, org.Financial.OneTimeCosts)

	fmt.Fprintln(w, style.sectionTitle("Projects"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "  PROJECT\tANNUAL COST CHANGE\tPAYBACK (MONTHS)\tROI\tGHG REDUCTION (MTCO2E)")
	for _, p := range org.Projects {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", name,
			units.FormatDollars(p.AnnualSummary.DollarCost, currency),
			formatOptional(p.Financial.PaybackPeriodsMonths, 0, ""),
			formatOptional(p.Financial.AnnualROIPercent, 2, "%"),
			units.FormatNumber(p.AnnualSummary.GreenhouseGasEmissions, ghgDecimals))
	}
	return tw.Flush()
}
