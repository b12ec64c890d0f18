package cmd

import (
	"fmt"
	"strings"

	"github.com/kamal-hamza/gridrisk/internal/catalog"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

// renderMetrics renders label/value/delta rows
func renderMetrics(title string, metrics []catalog.Metric) string {
	var b strings.Builder
	b.WriteString(ui.StyleHeader.Render(title) + "\n")
	for _, m := range metrics {
		delta := ""
		if m.Delta != "" {
			style := ui.StyleSuccess
			if strings.HasPrefix(m.Delta, "-") {
				style = ui.StyleWarning
			}
			delta = style.Render(m.Delta)
		}
		b.WriteString(fmt.Sprintf("  %-26s %-10s %s\n", m.Label, ui.StyleBold.Render(m.Value), delta))
	}
	return b.String()
}

// renderSteps renders named steps, numbered when ordered
func renderSteps(title string, steps []catalog.Step, numbered bool) string {
	var b strings.Builder
	b.WriteString(ui.StyleHeader.Render(title) + "\n")
	for i, s := range steps {
		prefix := "  • "
		if numbered {
			prefix = fmt.Sprintf("  %d. ", i+1)
		}
		b.WriteString(prefix + ui.StyleBold.Render(s.Name) + ": " + s.Description + "\n")
	}
	return b.String()
}

func renderModelsPage() string {
	var b strings.Builder

	b.WriteString(ui.FormatTitle("ML Model Performance") + "\n\n")

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Model", Width: 28},
		{Header: "Precision", Align: "right"},
		{Header: "Recall", Align: "right"},
		{Header: "F1", Align: "right"},
		{Header: "Accuracy", Align: "right"},
	})
	for _, m := range catalog.ModelPerformance {
		table.AddRow([]string{
			m.Name,
			fmt.Sprintf("%.2f", m.Precision),
			fmt.Sprintf("%.2f", m.Recall),
			fmt.Sprintf("%.2f", m.F1),
			fmt.Sprintf("%.2f", m.Accuracy),
		})
	}
	b.WriteString(table.Render() + "\n")

	b.WriteString(ui.StyleHeader.Render("Feature Engineering") + "\n")
	for _, g := range catalog.FeatureGroups {
		b.WriteString("  " + ui.StyleAccent.Render(g.Category) + "\n")
		b.WriteString(ui.FormatMuted("    "+strings.Join(g.Features, ", ")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(renderSteps("Automated Retraining Pipeline", catalog.RetrainingPipeline, true) + "\n")
	b.WriteString(renderMetrics("Model Monitoring", catalog.ModelMonitoring))

	return b.String()
}

// renderCrewsPage lists crew assignments. Assets missing from fleet are
// flagged; a nil fleet skips the check.
func renderCrewsPage(fleet *domain.Fleet) string {
	var b strings.Builder

	b.WriteString(ui.FormatTitle("Crew Scheduling & Optimisation") + "\n\n")

	for _, c := range catalog.CrewAssignments {
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			ui.IconCrew, ui.StyleBold.Render(c.CrewID), ui.FormatMuted(c.Specialization)))
		b.WriteString(fmt.Sprintf("    Assets: %s\n", strings.Join(c.AssignedAssets, ", ")))
		b.WriteString(fmt.Sprintf("    Work hours: %d  |  %s  |  Priority %.2f\n", c.WorkHours, c.TravelSaved, c.PriorityScore))

		if fleet != nil {
			missing := catalog.UnknownAssignments(c, func(id string) bool {
				_, ok := fleet.Lookup(id)
				return ok
			})
			if len(missing) > 0 {
				b.WriteString("    " + ui.FormatWarning("Not in this sample: "+strings.Join(missing, ", ")) + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(renderMetrics("Crew Capacity", catalog.CrewCapacity) + "\n")
	b.WriteString(renderSteps("Optimisation Algorithm", catalog.Optimisation, false) + "\n")
	b.WriteString(renderSteps("Weekly Schedule", catalog.WeeklySchedule, false))

	return b.String()
}

func renderArchitecturePage() string {
	var b strings.Builder

	b.WriteString(ui.FormatTitle("Production Architecture") + "\n\n")
	b.WriteString(ui.StyleHeader.Render("Data Flow") + "\n")
	b.WriteString("  " + strings.Join(catalog.DataFlow, ui.StyleMuted.Render(" → ")) + "\n\n")

	for _, group := range []struct {
		title      string
		components []catalog.Component
	}{
		{"ML Training Infrastructure", catalog.TrainingComponents},
		{"Production Services", catalog.ProductionComponents},
	} {
		b.WriteString(ui.StyleHeader.Render(fmt.Sprintf("%s (%d replicas)", group.title, catalog.TotalReplicas(group.components))) + "\n")
		table := ui.NewTable([]ui.TableColumn{
			{Header: "Component", Width: 24},
			{Header: "Replicas", Align: "right"},
			{Header: "CPU"},
			{Header: "Memory"},
		})
		for _, c := range group.components {
			table.AddRow([]string{c.Name, fmt.Sprintf("%d", c.Replicas), c.CPU, c.Memory})
		}
		b.WriteString(table.Render() + "\n")
	}

	b.WriteString(renderSteps("Airflow DAGs", catalog.AirflowDAGs, false) + "\n")
	b.WriteString(renderMetrics("Cluster Performance", catalog.ClusterPerformance) + "\n")
	b.WriteString(renderSteps("Cost Optimisation", catalog.ClusterCostOptimisation, false))

	return b.String()
}

func renderImpactPage(roi catalog.ROIResult) string {
	var b strings.Builder
	impact := catalog.BusinessImpact

	b.WriteString(ui.FormatTitle("Business Impact & ROI") + "\n\n")

	w := []struct{ k, v string }{
		{"Assets Monitored", fmt.Sprintf("%d", impact.TotalAssetsMonitored)},
		{"High-Risk Identified", fmt.Sprintf("%d (%.1f%%)", impact.HighRiskIdentified, impact.PercentageHighRisk)},
		{"Potential Savings", domain.FormatMoney(impact.PotentialSavings)},
		{"Prevented Outages", fmt.Sprintf("%d", impact.PreventedOutages)},
		{"Crew Efficiency Gain", fmt.Sprintf("%d%%", impact.CrewEfficiencyGain)},
		{"Alert Fatigue Reduction", fmt.Sprintf("%d%%", impact.AlertFatigueReduction)},
	}
	for _, kv := range w {
		b.WriteString("  " + ui.RenderKeyValue(kv.k, kv.v) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(ui.StyleHeader.Render("Annual Savings Breakdown") + "\n")
	maxAmount := 0
	for _, c := range catalog.CostCategories {
		if c.Amount > maxAmount {
			maxAmount = c.Amount
		}
	}
	for _, c := range catalog.CostCategories {
		b.WriteString(fmt.Sprintf("  %-32s %s %s\n", c.Category,
			ui.StyleAccent.Render(padBar(ui.RenderBar(c.Amount, maxAmount, 20), 20)),
			ui.FormatMuted(domain.FormatMoney(c.Amount))))
	}
	b.WriteString("\n")

	b.WriteString(ui.StyleHeader.Render("ROI") + "\n")
	b.WriteString("  " + ui.RenderKeyValue("Implementation Cost", domain.FormatMoney(roi.ImplementationCost)) + "\n")
	b.WriteString("  " + ui.RenderKeyValue("Annual Savings", domain.FormatMoney(roi.AnnualSavings)) + "\n")
	b.WriteString("  " + ui.RenderKeyValue("ROI", fmt.Sprintf("%.0f%%", roi.ROIPercent)) + "\n")
	b.WriteString("  " + ui.RenderKeyValue("Payback Period", fmt.Sprintf("%.1f months", roi.PaybackMonths)) + "\n")
	b.WriteString("  " + ui.RenderKeyValue("3-Year NPV", domain.FormatMoney(roi.ThreeYearNPV)) + "\n\n")

	b.WriteString(ui.StyleHeader.Render("Key Learnings") + "\n")
	b.WriteString(ui.RenderSimpleList(catalog.KeyLearnings))

	return b.String()
}
