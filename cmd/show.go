package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var (
	showJSON bool
	showCopy bool
)

var showCmd = &cobra.Command{
	Use:   "show <asset_id>",
	Short: "Show one asset with its prediction readout",
	Long: `Show the detail card for one asset followed by the ensemble prediction
readout and the top risk factors.

The asset id is matched case-insensitively, so "ast-0007" works too.
Use the same --seed to look at an asset from an earlier listing.

Examples:
  gridrisk show AST-0001 --seed 42
  gridrisk show AST-0001 --seed 42 --json
  gridrisk show AST-0001 --seed 42 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the readout as JSON")
	showCmd.Flags().BoolVarP(&showCopy, "copy", "c", false, "Copy a one-line summary to the clipboard")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	query, gen, err := loadQuery(ctx)
	if err != nil {
		return err
	}

	prediction, err := services.NewPredictionService(query).Execute(ctx, services.PredictRequest{AssetID: args[0]})
	if err != nil {
		fmt.Println(ui.FormatError("Asset not found: " + args[0]))
		fmt.Println(ui.FormatMuted(generationLine(gen)))
		return err
	}

	if showJSON {
		out, err := marshalIndent(prediction, appConfig.SyntaxHighlighting)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	} else {
		fmt.Print(renderPrediction(*prediction, gen.Fleet.GeneratedAt()))
	}

	if showCopy {
		line := assetSummaryLine(prediction.Asset)
		// Clipboard is best effort; headless systems have none
		if err := clipboard.WriteAll(line); err != nil {
			fmt.Println(ui.FormatWarning("Could not copy to clipboard: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Copied: " + line))
		}
	}

	return nil
}

// assetSummaryLine is the single line copied to the clipboard
func assetSummaryLine(a domain.AssetRecord) string {
	return fmt.Sprintf("%s %s (%s, %s) %s %s failure, ~%d days",
		a.ID, a.Type, a.VoltageLevel, a.Location, a.RiskLevel, a.FailurePercent(), a.DaysToFailure)
}

// renderAssetCard renders the detail card for one asset
func renderAssetCard(a domain.AssetRecord, now time.Time) string {
	var b strings.Builder

	b.WriteString(ui.FormatTitle(a.Title()))
	b.WriteString("\n\n")
	b.WriteString(ui.RenderKeyValue("Risk Level", ui.FormatRisk(a.RiskLevel.String())+"  "+ui.FormatMuted(a.RiskLevel.Guidance())) + "\n")
	b.WriteString(ui.RenderKeyValue("Failure Probability", a.FailurePercent()) + "\n")
	b.WriteString(ui.RenderKeyValue("Days to Failure", fmt.Sprintf("%d", a.DaysToFailure)) + "\n")
	b.WriteString(ui.RenderKeyValue("Voltage Level", a.VoltageLevel) + "\n")
	b.WriteString(ui.RenderKeyValue("Location", a.Location) + "\n")
	b.WriteString(ui.RenderKeyValue("Criticality Score", fmt.Sprintf("%.2f", a.CriticalityScore)) + "\n")
	b.WriteString(ui.RenderKeyValue("Maintenance Cost", domain.FormatMoney(a.MaintenanceCost)) + "\n")
	b.WriteString(ui.RenderKeyValue("Replacement Cost", domain.FormatMoney(a.ReplacementCost)) + "\n")
	b.WriteString(ui.RenderKeyValue("Last Maintenance",
		fmt.Sprintf("%s (%d days ago)", formatDate(a), a.DaysSinceMaintenance(now))) + "\n")

	return b.String()
}

// renderPrediction renders the card followed by the model readout
func renderPrediction(p services.Prediction, now time.Time) string {
	var b strings.Builder

	b.WriteString(renderAssetCard(p.Asset, now))
	b.WriteString("\n")
	b.WriteString(ui.StyleHeader.Render("Ensemble Prediction") + "  " + ui.FormatMuted(p.Confidence) + "\n")
	for _, e := range p.Estimates {
		b.WriteString(fmt.Sprintf("  %-24s %6.1f%%\n", e.Model, e.Probability*100))
	}
	b.WriteString(fmt.Sprintf("  %-24s %6.1f%%\n", ui.StyleBold.Render("Ensemble"), p.Ensemble*100))
	b.WriteString("\n")

	b.WriteString(ui.StyleHeader.Render("Top Risk Factors") + "\n")
	for _, f := range p.RiskFactors {
		bar := ui.RenderBar(int(f.Weight*100), 25, 20)
		b.WriteString(fmt.Sprintf("  %-32s %s %s\n", f.Feature, ui.StyleAccent.Render(bar), ui.FormatMuted(fmt.Sprintf("%.2f", f.Weight))))
	}

	return b.String()
}
