package cmd

import (
	"errors"
	"fmt"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var pickCmd = &cobra.Command{
	Use:   "pick [query]",
	Short: "Fuzzy-find an asset and show its readout",
	Long: `Open a fuzzy finder over the generated assets with a preview pane.
The selected asset is shown as with 'gridrisk show'.

With a query argument the best fuzzy match is shown directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	query, gen, err := loadQuery(ctx)
	if err != nil {
		return err
	}

	var assetID string

	if len(args) == 0 {
		assets := gen.Fleet.Assets()
		idx, err := fuzzyfinder.Find(
			assets,
			func(i int) string {
				a := assets[i]
				return fmt.Sprintf("%s  %-8s  %s  %s", a.ID, a.RiskLevel, a.Type, a.Location)
			},
			fuzzyfinder.WithPromptString("asset> "),
			fuzzyfinder.WithHeader(generationLine(gen)),
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				a := assets[i]
				return fmt.Sprintf("%s\n\nRisk: %s (%s)\nFailure: %s\nDays to failure: %d\nVoltage: %s\nLocation: %s\nReplacement: %d",
					a.Title(), a.RiskLevel, a.RiskLevel.Guidance(), a.FailurePercent(),
					a.DaysToFailure, a.VoltageLevel, a.Location, a.ReplacementCost)
			}),
		)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			return fmt.Errorf("failed to pick asset: %w", err)
		}
		assetID = assets[idx].ID
	} else {
		resp, err := query.Search(ctx, services.SearchRequest{Query: args[0]})
		if err != nil {
			return err
		}
		if resp.Total == 0 {
			fmt.Println(ui.FormatWarning("No assets found matching: " + args[0]))
			return nil
		}
		assetID = resp.Assets[0].ID
	}

	prediction, err := services.NewPredictionService(query).Execute(ctx, services.PredictRequest{AssetID: assetID})
	if err != nil {
		return err
	}

	fmt.Print(renderPrediction(*prediction, gen.Fleet.GeneratedAt()))
	fmt.Println()
	fmt.Println(ui.FormatMuted(generationLine(gen)))
	return nil
}
