package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var (
	listRisk     []string
	listType     string
	listLocation string
	listTop      int
	listAll      bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List generated assets by failure probability",
	Aliases: []string{"ls"},
	Long: `List the generated asset sample in a table, most likely to fail first.

Without --risk the levels from default_risk_levels in the config are shown.

Examples:
  gridrisk list
  gridrisk list --risk CRITICAL
  gridrisk list --all --top 50
  gridrisk list --type Transformer --location "Substation Alpha"
  gridrisk list --seed 42 --count 500`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSliceVarP(&listRisk, "risk", "r", nil, "Risk levels to show (CRITICAL,HIGH,MEDIUM)")
	listCmd.Flags().StringVar(&listType, "type", "", "Only show this asset type")
	listCmd.Flags().StringVar(&listLocation, "location", "", "Only show this location")
	// Top defaults to top_n, but we handle config override in runList
	listCmd.Flags().IntVar(&listTop, "top", 0, "Show at most N assets (0 = all)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show every risk level")
}

func runList(cmd *cobra.Command, args []string) error {
	// If the flag was NOT changed by the user, use the config default
	if !cmd.Flags().Changed("top") {
		listTop = appConfig.TopN
	}

	labels := listRisk
	if len(labels) == 0 && !listAll {
		labels = appConfig.DefaultRiskLevels
	}
	levels, err := domain.ParseRiskLevels(labels)
	if err != nil {
		return err
	}

	ctx := getContext()
	query, gen, err := loadQuery(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to generate assets"))
		return err
	}

	resp, err := query.Execute(ctx, services.QueryRequest{
		Levels:    levels,
		AssetType: listType,
		Location:  listLocation,
		Limit:     listTop,
	})
	if err != nil {
		return err
	}

	// Handle empty results
	if resp.Matched == 0 {
		fmt.Println(ui.FormatWarning("No assets match the filters"))
		fmt.Println(ui.FormatMuted(generationLine(gen)))
		return nil
	}

	// Print header
	title := "Assets"
	if len(levels) > 0 {
		names := make([]string, len(levels))
		for i, l := range levels {
			names[i] = l.String()
		}
		title = fmt.Sprintf("Assets (%s)", strings.Join(names, ", "))
	}
	fmt.Println(ui.FormatTitle(title))
	fmt.Println()

	fmt.Print(assetTable(resp.Assets).Render())
	fmt.Println()

	// Print summary
	shown := fmt.Sprintf("Showing %d of %d matching", len(resp.Assets), resp.Matched)
	fmt.Println(ui.FormatMuted(shown + "  |  " + generationLine(gen)))

	return nil
}
