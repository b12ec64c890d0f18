package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the risk distribution of the sample",
	Long: `Summarize the generated sample.

Includes:
  - Counts and shares per risk level
  - Mean failure probability and the soonest projected failure
  - Total maintenance and replacement exposure
  - Breakdown by asset type and location`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	query, gen, err := loadQuery(ctx)
	if err != nil {
		return err
	}

	summary, err := query.Summarize(ctx)
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle("Fleet Risk Analytics"))
	fmt.Println(ui.FormatMuted(generationLine(gen)))
	fmt.Println()

	// --- General Stats (Tabular) ---
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Assets:"), summary.Total)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("At Risk (Critical + High):"), summary.AtRisk())
	fmt.Fprintf(w, "%s\t%.2f%%\n", ui.StyleBold.Render("Mean Failure Probability:"), summary.MeanFailureProbability*100)
	fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Maintenance Exposure:"), domain.FormatMoney(summary.TotalMaintenanceCost))
	fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Replacement Exposure:"), domain.FormatMoney(summary.TotalReplacementCost))
	if s := summary.SoonestFailure; s != nil {
		fmt.Fprintf(w, "%s\t%s in %d days (%s)\n", ui.StyleBold.Render("Soonest Failure:"), s.ID, s.DaysToFailure, s.Type)
	}
	w.Flush()
	fmt.Println()

	renderRiskBars(summary)
	renderCountBars("Asset Types", summary.ByType)
	renderCountBars("Locations", summary.ByLocation)

	return nil
}

// renderRiskBars draws one bar per level, most severe first
func renderRiskBars(summary domain.Summary) {
	fmt.Println(ui.StyleHeader.Render("Risk Distribution"))

	maxCount := 0
	for _, n := range summary.ByRisk {
		if n > maxCount {
			maxCount = n
		}
	}

	for _, level := range domain.AllRiskLevels() {
		n := summary.ByRisk[level]
		style := ui.RiskStyle(level.String())
		fmt.Printf("%-9s %s %s\n",
			level,
			style.Render(padBar(ui.RenderBar(n, maxCount, 30), 30)),
			ui.StyleMuted.Render(fmt.Sprintf("%d (%.1f%%)", n, summary.Share(level)*100)),
		)
	}
	fmt.Println()
}

type countPair struct {
	Name  string
	Count int
}

// sortedCounts orders by count descending, then name
func sortedCounts(counts map[string]int) []countPair {
	sorted := make([]countPair, 0, len(counts))
	for k, v := range counts {
		sorted = append(sorted, countPair{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// renderCountBars displays a horizontal bar chart
func renderCountBars(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	fmt.Println(ui.StyleHeader.Render(title))

	sorted := sortedCounts(counts)
	maxCount := sorted[0].Count

	for _, p := range sorted {
		fmt.Printf("%-24s %s %s\n",
			p.Name,
			ui.StyleAccent.Render(padBar(ui.RenderBar(p.Count, maxCount, 20), 20)),
			ui.StyleMuted.Render(fmt.Sprintf("%d", p.Count)),
		)
	}
	fmt.Println()
}

// padBar right-pads a bar of block runes to width cells
func padBar(bar string, width int) string {
	n := len([]rune(bar))
	if n >= width {
		return bar
	}
	return bar + fmt.Sprintf("%*s", width-n, "")
}
