package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/catalog"
)

var (
	impactCost    int
	impactSavings int
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show model performance, features and retraining pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(renderModelsPage())
		return nil
	},
}

var crewsCmd = &cobra.Command{
	Use:   "crews",
	Short: "Show crew assignments and scheduling results",
	Long: `Show crew assignments and scheduling results. Assigned asset ids are
checked against the generated sample and missing ones are flagged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := loadGeneration(getContext())
		if err != nil {
			return err
		}
		fmt.Print(renderCrewsPage(gen.Fleet))
		return nil
	},
}

var architectureCmd = &cobra.Command{
	Use:     "architecture",
	Aliases: []string{"arch"},
	Short:   "Show the production architecture (alias: arch)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(renderArchitecturePage())
		return nil
	},
}

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Show business impact and the ROI calculation",
	Long: `Show business impact figures and the ROI calculation.

Adjust the inputs to run the ROI calculator:
  gridrisk impact --cost 900000 --savings 1500000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		roi, err := catalog.ROI(impactCost, impactSavings)
		if err != nil {
			return err
		}
		fmt.Print(renderImpactPage(roi))
		return nil
	},
}

func init() {
	impactCmd.Flags().IntVar(&impactCost, "cost", catalog.ImplementationCost, "Implementation cost in dollars")
	impactCmd.Flags().IntVar(&impactSavings, "savings", catalog.BusinessImpact.PotentialSavings, "Annual savings in dollars")
}
