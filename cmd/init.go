package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/pkg/config"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
	"github.com/kamal-hamza/gridrisk/pkg/workspace"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the gridrisk workspace",
	Long: `Initialize the gridrisk workspace directory structure.

This creates the managed workspace at ~/.local/share/gridrisk/ with:
  - reports/    : HTML chart reports
  - exports/    : JSON, YAML and CSV exports

and a default config at ~/.config/gridrisk/config.yaml.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config with defaults")
}

func runInit(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine workspace location"))
		return err
	}

	if ws.Exists() && !initForce {
		fmt.Println(ui.FormatWarning("Workspace already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + ws.RootPath))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing gridrisk workspace..."))
	fmt.Println()

	if err := ws.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize workspace"))
		return err
	}

	if err := createDefaultConfig(ws.ConfigPath, initForce); err != nil {
		// Config is optional; defaults apply without it
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
	} else {
		fmt.Println(ui.FormatSuccess("Config written: " + ws.ConfigPath))
	}

	fmt.Println(ui.FormatSuccess("Workspace initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", ws.RootPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Browse the sample:       gridrisk dashboard"))
	fmt.Println(ui.FormatMuted("  2. List critical assets:    gridrisk list --risk CRITICAL"))
	fmt.Println(ui.FormatMuted("  3. Render the chart report: gridrisk report --open"))

	return nil
}

// createDefaultConfig writes the default config unless one exists
func createDefaultConfig(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return nil
	}
	return config.DefaultConfig().Save(path)
}
