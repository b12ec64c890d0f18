package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after defaults and flag overrides.

Subcommands:
  gridrisk config path   Print the config file location
  gridrisk config edit   Open the config file in $EDITOR`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), activeConfigPath())
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the gridrisk configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := activeConfigPath()

		// Ensure it exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := appConfig.Save(path); err != nil {
				return err
			}
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := string(data)
	if appConfig.SyntaxHighlighting {
		out = highlightSource(out, "yaml")
	}

	fmt.Println(ui.FormatMuted("# " + activeConfigPath()))
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// activeConfigPath is --config when given, else the workspace default
func activeConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return appWorkspace.ConfigPath
}
