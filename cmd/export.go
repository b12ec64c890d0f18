package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/adapters/export"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var (
	exportFormat string
	exportOutput string
	exportRisk   []string
	exportTop    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the sample as JSON, YAML or CSV",
	Long: `Write the generated sample in fleet order.

Output goes to stdout unless --output is given. A bare file name is placed
in the workspace exports directory; paths are used as given.

Examples:
  gridrisk export --seed 42 > fleet.json
  gridrisk export -f csv -o fleet.csv
  gridrisk export -f yaml --risk CRITICAL --top 10`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: "+strings.Join(export.Formats(), ", ")+" (default default_export_format)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringSliceVarP(&exportRisk, "risk", "r", nil, "Risk levels to include (default all)")
	exportCmd.Flags().IntVar(&exportTop, "top", 0, "Export at most N assets (0 = all)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := exportFormat
	if format == "" {
		format = appConfig.DefaultExportFormat
	}
	exporter, err := export.New(format)
	if err != nil {
		return err
	}

	levels, err := domain.ParseRiskLevels(exportRisk)
	if err != nil {
		return err
	}

	ctx := getContext()
	query, gen, err := loadQuery(ctx)
	if err != nil {
		return err
	}

	resp, err := query.Execute(ctx, services.QueryRequest{Levels: levels, Limit: exportTop})
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	path := ""
	if exportOutput != "" && exportOutput != "-" {
		path = appWorkspace.ExportPath(exportOutput)
		if filepath.Ext(path) == "" {
			path += "." + exporter.Extension()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := exporter.Export(w, resp.Assets); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	// Status goes to stderr so piped output stays clean
	if path != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatSuccess(fmt.Sprintf("Exported %d assets to %s", len(resp.Assets), path)))
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatMuted(generationLine(gen)))

	return nil
}
