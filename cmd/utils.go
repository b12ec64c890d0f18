package cmd

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

// OpenFile opens a file using the OS default application.
func OpenFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	// Start detaches so gridrisk can exit while the browser stays open
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}

// highlightSource applies syntax highlighting for the named language
func highlightSource(content, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.TTY16m

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	err = formatter.Format(&buf, style, iterator)
	if err != nil {
		return content
	}

	return buf.String()
}

// marshalIndent renders v as indented JSON, highlighted when enabled
func marshalIndent(v any, highlight bool) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	if highlight {
		return highlightSource(string(data), "json"), nil
	}
	return string(data), nil
}

// generationLine describes a fleet so the run can be replayed
func generationLine(gen *services.GenerateResponse) string {
	return fmt.Sprintf("%d assets  seed %d  (replay with --seed %d)", gen.Fleet.Len(), gen.Seed, gen.Seed)
}

// formatDate renders a timestamp with the configured display format
func formatDate(a domain.AssetRecord) string {
	layout := "2006-01-02"
	if appConfig != nil && appConfig.DisplayDateFormat != "" {
		layout = appConfig.DisplayDateFormat
	}
	return a.LastMaintenance.Format(layout)
}

// assetTable builds the standard asset table
func assetTable(assets []domain.AssetRecord) *ui.Table {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Asset", Width: 8},
		{Header: "Type", Width: 15},
		{Header: "Voltage", Width: 7},
		{Header: "Location", Width: 22},
		{Header: "Failure", Width: 7, Align: "right"},
		{Header: "Risk", Width: 8},
		{Header: "Days", Width: 4, Align: "right"},
		{Header: "Maint.", Width: 8, Align: "right"},
		{Header: "Replace", Width: 10, Align: "right"},
		{Header: "Crit.", Width: 5, Align: "right"},
	})

	width := 22
	if appConfig != nil && appConfig.TableWidth > 0 {
		width = appConfig.TableWidth
	}

	for _, a := range assets {
		table.AddRow([]string{
			a.ID,
			a.Type,
			a.VoltageLevel,
			truncate(a.Location, width),
			a.FailurePercent(),
			ui.FormatRisk(a.RiskLevel.String()),
			fmt.Sprintf("%d", a.DaysToFailure),
			domain.FormatMoney(a.MaintenanceCost),
			domain.FormatMoney(a.ReplacementCost),
			fmt.Sprintf("%.2f", a.CriticalityScore),
		})
	}

	return table
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
