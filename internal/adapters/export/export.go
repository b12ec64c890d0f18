package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/ports"
	"gopkg.in/yaml.v3"
)

// Supported formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Formats lists every supported format name
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var registry = map[string]func() ports.Exporter{
	FormatJSON: func() ports.Exporter { return JSONExporter{} },
	FormatYAML: func() ports.Exporter { return YAMLExporter{} },
	FormatCSV:  func() ports.Exporter { return CSVExporter{} },
}

// New returns the exporter for format, matched case-insensitively
func New(format string) (ports.Exporter, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q (expected one of %s)", format, strings.Join(Formats(), ", "))
	}
	return f(), nil
}

// JSONExporter writes records as an indented JSON array
type JSONExporter struct{}

func (JSONExporter) Extension() string { return "json" }

func (JSONExporter) Export(w io.Writer, assets []domain.AssetRecord) error {
	if assets == nil {
		assets = []domain.AssetRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(assets); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// YAMLExporter writes records as a YAML sequence
type YAMLExporter struct{}

func (YAMLExporter) Extension() string { return "yaml" }

func (YAMLExporter) Export(w io.Writer, assets []domain.AssetRecord) error {
	if assets == nil {
		assets = []domain.AssetRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(assets); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// CSVExporter writes one header row followed by one row per record
type CSVExporter struct{}

func (CSVExporter) Extension() string { return "csv" }

// CSVHeader is the column order used by CSVExporter
var CSVHeader = []string{
	"asset_id", "asset_type", "voltage_level", "location", "failure_probability", "risk_level",
	"days_to_failure", "maintenance_cost", "replacement_cost", "criticality_score", "last_maintenance",
}

func (CSVExporter) Export(w io.Writer, assets []domain.AssetRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range assets {
		row := []string{
			a.ID,
			a.Type,
			a.VoltageLevel,
			a.Location,
			strconv.FormatFloat(a.FailureProbability, 'f', 6, 64),
			a.RiskLevel.String(),
			strconv.Itoa(a.DaysToFailure),
			strconv.Itoa(a.MaintenanceCost),
			strconv.Itoa(a.ReplacementCost),
			strconv.FormatFloat(a.CriticalityScore, 'f', 4, 64),
			a.LastMaintenance.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", a.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
