package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSampleSize is the number of assets shown out of the monitored fleet
const DefaultSampleSize = 150

// assetIDPrefix is shared by every generated asset identifier
const assetIDPrefix = "AST-"

// Fixed label sets an asset draws its descriptive fields from
var (
	AssetTypes = []string{
		"Transformer", "Circuit Breaker", "Relay", "Capacitor Bank", "Switch", "Cable", "Bus",
	}

	VoltageLevels = []string{
		"4.16kV", "12.47kV", "25kV", "69kV", "138kV", "230kV", "500kV",
	}

	Locations = []string{
		"Substation Alpha", "Substation Beta", "Substation Gamma", "Substation Delta",
		"Distribution Hub North", "Distribution Hub South", "Transmission Yard West",
	}
)

// AssetRecord represents one monitored grid asset in a generated sample
type AssetRecord struct {
	ID                 string    `json:"asset_id" yaml:"asset_id"`
	Sequence           int       `json:"sequence" yaml:"sequence"` // Creation order, 1-based
	Type               string    `json:"asset_type" yaml:"asset_type"`
	VoltageLevel       string    `json:"voltage_level" yaml:"voltage_level"`
	Location           string    `json:"location" yaml:"location"`
	FailureProbability float64   `json:"failure_probability" yaml:"failure_probability"`
	RiskLevel          RiskLevel `json:"risk_level" yaml:"risk_level"`
	DaysToFailure      int       `json:"days_to_failure" yaml:"days_to_failure"`
	MaintenanceCost    int       `json:"maintenance_cost" yaml:"maintenance_cost"`
	ReplacementCost    int       `json:"replacement_cost" yaml:"replacement_cost"`
	CriticalityScore   float64   `json:"criticality_score" yaml:"criticality_score"`
	LastMaintenance    time.Time `json:"last_maintenance" yaml:"last_maintenance"`
}

// FormatAssetID builds the identifier for the given 1-based sequence number
// 7 -> "AST-0007"
func FormatAssetID(seq int) string {
	return fmt.Sprintf("%s%04d", assetIDPrefix, seq)
}

// ParseAssetID extracts the sequence number from an asset identifier.
// The prefix is matched case-insensitively so "ast-0007" resolves too.
func ParseAssetID(id string) (int, error) {
	id = strings.TrimSpace(id)
	if len(id) <= len(assetIDPrefix) || !strings.EqualFold(id[:len(assetIDPrefix)], assetIDPrefix) {
		return 0, fmt.Errorf("invalid asset id %q: expected %sNNNN", id, assetIDPrefix)
	}

	seq, err := strconv.Atoi(id[len(assetIDPrefix):])
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("invalid asset id %q: bad sequence number", id)
	}

	return seq, nil
}

// NormalizeAssetID returns the canonical form of a user-typed identifier
func NormalizeAssetID(id string) string {
	seq, err := ParseAssetID(id)
	if err != nil {
		return strings.TrimSpace(id)
	}
	return FormatAssetID(seq)
}

// FailurePercent returns the failure probability as a display percentage
func (a AssetRecord) FailurePercent() string {
	return fmt.Sprintf("%.1f%%", a.FailureProbability*100)
}

// DaysSinceMaintenance returns whole days elapsed since the last maintenance
func (a AssetRecord) DaysSinceMaintenance(now time.Time) int {
	return int(now.Sub(a.LastMaintenance).Hours() / 24)
}

// Title returns the heading used on detail cards
func (a AssetRecord) Title() string {
	return a.ID + " - " + a.Type
}

// SearchText returns the text fuzzy search runs against
func (a AssetRecord) SearchText() string {
	return strings.Join([]string{a.ID, a.Type, a.Location, a.VoltageLevel, string(a.RiskLevel)}, " ")
}

// FormatMoney renders a whole-dollar amount with thousands separators
func FormatMoney(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String()
}
