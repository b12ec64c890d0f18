package domain

import (
	"errors"
	"testing"
	"time"
)

func TestFormatAssetID(t *testing.T) {
	tests := []struct {
		seq      int
		expected string
	}{
		{1, "AST-0001"},
		{42, "AST-0042"},
		{150, "AST-0150"},
		{9999, "AST-9999"},
		{12345, "AST-12345"},
	}

	for _, tt := range tests {
		got := FormatAssetID(tt.seq)
		if got != tt.expected {
			t.Errorf("FormatAssetID(%d) = %q, want %q", tt.seq, got, tt.expected)
		}
	}
}

func TestParseAssetID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		expected  int
		expectErr bool
	}{
		{"canonical", "AST-0007", 7, false},
		{"lower case prefix", "ast-0150", 150, false},
		{"surrounding space", "  AST-0010 ", 10, false},
		{"no padding", "AST-3", 3, false},
		{"missing prefix", "0007", 0, true},
		{"wrong prefix", "ASX-0007", 0, true},
		{"prefix only", "AST-", 0, true},
		{"zero sequence", "AST-0000", 0, true},
		{"non numeric", "AST-00a1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssetID(tt.id)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseAssetID(%q) expected error, got %d", tt.id, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAssetID(%q) unexpected error: %v", tt.id, err)
			}
			if got != tt.expected {
				t.Errorf("ParseAssetID(%q) = %d, want %d", tt.id, got, tt.expected)
			}
		})
	}
}

func TestNormalizeAssetID(t *testing.T) {
	if got := NormalizeAssetID("ast-7"); got != "AST-0007" {
		t.Errorf("NormalizeAssetID(ast-7) = %q, want AST-0007", got)
	}
	if got := NormalizeAssetID(" bogus "); got != "bogus" {
		t.Errorf("NormalizeAssetID(bogus) = %q, want bogus", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   int
		expected string
	}{
		{0, "$0"},
		{999, "$999"},
		{5000, "$5,000"},
		{85000, "$85,000"},
		{1200000, "$1,200,000"},
		{-47000, "-$47,000"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.expected {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.amount, got, tt.expected)
		}
	}
}

func TestAssetRecord_DisplayHelpers(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := AssetRecord{
		ID:                 "AST-0003",
		Type:               "Relay",
		Location:           "Substation Beta",
		VoltageLevel:       "69kV",
		FailureProbability: 0.1234,
		RiskLevel:          RiskHigh,
		LastMaintenance:    now.AddDate(0, 0, -45),
	}

	if got := a.FailurePercent(); got != "12.3%" {
		t.Errorf("FailurePercent() = %q, want 12.3%%", got)
	}
	if got := a.DaysSinceMaintenance(now); got != 45 {
		t.Errorf("DaysSinceMaintenance() = %d, want 45", got)
	}
	if got := a.Title(); got != "AST-0003 - Relay" {
		t.Errorf("Title() = %q", got)
	}
	if got := a.SearchText(); got != "AST-0003 Relay Substation Beta 69kV HIGH" {
		t.Errorf("SearchText() = %q", got)
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		p        float64
		expected RiskLevel
	}{
		{0.0, RiskMedium},
		{0.05, RiskMedium},
		{0.08, RiskMedium}, // boundary goes to the lower bucket
		{0.0800001, RiskHigh},
		{0.12, RiskHigh},
		{0.15, RiskHigh}, // boundary goes to the lower bucket
		{0.1500001, RiskCritical},
		{0.6, RiskCritical},
		{0.999, RiskCritical},
	}

	for _, tt := range tests {
		if got := ClassifyRisk(tt.p); got != tt.expected {
			t.Errorf("ClassifyRisk(%v) = %s, want %s", tt.p, got, tt.expected)
		}
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input     string
		expected  RiskLevel
		expectErr bool
	}{
		{"CRITICAL", RiskCritical, false},
		{"critical", RiskCritical, false},
		{" High ", RiskHigh, false},
		{"medium", RiskMedium, false},
		{"low", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRiskLevel(tt.input)
		if tt.expectErr {
			if !errors.Is(err, ErrUnknownRiskLevel) {
				t.Errorf("ParseRiskLevel(%q) error = %v, want ErrUnknownRiskLevel", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRiskLevel(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseRiskLevel(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestParseRiskLevels(t *testing.T) {
	levels, err := ParseRiskLevels([]string{"critical,high", "HIGH", " ", "medium"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []RiskLevel{RiskCritical, RiskHigh, RiskMedium}
	if len(levels) != len(expected) {
		t.Fatalf("expected %d levels, got %d (%v)", len(expected), len(levels), levels)
	}
	for i := range expected {
		if levels[i] != expected[i] {
			t.Errorf("levels[%d] = %s, want %s", i, levels[i], expected[i])
		}
	}

	if _, err := ParseRiskLevels([]string{"critical,bogus"}); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestRiskLevel_Severity(t *testing.T) {
	if !(RiskCritical.Severity() > RiskHigh.Severity() && RiskHigh.Severity() > RiskMedium.Severity()) {
		t.Error("severity must order CRITICAL > HIGH > MEDIUM")
	}
	if RiskLevel("LOW").Severity() != 0 {
		t.Error("unknown level should have zero severity")
	}
}
