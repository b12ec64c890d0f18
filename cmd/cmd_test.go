package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/gridrisk/internal/adapters/repository"
	"github.com/kamal-hamza/gridrisk/internal/catalog"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/ports/mocks"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/internal/metrics"
	"github.com/kamal-hamza/gridrisk/pkg/config"
	"github.com/kamal-hamza/gridrisk/pkg/workspace"
)

// setupTestApp wires the globals initializeApp would set, over a temp workspace
func setupTestApp(t *testing.T) {
	t.Helper()

	origWorkspace, origConfig, origLogger := appWorkspace, appConfig, logger
	origGenerate, origSessions, origRegistry := generateService, sessionService, metricsRegistry
	origGeneration, origReportOutput := currentGeneration, reportOutput
	t.Cleanup(func() {
		appWorkspace, appConfig, logger = origWorkspace, origConfig, origLogger
		generateService, sessionService, metricsRegistry = origGenerate, origSessions, origRegistry
		currentGeneration, reportOutput = origGeneration, origReportOutput
	})

	root := t.TempDir()
	appWorkspace = workspace.NewAt(root, filepath.Join(root, "config.yaml"))
	if err := appWorkspace.Initialize(); err != nil {
		t.Fatalf("failed to initialize workspace: %v", err)
	}

	appConfig = config.DefaultConfig()
	appConfig.Seed = 42
	appConfig.SampleSize = 30

	logger = zap.NewNop()
	metricsRegistry = metrics.NewRegistry()

	clock := mocks.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	generateService = services.NewGenerateService(clock, logger, metricsRegistry)
	sessionService = services.NewSessionService(repository.NewMemorySessionRepository(), generateService, clock, logger, metricsRegistry)

	currentGeneration = nil
	reportOutput = ""
}

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"list", "show", "pick", "dashboard", "matrix", "stats", "report", "export",
		"serve", "models", "crews", "architecture", "impact", "init", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil || cmd == rootCmd {
				t.Fatalf("Command '%s' is not registered", cmdName)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "gridrisk" {
		t.Errorf("Expected root command Use to be 'gridrisk', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}

	for _, name := range []string{"config", "seed", "count", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Persistent flag '--%s' not registered", name)
		}
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	commands := rootCmd.Commands()

	if len(commands) == 0 {
		t.Fatal("No commands registered")
	}

	for _, cmd := range commands {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

// TestSubcommands verifies specific subcommands exist
func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent     string
		subcommand string
	}{
		{"config", "path"},
		{"config", "edit"},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"_"+tt.subcommand, func(t *testing.T) {
			parentCmd, _, err := rootCmd.Find([]string{tt.parent})
			if err != nil {
				t.Fatalf("Parent command '%s' not found: %v", tt.parent, err)
			}

			found := false
			for _, cmd := range parentCmd.Commands() {
				if cmd.Name() == tt.subcommand {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Subcommand '%s' not found under '%s'", tt.subcommand, tt.parent)
			}
		})
	}
}

// TestFlagsExist verifies important flags are registered
func TestFlagsExist(t *testing.T) {
	tests := []struct {
		command  string
		flagName string
	}{
		{"list", "risk"},
		{"list", "type"},
		{"list", "location"},
		{"list", "top"},
		{"list", "all"},
		{"show", "json"},
		{"show", "copy"},
		{"report", "output"},
		{"report", "theme"},
		{"report", "open"},
		{"report", "watch"},
		{"export", "format"},
		{"export", "output"},
		{"export", "risk"},
		{"export", "top"},
		{"serve", "addr"},
		{"impact", "cost"},
		{"impact", "savings"},
		{"init", "force"},
	}

	for _, tt := range tests {
		t.Run(tt.command+"_"+tt.flagName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", tt.command, err)
			}

			if cmd.Flags().Lookup(tt.flagName) == nil {
				t.Errorf("Flag '--%s' not found on command '%s'", tt.flagName, tt.command)
			}
		})
	}
}

// TestCommandAliases verifies aliases resolve to their commands
func TestCommandAliases(t *testing.T) {
	tests := []struct {
		alias string
		name  string
	}{
		{"ls", "list"},
		{"dash", "dashboard"},
		{"arch", "architecture"},
		{"v", "version"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.alias})
			if err != nil {
				t.Fatalf("Alias '%s' not found: %v", tt.alias, err)
			}
			if cmd.Name() != tt.name {
				t.Errorf("Alias '%s' resolved to '%s', want '%s'", tt.alias, cmd.Name(), tt.name)
			}
		})
	}
}

func TestDefaultActionCommand(t *testing.T) {
	tests := []struct {
		action string
		want   *cobra.Command
	}{
		{"dashboard", dashboardCmd},
		{"list", listCmd},
		{"stats", statsCmd},
		{"report", reportCmd},
		{"", dashboardCmd},
		{"serve", dashboardCmd},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := defaultActionCommand(tt.action); got != tt.want {
				t.Errorf("defaultActionCommand(%q) = %s, want %s", tt.action, got.Name(), tt.want.Name())
			}
		})
	}

	// Every configurable action must route somewhere other than the fallback
	for _, action := range config.DefaultActions {
		if defaultActionCommand(action).Name() != action {
			t.Errorf("default action %q routes to %s", action, defaultActionCommand(action).Name())
		}
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	origSeed, origCount, origLevel := flagSeed, flagCount, flagLevel
	t.Cleanup(func() { flagSeed, flagCount, flagLevel = origSeed, origCount, origLevel })

	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "")
		cmd.Flags().IntVarP(&flagCount, "count", "n", 0, "")
		cmd.Flags().StringVar(&flagLevel, "log-level", "", "")
		return cmd
	}

	tests := []struct {
		name      string
		args      []string
		wantSeed  uint64
		wantCount int
		wantLevel string
		wantErr   bool
	}{
		{"no flags keep config", nil, 7, 150, "warn", false},
		{"seed and count", []string{"--seed", "42", "-n", "10"}, 42, 10, "warn", false},
		{"explicit zero seed", []string{"--seed", "0"}, 0, 150, "warn", false},
		{"log level", []string{"--log-level", "debug"}, 7, 150, "debug", false},
		{"zero count rejected", []string{"--count", "0"}, 0, 0, "", true},
		{"huge count rejected", []string{"--count", "100001"}, 0, 0, "", true},
		{"bad log level rejected", []string{"--log-level", "loud"}, 0, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCmd()
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			cfg := config.DefaultConfig()
			cfg.Seed = 7

			err := applyFlagOverrides(cmd, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cfg.Seed != tt.wantSeed {
				t.Errorf("Seed = %d, want %d", cfg.Seed, tt.wantSeed)
			}
			if cfg.SampleSize != tt.wantCount {
				t.Errorf("SampleSize = %d, want %d", cfg.SampleSize, tt.wantCount)
			}
			if cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.wantLevel)
			}
		})
	}
}

func TestLoadGeneration_CachedPerInvocation(t *testing.T) {
	setupTestApp(t)
	ctx := getContext()

	first, err := loadGeneration(ctx)
	if err != nil {
		t.Fatalf("loadGeneration failed: %v", err)
	}
	if first.Fleet.Len() != 30 {
		t.Errorf("expected 30 assets, got %d", first.Fleet.Len())
	}
	if first.Seed != 42 {
		t.Errorf("expected seed 42, got %d", first.Seed)
	}

	second, err := loadGeneration(ctx)
	if err != nil {
		t.Fatalf("loadGeneration failed: %v", err)
	}
	if first != second {
		t.Error("expected the same generation on the second call")
	}

	query, gen, err := loadQuery(ctx)
	if err != nil {
		t.Fatalf("loadQuery failed: %v", err)
	}
	if gen != first || query.Fleet() != first.Fleet {
		t.Error("loadQuery should wrap the cached generation")
	}
}

func TestLoadGeneration_Reproducible(t *testing.T) {
	setupTestApp(t)

	a, err := loadGeneration(getContext())
	if err != nil {
		t.Fatalf("loadGeneration failed: %v", err)
	}

	currentGeneration = nil
	b, err := loadGeneration(getContext())
	if err != nil {
		t.Fatalf("loadGeneration failed: %v", err)
	}

	for i := 0; i < a.Fleet.Len(); i++ {
		x, y := a.Fleet.At(i), b.Fleet.At(i)
		if x.ID != y.ID || x.FailureProbability != y.FailureProbability || x.DaysToFailure != y.DaysToFailure {
			t.Fatalf("asset %d differs between runs with the same seed", i)
		}
	}
}

func TestWriteReport(t *testing.T) {
	setupTestApp(t)

	path, err := writeReport(getContext())
	if err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}

	want := filepath.Join(appWorkspace.ReportsPath, "report.html")
	if path != want {
		t.Errorf("report path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "Risk Distribution") {
		t.Error("report should contain the risk distribution chart")
	}
}

func TestWriteReport_OutputOverride(t *testing.T) {
	setupTestApp(t)
	reportOutput = filepath.Join(t.TempDir(), "nested", "custom.html")

	path, err := writeReport(getContext())
	if err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}
	if path != reportOutput {
		t.Errorf("report path = %q, want %q", path, reportOutput)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridrisk", "config.yaml")

	if err := createDefaultConfig(path, false); err != nil {
		t.Fatalf("createDefaultConfig failed: %v", err)
	}

	// An existing config is kept unless overwrite is set
	custom := config.DefaultConfig()
	custom.TopN = 3
	if err := custom.Save(path); err != nil {
		t.Fatalf("failed to save custom config: %v", err)
	}
	if err := createDefaultConfig(path, false); err != nil {
		t.Fatalf("createDefaultConfig failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.TopN != 3 {
		t.Errorf("existing config was overwritten, TopN = %d", cfg.TopN)
	}

	if err := createDefaultConfig(path, true); err != nil {
		t.Fatalf("createDefaultConfig failed: %v", err)
	}
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.TopN != 20 {
		t.Errorf("forced config should reset TopN to 20, got %d", cfg.TopN)
	}
}

func TestSortedCounts(t *testing.T) {
	got := sortedCounts(map[string]int{"Relay": 3, "Bus": 5, "Cable": 3})

	want := []countPair{{"Bus", 5}, {"Cable", 3}, {"Relay", 3}}
	if len(got) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPadBar(t *testing.T) {
	if got := padBar("██", 5); len([]rune(got)) != 5 {
		t.Errorf("padBar width = %d, want 5", len([]rune(got)))
	}
	if got := padBar("█████", 3); got != "█████" {
		t.Errorf("padBar should not truncate, got %q", got)
	}
}

func TestRenderPrediction(t *testing.T) {
	a := domain.AssetRecord{
		ID: "AST-0009", Sequence: 9, Type: "Transformer", VoltageLevel: "230kV", Location: "Substation Beta",
		FailureProbability: 0.21, RiskLevel: domain.RiskCritical, DaysToFailure: 14,
		MaintenanceCost: 20000, ReplacementCost: 800000, CriticalityScore: 0.9,
		LastMaintenance: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)

	out := renderPrediction(services.Predict(a), now)
	for _, want := range []string{"AST-0009 - Transformer", "CRITICAL", "21.0%", "(10 days ago)", "Ensemble", "Top Risk Factors"} {
		if !strings.Contains(out, want) {
			t.Errorf("prediction readout missing %q", want)
		}
	}

	line := assetSummaryLine(a)
	if !strings.HasPrefix(line, "AST-0009 Transformer (230kV, Substation Beta) CRITICAL") {
		t.Errorf("unexpected summary line %q", line)
	}
}

func TestRenderCrewsPage_FlagsMissingAssets(t *testing.T) {
	fleet := domain.NewFleet([]domain.AssetRecord{{ID: "AST-0001", Sequence: 1}}, 1, time.Time{})

	out := renderCrewsPage(fleet)
	if !strings.Contains(out, "CREW-A01") {
		t.Error("crews page should list crew ids")
	}
	if !strings.Contains(out, "Not in this sample: AST-0047, AST-0089") {
		t.Error("crews page should flag assignments missing from the sample")
	}

	if strings.Contains(renderCrewsPage(nil), "Not in this sample") {
		t.Error("nil fleet should skip the sample check")
	}
}

func TestCatalogPages(t *testing.T) {
	roi, err := catalog.ROI(1000, 2000)
	if err != nil {
		t.Fatalf("ROI failed: %v", err)
	}

	pages := map[string]string{
		"models":       renderModelsPage(),
		"architecture": renderArchitecturePage(),
		"impact":       renderImpactPage(roi),
	}
	wants := map[string]string{
		"models":       "ML Model Performance",
		"architecture": "Production Architecture",
		"impact":       "Business Impact & ROI",
	}

	for name, out := range pages {
		t.Run(name, func(t *testing.T) {
			if !strings.Contains(out, wants[name]) {
				t.Errorf("%s page missing title %q", name, wants[name])
			}
		})
	}
}

func TestReloadConfig_DropsCachedGeneration(t *testing.T) {
	setupTestApp(t)

	if _, err := loadGeneration(getContext()); err != nil {
		t.Fatalf("loadGeneration failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sample_size: 12\nseed: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := reloadConfig(&cobra.Command{Use: "test"}, path); err != nil {
		t.Fatalf("reloadConfig failed: %v", err)
	}
	if currentGeneration != nil {
		t.Error("expected cached generation to be dropped")
	}
	if appConfig.SampleSize != 12 || appConfig.Seed != 7 {
		t.Errorf("expected reloaded values, got size %d seed %d", appConfig.SampleSize, appConfig.Seed)
	}

	gen, err := loadGeneration(getContext())
	if err != nil {
		t.Fatalf("loadGeneration failed: %v", err)
	}
	if gen.Fleet.Len() != 12 {
		t.Errorf("expected 12 assets after reload, got %d", gen.Fleet.Len())
	}
}

func TestReloadConfig_InvalidKeepsCurrent(t *testing.T) {
	setupTestApp(t)
	before := appConfig

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := reloadConfig(&cobra.Command{Use: "test"}, path); err == nil {
		t.Fatal("expected error for invalid config")
	}
	if appConfig != before {
		t.Error("invalid config should not replace the active one")
	}
}
