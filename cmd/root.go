package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/gridrisk/internal/adapters/repository"
	"github.com/kamal-hamza/gridrisk/internal/core/ports"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/internal/metrics"
	"github.com/kamal-hamza/gridrisk/pkg/config"
	"github.com/kamal-hamza/gridrisk/pkg/logging"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
	"github.com/kamal-hamza/gridrisk/pkg/workspace"
)

var (
	// Global workspace and configuration
	appWorkspace *workspace.Workspace
	appConfig    *config.Config
	logger       *zap.Logger

	// Services
	generateService *services.GenerateService
	sessionService  *services.SessionService

	// Metrics
	metricsRegistry *metrics.Registry

	// Generated once per invocation
	currentGeneration *services.GenerateResponse

	// Global flags
	configPath string
	flagSeed   uint64
	flagCount  int
	flagLevel  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gridrisk",
	Short: "gridrisk - Smart grid asset risk explorer",
	Long: ui.StyleTitle.Render("gridrisk") + " - Smart Grid Predictive Maintenance\n\n" +
		"Generates a reproducible sample of monitored grid assets with failure\n" +
		"probabilities, risk levels and projected days to failure, and explores it\n" +
		"as tables, a terminal dashboard, an HTML report or an HTTP API.",
	PersistentPreRunE: initializeApp,
	RunE:              runSmartEntry,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(crewsCmd)
	rootCmd.AddCommand(architectureCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags override the config file
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/gridrisk/config.yaml)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Random seed; 0 draws a fresh one that is reported for replay")
	rootCmd.PersistentFlags().IntVarP(&flagCount, "count", "n", 0, "Number of assets to generate")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for commands that manage the workspace itself
	if cmd.Name() == "init" || cmd.Name() == "version" {
		return nil
	}

	ws, err := workspace.New()
	if err != nil {
		return fmt.Errorf("failed to locate workspace: %w", err)
	}
	appWorkspace = ws

	path := configPath
	if path == "" {
		path = appWorkspace.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	logger, err = logging.New(appConfig.LogLevel, appConfig.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	metricsRegistry = metrics.DefaultRegistry()

	// Initialize services
	clock := ports.SystemClock{}
	generateService = services.NewGenerateService(clock, logger, metricsRegistry)
	sessionService = services.NewSessionService(repository.NewMemorySessionRepository(), generateService, clock, logger, metricsRegistry)

	logger.Debug("initialized",
		zap.String("config", path),
		zap.Int("sample_size", appConfig.SampleSize),
		zap.Uint64("seed", appConfig.Seed),
	)

	return nil
}

// applyFlagOverrides copies explicitly set global flags onto cfg
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("count") {
		cfg.SampleSize = flagCount
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// runSmartEntry runs the configured default action for a bare invocation
func runSmartEntry(cmd *cobra.Command, args []string) error {
	return defaultActionCommand(appConfig.DefaultAction).RunE(cmd, args)
}

// defaultActionCommand maps a default_action value to its command
func defaultActionCommand(action string) *cobra.Command {
	switch action {
	case "list":
		return listCmd
	case "stats":
		return statsCmd
	case "report":
		return reportCmd
	default:
		return dashboardCmd
	}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}

// loadGeneration generates the fleet for this invocation. Later calls
// return the same result.
func loadGeneration(ctx context.Context) (*services.GenerateResponse, error) {
	if currentGeneration != nil {
		return currentGeneration, nil
	}

	resp, err := generateService.Execute(ctx, services.GenerateRequest{
		Count: appConfig.SampleSize,
		Seed:  appConfig.Seed,
	})
	if err != nil {
		return nil, err
	}

	currentGeneration = resp
	return resp, nil
}

// loadQuery returns a query service over this invocation's fleet
func loadQuery(ctx context.Context) (*services.QueryService, *services.GenerateResponse, error) {
	gen, err := loadGeneration(ctx)
	if err != nil {
		return nil, nil, err
	}
	return services.NewQueryService(gen.Fleet), gen, nil
}
