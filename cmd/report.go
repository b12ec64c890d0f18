package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/gridrisk/internal/adapters/report"
	"github.com/kamal-hamza/gridrisk/pkg/config"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

var (
	reportOutput string
	reportTheme  string
	reportOpen   bool
	reportWatch  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the sample as an HTML chart report",
	Long: `Render an interactive HTML report of the generated sample: risk
distribution, asset type mix, failure probability against days to failure,
and risk by location.

The report is written to the workspace reports directory unless --output is
given. With --watch the report is regenerated whenever the config file
changes, so seed, sample size and theme can be tuned live.

Examples:
  gridrisk report --open
  gridrisk report --theme westeros -o fleet.html
  gridrisk report --watch`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file (default report_file in the workspace)")
	reportCmd.Flags().StringVar(&reportTheme, "theme", "", "Chart theme (default report_theme)")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "Open the report after writing it")
	reportCmd.Flags().BoolVarP(&reportWatch, "watch", "w", false, "Regenerate when the config file changes")
}

func runReport(cmd *cobra.Command, args []string) error {
	path, err := writeReport(getContext())
	if err != nil {
		fmt.Println(ui.FormatError("Failed to write report"))
		return err
	}

	if reportOpen {
		if err := OpenFile(path); err != nil {
			fmt.Println(ui.FormatWarning(err.Error()))
		}
	}

	if !reportWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watchConfig(ctx, cmd)
}

// reportPath resolves where the report is written
func reportPath() string {
	if reportOutput != "" {
		return reportOutput
	}
	return appWorkspace.ReportPath(appConfig.ReportFile)
}

// writeReport renders the current generation to the report file
func writeReport(ctx context.Context) (string, error) {
	query, gen, err := loadQuery(ctx)
	if err != nil {
		return "", err
	}

	summary, err := query.Summarize(ctx)
	if err != nil {
		return "", err
	}

	theme := reportTheme
	if theme == "" {
		theme = appConfig.ReportTheme
	}

	path := reportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := report.NewEChartsRenderer(theme).Render(f, gen.Fleet, summary); err != nil {
		return "", err
	}

	fmt.Println(ui.FormatSuccess("Report written: " + path))
	fmt.Println(ui.FormatMuted(generationLine(gen)))
	return path, nil
}

// watchConfig regenerates the report whenever the config file changes
func watchConfig(ctx context.Context, cmd *cobra.Command) error {
	cfgFile := configPath
	if cfgFile == "" {
		cfgFile = appWorkspace.ConfigPath
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory
	dir := filepath.Dir(cfgFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	fmt.Println(ui.FormatRocket("Watching " + cfgFile))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	// Debounce timer to avoid regenerating on every write of a save
	var debounceTimer *time.Timer
	regenerate := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(cfgFile) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(appConfig.WatchDebounce(), func() {
				select {
				case regenerate <- struct{}{}:
				default:
				}
			})

		case <-regenerate:
			if err := reloadConfig(cmd, cfgFile); err != nil {
				fmt.Println(ui.FormatError("Config reload failed: " + err.Error()))
				continue
			}
			fmt.Println(ui.FormatInfo("Config changed, regenerating..."))
			if _, err := writeReport(ctx); err != nil {
				fmt.Println(ui.FormatError("Regeneration failed: " + err.Error()))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Println()
			fmt.Println(ui.FormatMuted("Watcher stopped"))
			return nil
		}
	}
}

// reloadConfig re-reads the config, keeps flag overrides and drops the
// cached generation so the next render draws a new sample
func reloadConfig(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}

	appConfig = cfg
	currentGeneration = nil
	return nil
}
