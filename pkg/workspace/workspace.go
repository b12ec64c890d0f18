package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "gridrisk"

// Workspace represents the managed output directories for gridrisk
type Workspace struct {
	RootPath    string
	ReportsPath string
	ExportsPath string
	ConfigPath  string
}

// New creates a new Workspace instance with XDG-compliant paths
func New() (*Workspace, error) {
	rootPath, rootErr := getDataRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine workspace root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return NewAt(rootPath, configPath), nil
}

// NewAt lays out a workspace under root with the config file at configPath
func NewAt(root, configPath string) *Workspace {
	return &Workspace{
		RootPath:    root,
		ReportsPath: filepath.Join(root, "reports"),
		ExportsPath: filepath.Join(root, "exports"),
		ConfigPath:  configPath,
	}
}

// getDataRoot returns the workspace root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getDataRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Fall back to ~/.local/share/gridrisk (Unix-like systems)
	return filepath.Join(homeDir, ".local", "share", appName), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName+"-config", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Fall back to ~/.config/gridrisk/config.yaml (Unix-like systems)
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Initialize creates the workspace directory structure if it doesn't exist
func (w *Workspace) Initialize() error {
	directories := []string{
		w.RootPath,
		w.ReportsPath,
		w.ExportsPath,
		filepath.Dir(w.ConfigPath),
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the workspace has been initialized
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReportPath resolves a report file name. Absolute or explicitly relative
// paths are returned unchanged.
func (w *Workspace) ReportPath(name string) string {
	return w.resolve(w.ReportsPath, name)
}

// ExportPath resolves an export file name the same way as ReportPath
func (w *Workspace) ExportPath(name string) string {
	return w.resolve(w.ExportsPath, name)
}

func (w *Workspace) resolve(dir, name string) string {
	if filepath.IsAbs(name) || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(dir, name)
}
