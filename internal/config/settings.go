package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "nestegg"

// Settings holds the user preferences stored in config.toml
type Settings struct {
	Simulation SimulationPrefs `toml:"simulation"`
	Output     OutputPrefs     `toml:"output"`
	Location   LocationPrefs   `toml:"location"`
}

// SimulationPrefs are the default Monte Carlo settings
type SimulationPrefs struct {
	NumSimulations int    `toml:"num_simulations"`
	Workers        int    `toml:"workers,omitempty"`
	Seed           uint64 `toml:"seed,omitempty"`
}

// OutputPrefs control report rendering
type OutputPrefs struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory,omitempty"`
}

// LocationPrefs is the fallback location for cost-of-living lookup
type LocationPrefs struct {
	State string `toml:"state,omitempty"`
	City  string `toml:"city,omitempty"`
}

// DefaultSettings returns the preferences used when no file exists
func DefaultSettings() Settings {
	return Settings{
		Simulation: SimulationPrefs{
			NumSimulations: 1000,
		},
		Output: OutputPrefs{
			Format: "console",
		},
	}
}

// SettingsDir returns the XDG-compliant config directory.
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// SettingsPath returns the full path to the preferences file.
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// LoadSettings reads the preferences file, returning defaults if it doesn't exist.
func LoadSettings() (Settings, error) {
	return LoadSettingsFrom(SettingsPath())
}

// LoadSettingsFrom reads preferences from a specific path
func LoadSettingsFrom(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing settings: %w", err)
	}

	return cfg, nil
}

// SaveSettings writes the preferences to the default path.
func SaveSettings(cfg Settings) error {
	return SaveSettingsTo(SettingsPath(), cfg)
}

// SaveSettingsTo writes the preferences to a specific path
func SaveSettingsTo(path string, cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// SettingsExist returns true if a preferences file exists on disk.
func SettingsExist() bool {
	_, err := os.Stat(SettingsPath())
	return err == nil
}
