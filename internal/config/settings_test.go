package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 1000, s.Simulation.NumSimulations)
	assert.Equal(t, "console", s.Output.Format)
	assert.Empty(t, s.Location.State)
}

func TestSettingsPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "nestegg"), SettingsDir())
	assert.Equal(t, filepath.Join(dir, "nestegg", "config.toml"), SettingsPath())
	assert.False(t, SettingsExist())
}

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	s, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSaveAndLoadSettings(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s := DefaultSettings()
	s.Simulation.NumSimulations = 5000
	s.Simulation.Seed = 123
	s.Output.Format = "json"
	s.Location = LocationPrefs{State: "CA", City: "San Diego"}

	require.NoError(t, SaveSettings(s))
	assert.True(t, SettingsExist())

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[simulation]
workers = 2

[location]
state = "NY"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, s.Simulation.NumSimulations)
	assert.Equal(t, 2, s.Simulation.Workers)
	assert.Equal(t, "console", s.Output.Format)
	assert.Equal(t, "NY", s.Location.State)
}

func TestLoadSettings_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[simulation\nworkers = "), 0o600))

	_, err := LoadSettingsFrom(path)
	assert.ErrorContains(t, err, "parsing settings")
}
