package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir from Go 1.24+, reimplemented so the tests build on Go 1.21.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	_, statErr := os.Stat(ConfigPath)
	assert.True(t, os.IsNotExist(statErr), "a fallback load must not create the file")
}

func TestLoadInvalidFileFallsBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Dir(ConfigPath), 0755))
	require.NoError(t, os.WriteFile(ConfigPath, []byte("{not yaml"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := Default()
	cfg.Gravity = 0.8
	cfg.MaxWind = 25
	cfg.Terrain.Width = 1024
	cfg.Terrain.Seed = 99
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPathEnvVarOverridesLocation(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	alt := filepath.Join(dir, "alt", "engine.yaml")
	t.Setenv(PathEnvVar, alt)

	cfg := Default()
	cfg.Gravity = 2
	require.NoError(t, Save(cfg))

	_, statErr := os.Stat(ConfigPath)
	assert.True(t, os.IsNotExist(statErr), "the default path is untouched")
	_, statErr = os.Stat(alt)
	require.NoError(t, statErr)

	loaded, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 2, loaded.Gravity, 1e-6)
}

func TestLoadPartialFileKeepsDefaultsElsewhere(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Dir(ConfigPath), 0755))
	require.NoError(t, os.WriteFile(ConfigPath, []byte("gravity: 1.25\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 1.25, cfg.Gravity, 1e-6)
	assert.Equal(t, Default().MaxWind, cfg.MaxWind)
	assert.Equal(t, Default().Terrain, cfg.Terrain)
}
