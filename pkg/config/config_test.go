package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxmods/stockcheck/pkg/config"
	"github.com/nxmods/stockcheck/pkg/errclass"
	"github.com/nxmods/stockcheck/pkg/stock"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, stock.WiiU, cfg.Platform)
	assert.False(t, cfg.NewIsModified)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Values(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	abs := filepath.Join(dir, "abs", "switch.json.zst")
	content := `platform: switch
new_is_modified: true
workers: 4
datasets:
  wiiu: tables/wiiu.json
  switch: ` + abs + `
report:
  format: cbor
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, stock.Switch, cfg.Platform)
	assert.True(t, cfg.NewIsModified)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, filepath.Join(dir, "tables", "wiiu.json"), cfg.Datasets.For(stock.WiiU))
	assert.Equal(t, abs, cfg.Datasets.For(stock.Switch))
	assert.Equal(t, "cbor", cfg.Report.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, "", cfg.Datasets.For(stock.WiiU))
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":       "platform: [",
		"bad platform":   "platform: gamecube\n",
		"neg workers":    "workers: -1\n",
		"bad format":     "report:\n  format: xml\n",
		"bad level":      "logging:\n  level: loud\n",
		"bad log format": "logging:\n  format: html\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := config.Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, errclass.ErrConfigInvalid)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Platform = stock.Switch
	cfg.Workers = 8

	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
