package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("locale: ja_JP\npinyin: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ja_JP", cfg.Locale)
	assert.True(t, cfg.Pinyin)
	assert.Equal(t, 50, cfg.SearchLimit)
	assert.False(t, cfg.AutoUpdateAnnotations)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("locale: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSaveLoad(t *testing.T) {
	path := Path(filepath.Join(t.TempDir(), "nested", "emo"))
	want := &Config{
		Locale:                "zh",
		ResourceDir:           "/usr/share/unicode",
		AutoUpdateAnnotations: true,
		ResolveUnqualified:    true,
		Pinyin:                true,
		SearchLimit:           10,
	}

	require.NoError(t, Save(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "auto_update_annotations: true")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config", "emo"), dir)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), Path(dir))
}
