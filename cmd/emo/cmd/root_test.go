package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/emo/internal/annotation"
	"github.com/f3rmion/emo/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Save(config.Path(dir), &config.Config{
		Locale:      "ja",
		Pinyin:      true,
		SearchLimit: 7,
	}))

	v := viper.New()
	v.Set("config_dir", dir)
	cfg, err := loadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Locale)
	assert.True(t, cfg.Pinyin)
	assert.Equal(t, 7, cfg.SearchLimit)

	t.Setenv("EMO_LOCALE", "zh")
	v = viper.New()
	v.Set("config_dir", dir)
	v.SetEnvPrefix("EMO")
	v.AutomaticEnv()
	cfg, err = loadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, "zh", cfg.Locale, "environment overrides the file")
}

func TestLoadSettings_NoFile(t *testing.T) {
	v := viper.New()
	v.Set("config_dir", t.TempDir())

	cfg, err := loadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestOpenLibrary_InputLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	ctx := context.Background()

	tests := []struct {
		name string
		lang string
		cfg  config.Config
		want string
	}{
		{"explicit locale wins", "zh_CN.UTF-8", config.Config{Locale: "ja", AutoUpdateAnnotations: true}, "ja"},
		{"follows environment", "zh_CN.UTF-8", config.Config{AutoUpdateAnnotations: true}, "zh"},
		{"auto-update off", "zh_CN.UTF-8", config.Config{}, "en"},
		{"unbundled environment", "fr_FR.UTF-8", config.Config{Locale: "ja", AutoUpdateAnnotations: true}, "ja"},
		{"unbundled environment without locale", "fr_FR.UTF-8", config.Config{AutoUpdateAnnotations: true}, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LANG", tt.lang)
			cfg := tt.cfg

			lib, err := openLibrary(ctx, &cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lib.Locale().ID)
		})
	}
}

func TestClusters(t *testing.T) {
	assert.Equal(t, []string{"😀", "👍🏽", "🇯🇵", "a"}, clusters("😀 👍🏽🇯🇵\ta"))
	assert.Empty(t, clusters("  "))
}

func TestFormatLocale(t *testing.T) {
	assert.Equal(t, "* ja       日本語", formatLocale(annotation.Locale{ID: "ja"}, true))
	assert.Equal(t, "  en       English", formatLocale(annotation.Locale{ID: "en"}, false))
}

func TestSearchCommand(t *testing.T) {
	out := execute(t, "--locale", "en", "search", "pand")
	assert.Contains(t, out, "🐼")
	assert.Contains(t, out, "panda")

	out = execute(t, "--locale", "en", "search", "rocket")
	assert.Contains(t, out, `No emoji found for "rocket"`)
}

func TestLookupCommand(t *testing.T) {
	out := execute(t, "--locale", "ja", "lookup", "🐼x")
	assert.Contains(t, out, "Code:     1F43C")
	assert.Contains(t, out, "Animals & Nature / animal-mammal")
	assert.Contains(t, out, "x  not in catalog (U+0078)")
}

func TestLocalesCommand(t *testing.T) {
	out := execute(t, "--locale", "zh_CN", "locales")
	assert.Contains(t, out, "* zh")
	assert.Contains(t, out, "  en")
	assert.Contains(t, out, "  ja")
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emoji.db")

	out := execute(t, "--locale", "en", "export", path)
	assert.Contains(t, out, "Exported")

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append([]string{"--config", dir}, args...))
		t.Cleanup(func() { rootCmd.SetArgs(nil) })
		err := rootCmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	out, err := run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	cfg, err := config.Load(config.Path(dir))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = run("init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run("init", "--force")
	assert.NoError(t, err)
}
