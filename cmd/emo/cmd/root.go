// Package cmd contains all CLI commands for the emo tool.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/f3rmion/emo/internal/config"
	"github.com/f3rmion/emo/internal/library"
	"github.com/f3rmion/emo/internal/resources"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emo",
	Short: "Search emoji by keyword in your language",
	Long: `emo finds emoji by the CLDR keywords of a locale.

The catalog comes from the Unicode emoji-test.txt file and is annotated
with the CLDR annotations of the chosen locale, so "grin", "笑" and "わらう"
all find 😀 in the matching locale.

Running 'emo' without arguments launches the interactive picker.`,
	SilenceUsage: true,
	RunE:         runPick,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/emo)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("locale", "", "annotation locale, e.g. ja or zh_Hant")
	rootCmd.PersistentFlags().String("resources", "", "directory with emoji-test.txt, annotations/ and annotationsDerived/")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("locale"))
	viper.BindPFlag("resource_dir", rootCmd.PersistentFlags().Lookup("resources"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("EMO")
	viper.AutomaticEnv()

	slog.SetDefault(newLogger(viper.GetBool("verbose")))
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings reads the config file and lets flags and EMO_* variables
// override its values.
func loadSettings(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(config.Path(v.GetString("config_dir")))
	if err != nil {
		return nil, err
	}

	v.SetDefault("locale", cfg.Locale)
	v.SetDefault("resource_dir", cfg.ResourceDir)
	v.SetDefault("auto_update_annotations", cfg.AutoUpdateAnnotations)
	v.SetDefault("resolve_unqualified", cfg.ResolveUnqualified)
	v.SetDefault("pinyin", cfg.Pinyin)
	v.SetDefault("search_limit", cfg.SearchLimit)

	return &config.Config{
		Locale:                v.GetString("locale"),
		ResourceDir:           v.GetString("resource_dir"),
		AutoUpdateAnnotations: v.GetBool("auto_update_annotations"),
		ResolveUnqualified:    v.GetBool("resolve_unqualified"),
		Pinyin:                v.GetBool("pinyin"),
		SearchLimit:           v.GetInt("search_limit"),
	}, nil
}

// inputLocale returns the locale the environment asks for, POSIX style.
func inputLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}

// openLibrary loads the catalog annotated for the configured locale. Without
// one, the environment locale is followed when auto-update is enabled.
func openLibrary(ctx context.Context, cfg *config.Config) (*library.Library, error) {
	lib := library.New(resources.Open(cfg.ResourceDir),
		library.WithLogger(slog.Default()),
		library.WithLocale(cfg.Locale),
		library.WithAliasResolution(cfg.ResolveUnqualified),
		library.WithAutoUpdate(cfg.AutoUpdateAnnotations),
		library.WithPinyin(cfg.Pinyin),
	)

	if err := lib.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading emoji data: %w", err)
	}

	if env := inputLocale(); env != "" && cfg.Locale == "" {
		if err := lib.HandleInputLocaleChange(ctx, env); err != nil {
			slog.Warn("following input locale", "locale", env, "error", err)
		}
	}
	return lib, nil
}

// setup loads settings and the library for a command.
func setup(cmd *cobra.Command) (*config.Config, *library.Library, error) {
	cfg, err := loadSettings(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	lib, err := openLibrary(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, lib, nil
}
