package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/f3rmion/emo/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize emo configuration",
	Long: `Write a config.yaml with the default settings to your config directory.

Settings:
  - locale                   annotation locale, e.g. en, ja_JP, zh-Hant; when
                             empty, en or the environment locale with
                             auto_update_annotations
  - resource_dir             directory with the full Unicode/CLDR data files
  - auto_update_annotations  follow the LANG/LC_* locale of the environment
  - resolve_unqualified      apply annotations of unqualified emoji forms
  - pinyin                   match pinyin of Chinese keywords in the picker
  - search_limit             maximum results (0 = unlimited)

Flags and EMO_* environment variables override the file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := config.Path(getConfigDir())

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
