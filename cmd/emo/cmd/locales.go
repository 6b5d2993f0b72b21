package cmd

import (
	"fmt"

	"github.com/f3rmion/emo/internal/annotation"
	"github.com/spf13/cobra"
	"golang.org/x/text/language/display"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the annotation locales",
	Long: `List the locales that have annotation files. The active locale, resolved
from --locale, EMO_LOCALE or the config file, is marked with '*'.`,
	Args: cobra.NoArgs,
	RunE: runLocales,
}

func init() {
	rootCmd.AddCommand(localesCmd)
}

func runLocales(cmd *cobra.Command, args []string) error {
	_, lib, err := setup(cmd)
	if err != nil {
		return err
	}

	locales, err := lib.Locales()
	if err != nil {
		return fmt.Errorf("listing locales: %w", err)
	}

	active := lib.Locale()
	for _, l := range locales {
		fmt.Fprintln(cmd.OutOrStdout(), formatLocale(l, l == active))
	}
	return nil
}

func formatLocale(l annotation.Locale, active bool) string {
	mark := " "
	if active {
		mark = "*"
	}
	name := display.Self.Name(l.Tag())
	if name == "" {
		return fmt.Sprintf("%s %s", mark, l.ID)
	}
	return fmt.Sprintf("%s %-8s %s", mark, l.ID, name)
}
