package cmd

import (
	"fmt"

	"github.com/f3rmion/emo/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.db>",
	Short: "Write the annotated catalog to a SQLite database",
	Long: `Export the catalog, annotated for the active locale, to a SQLite file.

The database has three tables:
  - meta     (key, value), with the locale
  - emoji    one row per emoji in catalog order
  - keyword  one row per annotation keyword, indexed by token

An existing file is replaced.

Example:
  emo --locale ja export emoji-ja.db`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	_, lib, err := setup(cmd)
	if err != nil {
		return err
	}

	n, err := store.Export(cmd.Context(), args[0], lib.Catalog(), lib.Locale().ID)
	if err != nil {
		return fmt.Errorf("exporting catalog: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d emoji (%s) to %s\n", n, lib.Locale(), args[0])
	return nil
}
