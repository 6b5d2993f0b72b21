package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/emo/internal/emoji"
	"github.com/f3rmion/emo/internal/romanize"
	"github.com/f3rmion/emo/internal/search"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find emoji whose keywords start with a prefix",
	Long: `Search the annotated catalog for emoji with a keyword that starts with
the given prefix. Matching is case-sensitive and follows catalog order.

Example:
  emo search grin
  emo --locale ja search 笑
  emo --locale zh search --pinyin xiong`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Bool("pinyin", false, "also match the pinyin of Chinese keywords")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, lib, err := setup(cmd)
	if err != nil {
		return err
	}

	limit := cfg.SearchLimit
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
	}

	opts := []search.Option{search.WithLimit(limit)}
	if usePinyin, _ := cmd.Flags().GetBool("pinyin"); usePinyin {
		opts = append(opts, search.WithTransliterator(romanize.Pinyin))
	}

	results, err := lib.Search(args[0], opts...)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No emoji found for %q in locale %s\n", args[0], lib.Locale())
		return nil
	}
	printEntries(cmd.OutOrStdout(), results)
	return nil
}

func printEntries(w io.Writer, entries []emoji.Entry) {
	for _, e := range entries {
		name := e.SpokenText
		if name == "" {
			name = strings.Join(e.Names(), ", ")
		}
		fmt.Fprintf(w, "%s %s\n", runewidth.FillRight(e.Key, 3), name)
	}
}
