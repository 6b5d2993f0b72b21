package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/f3rmion/emo/internal/emoji"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <emoji>...",
	Short: "Show the catalog entry of each emoji",
	Long: `Look up emoji and display their:
  - Spoken text and keywords in the active locale
  - Group and subgroup
  - Code points and qualification status

Input is split into grapheme clusters, so several emoji can be given at once.

Example:
  emo lookup 😀
  emo lookup 👍🏽🐼`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	_, lib, err := setup(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, cluster := range clusters(strings.Join(args, " ")) {
		e, ok := lib.Lookup(cluster)
		if !ok {
			fmt.Fprintf(out, "%s  not in catalog (%s)\n\n", cluster, codepoints(cluster))
			continue
		}
		printEntry(out, e)
	}
	return nil
}

// clusters splits s into user-perceived characters, dropping whitespace.
func clusters(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		c := g.Str()
		if strings.TrimFunc(c, unicode.IsSpace) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func codepoints(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("U+%04X", r))
	}
	return strings.Join(parts, " ")
}

func printEntry(w io.Writer, e emoji.Entry) {
	fmt.Fprintf(w, "%s\n", e.Key)
	if e.SpokenText != "" {
		fmt.Fprintf(w, "  Spoken:   %s\n", e.SpokenText)
	}
	if names := e.Names(); len(names) > 0 {
		fmt.Fprintf(w, "  Keywords: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "  Group:    %s\n", e.Label)
	fmt.Fprintf(w, "  Code:     %s\n", e.CodepointString())
	fmt.Fprintf(w, "  Status:   %s\n", e.Status)
	fmt.Fprintln(w)
}
