package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/emo/internal/tui"
	"github.com/f3rmion/emo/internal/tui/preview"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick an emoji interactively",
	Long: `Launch the interactive picker. Type to search, use the arrow keys to
select, enter to copy the emoji and quit, ctrl+y to copy and stay, and tab
to switch to the next locale.

The chosen emoji is also printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, lib, err := setup(cmd)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithLimit(cfg.SearchLimit)}
	if r, err := preview.Load(preview.FontPaths); err == nil {
		opts = append(opts, tui.WithPreview(r))
	} else {
		slog.Debug("emoji preview disabled", "error", err)
	}

	p := tea.NewProgram(
		tui.New(lib, opts...),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.Chosen() != "" {
		fmt.Fprintln(cmd.OutOrStdout(), m.Chosen())
	}
	return nil
}
