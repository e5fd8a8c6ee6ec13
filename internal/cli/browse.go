package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/herodex/internal/tui"
)

// NewBrowseCmd creates the interactive browser command.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "browse",
		Short:       "Open the interactive character browser",
		Annotations: map[string]string{annotationInteractive: "true"},
		Long: `Opens the terminal browser: a random character spotlight, the paginated
character list and the detail panel for the selected character.

Keys: tab switches pane, arrows or hjkl move in the list, enter selects,
m loads more, r shows another random character, pgup/pgdown scroll, q quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	client, cfg, err := newClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app := tui.NewAppModel(ctx, client, tui.AppOptions{
		PickID:       tui.NewRangePicker(cfg.UI.RandomMinID, cfg.UI.RandomMaxID),
		PinThreshold: cfg.UI.PinThreshold,
	})

	p := tea.NewProgram(app,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
