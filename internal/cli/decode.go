package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/microid"
)

// decodeCommand creates the decode command for reading a dot grid back to
// its identifier, either from a grid string or interactively.
func (c *CLI) decodeCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "decode [grid]",
		Short: "Decode a 5x5 dot grid back to its identifier",
		Long: `Decode a 5x5 dot grid back to its identifier.

The grid is given as 25 '0'/'1' characters, row by row from the top.
Whitespace, commas, and pipes between rows are ignored:

  etchmark decode 10111,01000,10001,00111,10011

With --interactive, an editor opens instead: move with arrow keys or hjkl,
toggle cells with space, and watch the decode result update live.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return c.runInteractiveDecode(args)
			}
			if len(args) != 1 {
				return fmt.Errorf("grid argument required (or use --interactive)")
			}

			g, err := microid.ParseGrid(args[0])
			if err != nil {
				return err
			}
			return reportDecode(g)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "edit the grid interactively")
	return cmd
}

// runInteractiveDecode opens the grid editor, optionally seeded from a
// grid argument, and reports the decode result of the final grid.
func (c *CLI) runInteractiveDecode(args []string) error {
	var seed microid.Grid
	if len(args) == 1 {
		var err error
		seed, err = microid.ParseGrid(args[0])
		if err != nil {
			return err
		}
	}

	model := newGridEditModel(seed)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("grid editor: %w", err)
	}

	m, ok := final.(gridEditModel)
	if !ok || m.aborted {
		printInfo("decode cancelled")
		return nil
	}
	return reportDecode(m.grid)
}

// reportDecode prints the outcome of decoding a grid.
func reportDecode(g microid.Grid) error {
	id, err := microid.Decode(g)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	printSuccess("identifier %s", StyleValue.Render(microid.Canonical(id)))
	fmt.Print(renderGridPreview(g))
	return nil
}
