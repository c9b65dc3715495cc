package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/etchlab/etchmark/pkg/microid"
)

// encodeCommand creates the encode command for inspecting an identifier's
// binary form and dot positions.
func (c *CLI) encodeCommand() *cobra.Command {
	var showDots bool

	cmd := &cobra.Command{
		Use:   "encode [identifier]",
		Short: "Encode an identifier into its Micro-ID binary form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIdentifier(args[0])
			if err != nil {
				return err
			}

			bits, err := microid.Encode(id)
			if err != nil {
				return err
			}
			parity, err := microid.Parity(bits)
			if err != nil {
				return err
			}
			dots, err := microid.DotPositions(id)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Micro-ID " + microid.Canonical(id)))
			printInfo("binary  %s", StyleValue.Render(bits))
			printInfo("parity  %s", StyleValue.Render(strconv.Itoa(int(parity))))
			printInfo("dots    %s", StyleValue.Render(strconv.Itoa(len(dots))))

			if showDots {
				fmt.Println()
				for _, d := range dots {
					line := fmt.Sprintf("%-11s x=%+.4f y=%+.4f", d.Kind, d.X, d.Y)
					if d.Kind == microid.KindData {
						line += fmt.Sprintf("  bit %d", d.Bit)
					}
					printDetail("%s", line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDots, "dots", false, "list every dot with its position")
	return cmd
}

// gridCommand creates the grid command for previewing an identifier's dot
// grid in the terminal.
func (c *CLI) gridCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grid [identifier]",
		Short: "Preview an identifier's 5x5 dot grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIdentifier(args[0])
			if err != nil {
				return err
			}
			g, err := microid.NewGrid(id)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Micro-ID " + microid.Canonical(id)))
			fmt.Print(renderGridPreview(g))
			return nil
		},
	}
}

// parseIdentifier parses a decimal identifier argument. Range checking is
// left to the codec so the error message is consistent everywhere.
func parseIdentifier(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	return uint32(v), nil
}
