package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/microid"
)

// Editor styles.
var (
	editCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	editHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editOKStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	editBadStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// gridEditModel is the bubbletea model for the interactive grid editor.
// The decode result of the current grid is recomputed on every toggle so
// operators can see immediately when a hand-entered mark becomes valid.
type gridEditModel struct {
	grid    microid.Grid
	row     int
	col     int
	aborted bool
}

// newGridEditModel creates an editor seeded with the given grid.
func newGridEditModel(seed microid.Grid) gridEditModel {
	return gridEditModel{grid: seed}
}

func (m gridEditModel) Init() tea.Cmd {
	return nil
}

func (m gridEditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		return m, tea.Quit
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < microid.GridSize-1 {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < microid.GridSize-1 {
			m.col++
		}
	case " ", "x":
		m.grid[m.row][m.col] = !m.grid[m.row][m.col]
	case "c":
		m.grid = microid.Grid{}
	}
	return m, nil
}

func (m gridEditModel) View() string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("Micro-ID grid editor"))
	sb.WriteString("\n\n")

	for r := 0; r < microid.GridSize; r++ {
		for c := 0; c < microid.GridSize; c++ {
			glyph := "·"
			if m.grid[r][c] {
				glyph = "●"
			}
			if r == m.row && c == m.col {
				sb.WriteString(editCursorStyle.Render("[" + glyph + "]"))
			} else {
				sb.WriteString(" " + glyph + " ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if id, err := microid.Decode(m.grid); err != nil {
		sb.WriteString(editBadStyle.Render(fmt.Sprintf("✗ %s", errors.UserMessage(err))))
	} else {
		sb.WriteString(editOKStyle.Render(fmt.Sprintf("✓ identifier %s", microid.Canonical(id))))
	}
	sb.WriteString("\n\n")
	sb.WriteString(editHelpStyle.Render("arrows/hjkl move · space toggle · c clear · enter accept · q quit"))
	sb.WriteString("\n")

	return sb.String()
}
