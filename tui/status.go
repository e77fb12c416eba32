package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// current room, exits, inventory, and turn count.
func (m Model) renderStatusBar() string {
	view := m.engine.RoomView()
	turns := m.engine.State().Turns()

	left := fmt.Sprintf(" %s | Exits: %s", view.Name, strings.Join(view.Exits, ","))
	right := fmt.Sprintf("T:%d ", turns)

	// Show inventory items if they fit, otherwise just count.
	if names := m.engine.InventoryView(); len(names) > 0 {
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(names, ", "), turns)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(names), turns)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
