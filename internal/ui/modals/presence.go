package modals

import (
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/roster"
)

// presenceMarker renders the status glyph for a roster entry.
func presenceMarker(e roster.Entity) string {
	switch e.Status {
	case im.StatusOnline:
		return lipgloss.NewStyle().Foreground(ColorSecondary).Render("●")
	case im.StatusAway:
		return lipgloss.NewStyle().Foreground(ColorWarning).Render("◐")
	case im.StatusBusy:
		return lipgloss.NewStyle().Foreground(ColorWarning).Render("⊘")
	default:
		return lipgloss.NewStyle().Foreground(ColorTextMuted).Render("○")
	}
}
