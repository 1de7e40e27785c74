package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/im"
)

// Presence glyphs, one per status
const (
	glyphOnline  = "●"
	glyphAway    = "◐"
	glyphBusy    = "⊘"
	glyphOffline = "○"
)

// PresenceMarker renders the colored glyph for a status.
func PresenceMarker(status im.Status) string {
	switch status {
	case im.StatusOnline:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Render(glyphOnline)
	case im.StatusAway:
		return lipgloss.NewStyle().Foreground(ColorWarning).Render(glyphAway)
	case im.StatusBusy:
		return lipgloss.NewStyle().Foreground(ColorError).Render(glyphBusy)
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(glyphOffline)
	}
}
