package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

// ShowFlash puts a message in the footer and starts the expiry ticker.
// Only one flash is shown at a time; a new one replaces the old.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError shows an error in the footer and records it in the log
func (m *Model) ShowFlashError(text string) tea.Cmd {
	logger.WithComponent("app").Warn("flash", "text", text)
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashSuccess confirms a completed action
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}
