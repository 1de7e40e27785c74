package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.ConfirmQuitState:
		return m.handleConfirmQuitModal(key, msg, s)
	case *modals.ErrorState:
		return m.handleErrorModal(key)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.PreferencesState:
		return m.handlePreferencesModal(key, msg, s)
	case *modals.StatusState:
		return m.handleStatusModal(key, msg, s)
	case *modals.NewChatState:
		return m.handleNewChatModal(key, msg, s)
	}

	// Default: update modal input
	return m.forwardToModal(msg)
}

// forwardToModal passes a key to the visible modal's state
func (m *Model) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConfirmQuitModal handles key events for the quit confirmation.
func (m *Model) handleConfirmQuitModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmQuitState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, "n":
		m.modal.Hide()
		return m, nil
	case "y":
		return m, tea.Quit
	case keys.Enter:
		if state.ShouldQuit() {
			return m, tea.Quit
		}
		m.modal.Hide()
		return m, nil
	}
	return m.forwardToModal(msg)
}

// handleErrorModal dismisses the error modal.
func (m *Model) handleErrorModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.Enter:
		m.modal.Hide()
	}
	return m, nil
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		return m.forwardToModal(msg)
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		m.modal.Hide()
		return m.handleHelpShortcutTrigger(shortcut.Key)
	}
	return m.forwardToModal(msg)
}

// handleHelpShortcutTrigger runs a shortcut picked from the help modal.
func (m *Model) handleHelpShortcutTrigger(displayKey string) (tea.Model, tea.Cmd) {
	key := shortcutKeyForDisplay(displayKey)
	if key == "" {
		return m, nil // Display-only entry, no action
	}
	result, cmd, _ := m.ExecuteShortcut(key)
	return result, cmd
}

// handlePreferencesModal saves the checked preferences on enter.
func (m *Model) handlePreferencesModal(key string, msg tea.KeyPressMsg, state *modals.PreferencesState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.config.ApplyPreferences(state.Enabled())
		m.modal.Hide()
		m.applyPreferences()
		logger.WithComponent("app").Info("preferences changed", "enabled", state.Enabled())
		if cmd := m.saveConfigOrFlash(); cmd != nil {
			return m, cmd
		}
		return m, m.ShowFlashSuccess("Preferences saved")
	}
	return m.forwardToModal(msg)
}

// handleStatusModal applies the selected own status to every account.
func (m *Model) handleStatusModal(key string, msg tea.KeyPressMsg, state *modals.StatusState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		status := state.Selected()
		m.modal.Hide()
		if cmd := m.setOwnStatus(status); cmd != nil {
			return m, cmd
		}
		m.config.SetOwnStatus(status.String())
		return m, m.saveConfigOrFlash()
	}
	return m.forwardToModal(msg)
}

// handleNewChatModal opens or creates the chat with the highlighted contact.
func (m *Model) handleNewChatModal(key string, msg tea.KeyPressMsg, state *modals.NewChatState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		contactID, ok := state.GetSelectedContact()
		if !ok {
			return m, nil
		}
		m.modal.Hide()
		return m, m.startChat(contactID)
	}
	return m.forwardToModal(msg)
}
