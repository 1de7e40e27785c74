package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// ErrorState - State for showing a protocol or account error
// =============================================================================

type ErrorState struct {
	Message string
	Detail  string
}

func (*ErrorState) modalState() {}

func (s *ErrorState) Title() string { return "Error" }

func (s *ErrorState) Help() string { return "Enter or Esc: dismiss" }

func (s *ErrorState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	message := StatusErrorStyle.
		MarginBottom(1).
		Width(ModalWidth - 6).
		Render(s.Message)

	parts := []string{title, message}
	if s.Detail != "" {
		detail := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Width(ModalWidth - 6).
			Render(s.Detail)
		parts = append(parts, detail)
	}
	parts = append(parts, ModalHelpStyle.Render(s.Help()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ErrorState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewErrorState creates a new ErrorState
func NewErrorState(message, detail string) *ErrorState {
	return &ErrorState{Message: message, Detail: detail}
}
