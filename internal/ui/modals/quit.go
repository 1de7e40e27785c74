package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// ConfirmQuitState - State for the quit confirmation modal
// =============================================================================

type ConfirmQuitState struct {
	Accounts      int // Number of connected accounts
	Options       []string
	SelectedIndex int
}

func (*ConfirmQuitState) modalState() {}

func (s *ConfirmQuitState) Title() string { return "Quit Parley?" }

func (s *ConfirmQuitState) Help() string {
	return "up/down to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmQuitState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	text := "All accounts will be disconnected."
	if s.Accounts == 1 {
		text = "Your account will be disconnected."
	}
	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render(text)

	var optionList string
	for i, opt := range s.Options {
		style := SidebarItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, message, optionList, help)
}

func (s *ConfirmQuitState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		case "y":
			s.SelectedIndex = 0
		case "n":
			s.SelectedIndex = 1
		}
	}
	return s, nil
}

// ShouldQuit returns true if the user selected to quit
func (s *ConfirmQuitState) ShouldQuit() bool {
	return s.SelectedIndex == 0
}

// NewConfirmQuitState creates a new ConfirmQuitState
func NewConfirmQuitState(accounts int) *ConfirmQuitState {
	return &ConfirmQuitState{
		Accounts:      accounts,
		Options:       []string{"Quit", "Stay"},
		SelectedIndex: 0,
	}
}
