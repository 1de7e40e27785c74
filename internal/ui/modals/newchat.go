package modals

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/roster"
)

// =============================================================================
// NewChatState - State for picking a contact to start a conversation with
// =============================================================================

type NewChatState struct {
	Input         textinput.Model
	SelectedIndex int
	ScrollOffset  int

	contacts *roster.List
	sync     *roster.Synchronizer
}

func (*NewChatState) modalState() {}

func (s *NewChatState) Title() string { return "New Chat" }

func (s *NewChatState) Help() string {
	if s.contacts.Len() == 0 {
		return "No matching contacts. Esc: close"
	}
	return "Type to search  up/down: navigate  Enter: open chat  Esc: close"
}

func (s *NewChatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	inputStyle := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1).
		MarginBottom(1)
	inputView := inputStyle.Render(s.Input.View())

	var list strings.Builder
	if s.contacts.Len() == 0 {
		list.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No contacts"))
	} else {
		end := s.ScrollOffset + NewChatMaxVisible
		if end > s.contacts.Len() {
			end = s.contacts.Len()
		}
		if s.ScrollOffset > 0 {
			list.WriteString(lipgloss.NewStyle().Foreground(ColorTextMuted).Render("  more above") + "\n")
		}
		for i := s.ScrollOffset; i < end; i++ {
			e := s.contacts.At(i)
			style := SidebarItemStyle
			prefix := "  "
			if i == s.SelectedIndex {
				style = SidebarSelectedStyle
				prefix = "> "
			}
			line := fmt.Sprintf("%s%s %s", prefix, presenceMarker(e), e.Name)
			list.WriteString(style.Render(line) + "\n")
		}
		if end < s.contacts.Len() {
			list.WriteString(lipgloss.NewStyle().Foreground(ColorTextMuted).Render("  more below") + "\n")
		}
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, inputView, list.String(), help)
}

func (s *NewChatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.Input, cmd = s.Input.Update(msg)
		return s, cmd
	}

	switch keyMsg.String() {
	case keys.Up, keys.ShiftTab:
		if s.SelectedIndex > 0 {
			s.SelectedIndex--
			if s.SelectedIndex < s.ScrollOffset {
				s.ScrollOffset = s.SelectedIndex
			}
		}
		return s, nil
	case keys.Down, keys.Tab:
		if s.SelectedIndex < s.contacts.Len()-1 {
			s.SelectedIndex++
			if s.SelectedIndex >= s.ScrollOffset+NewChatMaxVisible {
				s.ScrollOffset = s.SelectedIndex - NewChatMaxVisible + 1
			}
		}
		return s, nil
	}

	prev := s.Input.Value()
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	if s.Input.Value() != prev {
		s.sync.SearchFilterChanged(s.Input.Value())
		s.SelectedIndex = 0
		s.ScrollOffset = 0
	}
	return s, cmd
}

// Refresh re-reads the contact registry, e.g. after a presence change while
// the modal is open.
func (s *NewChatState) Refresh() {
	s.sync.Refresh()
	if s.SelectedIndex >= s.contacts.Len() {
		s.SelectedIndex = max(0, s.contacts.Len()-1)
	}
}

// Synchronizer returns the roster synchronizer feeding the contact list.
func (s *NewChatState) Synchronizer() *roster.Synchronizer {
	return s.sync
}

// GetSelectedContact returns the highlighted contact id, or false if the list is empty.
func (s *NewChatState) GetSelectedContact() (string, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= s.contacts.Len() {
		return "", false
	}
	return s.contacts.At(s.SelectedIndex).ID, true
}

// NewNewChatState creates a NewChatState listing the contacts in registry.
// Offline contacts are hidden when prefs says so.
func NewNewChatState(registry roster.Registry, prefs roster.Preferences) *NewChatState {
	input := textinput.New()
	input.Placeholder = "search contacts..."
	input.CharLimit = ModalInputCharLimit
	input.SetWidth(ModalInputWidth)
	input.Focus()

	contacts := roster.NewList()
	sync := roster.New(registry, contacts, prefs, nil, roster.Options{ApplyOfflineFilter: true})
	sync.Populate()

	return &NewChatState{
		Input:    input,
		contacts: contacts,
		sync:     sync,
	}
}
