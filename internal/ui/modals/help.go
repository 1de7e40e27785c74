package modals

import (
	"fmt"
	"io"
	"strings"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// helpKeyColumnMax caps the key column so long command names don't push
// descriptions off the modal.
const helpKeyColumnMax = 20

// helpEntry is one selectable row: a shortcut or a protocol command.
type helpEntry struct {
	shortcut HelpShortcut
}

func (e helpEntry) FilterValue() string {
	return e.shortcut.Key + " " + e.shortcut.Desc
}

// isCommand reports whether the entry is a slash command rather than a key.
func (e helpEntry) isCommand() bool {
	return strings.HasPrefix(e.shortcut.Key, "/") && len(e.shortcut.Key) > 1
}

// helpHeading titles a section. Headings never match a filter.
type helpHeading struct {
	title string
	count int
}

func (h helpHeading) FilterValue() string { return "" }

type helpDelegate struct {
	keyWidth int
}

func (d helpDelegate) Height() int                              { return 1 }
func (d helpDelegate) Spacing() int                             { return 0 }
func (d helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch it := item.(type) {
	case helpHeading:
		title := lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Render(it.title)
		count := lipgloss.NewStyle().Foreground(ColorTextMuted).Render(fmt.Sprintf(" (%d)", it.count))
		fmt.Fprint(w, title+count)

	case helpEntry:
		keyStyle := lipgloss.NewStyle().Bold(true).Width(d.keyWidth).Foreground(ColorPrimary)
		descStyle := lipgloss.NewStyle().Foreground(ColorText)
		if it.isCommand() {
			keyStyle = keyStyle.Foreground(ColorSecondary)
			descStyle = descStyle.Foreground(ColorTextMuted)
		}

		cursor := "  "
		if index == m.Index() {
			cursor = "> "
			keyStyle = keyStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			descStyle = descStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
		}
		fmt.Fprint(w, cursor+keyStyle.Render(it.shortcut.Key)+descStyle.Render(it.shortcut.Desc))
	}
}

// HelpState lists the shortcuts that apply right now, grouped by section,
// followed by the commands of the open conversation.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	if sel, ok := s.list.SelectedItem().(helpEntry); ok && sel.isCommand() {
		return "Type the command in the send box  /: filter  Esc: close"
	}
	return "Enter: run  /: filter  up/down: navigate  Esc: close"
}

func (s *HelpState) Render() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(s.Title()),
		s.list.View(),
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize fits the list between the title and help lines.
func (s *HelpState) SetSize(width, height int) {
	const chrome = 4 // title and help, each with a margin line
	s.list.SetSize(width, max(height-chrome, 1))
}

// GetSelectedShortcut returns the highlighted entry, or nil on a heading or
// an empty list.
func (s *HelpState) GetSelectedShortcut() *HelpShortcut {
	if e, ok := s.list.SelectedItem().(helpEntry); ok {
		return &e.shortcut
	}
	return nil
}

// IsFiltering returns whether the user is currently typing in the filter.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpStateFromSections creates a HelpState from pre-built sections.
// Empty sections are skipped.
func NewHelpStateFromSections(sections []HelpSection) *HelpState {
	var items []list.Item
	keyWidth := 0
	first := -1
	for _, section := range sections {
		if len(section.Shortcuts) == 0 {
			continue
		}
		items = append(items, helpHeading{title: section.Title, count: len(section.Shortcuts)})
		for _, sc := range section.Shortcuts {
			if first < 0 {
				first = len(items)
			}
			keyWidth = max(keyWidth, lipgloss.Width(sc.Key)+2)
			items = append(items, helpEntry{shortcut: sc})
		}
	}

	l := list.New(items, helpDelegate{keyWidth: min(keyWidth, helpKeyColumnMax)}, ModalWidth, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)
	if first >= 0 {
		l.Select(first)
	}

	return &HelpState{list: l}
}
