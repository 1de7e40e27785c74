package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/roster"
)

// Searcher receives the search filter typed into the conversation list.
type Searcher interface {
	SearchFilterChanged(query string)
}

// Sidebar is the left panel listing conversations. It renders a roster.List
// kept current by a roster.Synchronizer; searching hands the query back to
// the synchronizer, which filters the list.
type Sidebar struct {
	list         *roster.List
	search       Searcher
	selectedID   string
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
	showUnread   bool
	activeID     string // Conversation shown in the chat panel

	// Search mode
	searchMode  bool
	searchInput textinput.Model
}

// NewSidebar creates a sidebar over list. search may be nil.
func NewSidebar(list *roster.List, search Searcher) *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{
		list:        list,
		search:      search,
		showUnread:  true,
		searchInput: ti,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height

	ctx := GetViewContext()
	ctx.Log("Sidebar.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetShowUnread toggles unread counters
func (s *Sidebar) SetShowUnread(show bool) {
	s.showUnread = show
}

// SetActive marks the conversation shown in the chat panel
func (s *Sidebar) SetActive(id string) {
	s.activeID = id
}

// Len returns the number of listed conversations
func (s *Sidebar) Len() int {
	return s.list.Len()
}

// SelectedID returns the id of the highlighted conversation
func (s *Sidebar) SelectedID() (string, bool) {
	if s.selectedIdx < 0 || s.selectedIdx >= s.list.Len() {
		return "", false
	}
	return s.list.At(s.selectedIdx).ID, true
}

// Select highlights the conversation with the given id, if listed
func (s *Sidebar) Select(id string) {
	if idx := s.list.IndexOf(id); idx >= 0 {
		s.selectedIdx = idx
		s.selectedID = id
	}
}

// Sync re-anchors the selection after the list changed. The highlighted
// conversation stays highlighted while it is listed.
func (s *Sidebar) Sync() {
	if idx := s.list.IndexOf(s.selectedID); idx >= 0 {
		s.selectedIdx = idx
		return
	}
	s.clampSelection()
}

func (s *Sidebar) clampSelection() {
	if s.selectedIdx >= s.list.Len() {
		s.selectedIdx = s.list.Len() - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
	s.selectedID = ""
	if s.selectedIdx < s.list.Len() {
		s.selectedID = s.list.At(s.selectedIdx).ID
	}
}

func (s *Sidebar) move(delta int) {
	s.selectedIdx += delta
	s.clampSelection()
}

// EnterSearchMode activates search mode
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.applyFilter("")
	return s.searchInput.Focus()
}

// ExitSearchMode deactivates search mode and clears the filter
func (s *Sidebar) ExitSearchMode() {
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.applyFilter("")
}

// IsSearchMode returns whether search mode is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// GetSearchQuery returns the current search query
func (s *Sidebar) GetSearchQuery() string {
	return s.searchInput.Value()
}

// applyFilter hands the query to the synchronizer and keeps the selection in range
func (s *Sidebar) applyFilter(query string) {
	if s.search != nil {
		s.search.SearchFilterChanged(query)
	}
	s.scrollOffset = 0
	s.Sync()
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	if s.searchMode {
		switch keyMsg.String() {
		case keys.Escape:
			s.ExitSearchMode()
			return s, nil
		case keys.Enter:
			// Leave search mode but keep the filter applied
			s.searchMode = false
			s.searchInput.Blur()
			return s, nil
		case keys.Up:
			s.move(-1)
			return s, nil
		case keys.Down:
			s.move(1)
			return s, nil
		default:
			prev := s.searchInput.Value()
			var cmd tea.Cmd
			s.searchInput, cmd = s.searchInput.Update(msg)
			if s.searchInput.Value() != prev {
				s.applyFilter(s.searchInput.Value())
			}
			return s, cmd
		}
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		s.move(-1)
	case keys.Down, "j":
		s.move(1)
	case keys.Home, "g":
		s.selectedIdx = 0
		s.clampSelection()
	case keys.End, "G":
		s.selectedIdx = s.list.Len() - 1
		s.clampSelection()
	}
	return s, nil
}

// renderEntry renders one conversation row to fit width cells
func (s *Sidebar) renderEntry(e roster.Entity, width int) string {
	var suffix string
	if s.showUnread && e.Unread > 0 {
		suffix = fmt.Sprintf(" (%d)", e.Unread)
	}

	// Two cells for the marker and its space, two for the item padding
	nameWidth := width - 4 - runewidth.StringWidth(suffix)
	if nameWidth < 1 {
		nameWidth = 1
	}
	name := runewidth.Truncate(e.Name, nameWidth, "…")
	if e.ID == s.activeID {
		name = lipgloss.NewStyle().Underline(true).Render(name)
	}

	line := PresenceMarker(e.Status) + " " + name
	if suffix != "" {
		line += UnreadStyle.Render(suffix)
	}
	return line
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	var searchLine string
	if s.searchMode || s.searchInput.Value() != "" {
		searchStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
		s.searchInput.SetWidth(innerWidth - 3) // Leave room for "/ "
		searchLine = searchStyle.Render("/") + " " + s.searchInput.View()
		innerHeight--
	}

	var content string
	if s.list.Len() == 0 {
		emptyMsg := "No conversations."
		if s.searchInput.Value() != "" {
			emptyMsg = "No matches."
		}
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(emptyMsg)
	} else {
		// Keep the selection inside the visible window
		if s.selectedIdx < s.scrollOffset {
			s.scrollOffset = s.selectedIdx
		}
		if innerHeight > 0 && s.selectedIdx >= s.scrollOffset+innerHeight {
			s.scrollOffset = s.selectedIdx - innerHeight + 1
		}

		end := s.scrollOffset + innerHeight
		if end > s.list.Len() {
			end = s.list.Len()
		}

		lines := make([]string, 0, end-s.scrollOffset)
		for i := s.scrollOffset; i < end; i++ {
			itemStyle := SidebarItemStyle.Width(innerWidth)
			if i == s.selectedIdx && s.focused {
				itemStyle = SidebarSelectedStyle.Width(innerWidth)
			}
			lines = append(lines, itemStyle.Render(s.renderEntry(s.list.At(i), innerWidth)))
		}
		content = strings.Join(lines, "\n")
	}

	if searchLine != "" {
		content = searchLine + "\n" + content
	}

	return style.
		Width(s.width).
		Height(s.height).
		Render(content)
}
