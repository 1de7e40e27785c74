package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key               string                              // The key binding (e.g., "n", "ctrl+n")
	DisplayKey        string                              // Display name in help (e.g., "Shift+Tab"); defaults to Key
	Description       string                              // Human-readable description
	Category          string                              // Section for help modal grouping
	RequiresSelection bool                                // A conversation must be highlighted in the sidebar
	RequiresSidebar   bool                                // Must not be in chat focus
	Handler           func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition         func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryConversations = "Conversations"
	CategoryAccount       = "Account"
	CategoryChat          = "Chat (when focused)"
	CategoryCommands      = "Commands"
	CategoryGeneral       = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryConversations,
	CategoryAccount,
	CategoryChat,
	CategoryCommands,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.ShiftTab,
		DisplayKey:  "Shift+Tab",
		Description: "Switch between conversations and chat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:             "/",
		Description:     "Search conversations",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		Handler:         shortcutSearch,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSearchMode() },
	},

	// Conversations
	{
		Key:               keys.Enter,
		DisplayKey:        "Enter",
		Description:       "Open selected conversation",
		Category:          CategoryConversations,
		RequiresSidebar:   true,
		RequiresSelection: true,
		Handler:           shortcutOpen,
	},
	{
		Key:             "n",
		Description:     "Start a new chat",
		Category:        CategoryConversations,
		RequiresSidebar: true,
		Handler:         shortcutNewChat,
	},
	{
		Key:         keys.CtrlN,
		DisplayKey:  "ctrl-n",
		Description: "Start a new chat from anywhere",
		Category:    CategoryConversations,
		Handler:     shortcutNewChat,
	},
	{
		Key:               "x",
		Description:       "Leave selected conversation",
		Category:          CategoryConversations,
		RequiresSidebar:   true,
		RequiresSelection: true,
		Handler:           shortcutLeave,
	},

	// Account
	{
		Key:             "s",
		Description:     "Set status",
		Category:        CategoryAccount,
		RequiresSidebar: true,
		Handler:         shortcutStatus,
	},
	{
		Key:             ",",
		Description:     "Preferences",
		Category:        CategoryAccount,
		RequiresSidebar: true,
		Handler:         shortcutPreferences,
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:             "q",
		Description:     "Quit application",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:             "?",
	Description:     "Show this help",
	Category:        CategoryGeneral,
	RequiresSidebar: true,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
// These are context-sensitive or informational entries.
var DisplayOnlyShortcuts = []Shortcut{
	// Navigation (display-only)
	{DisplayKey: "↑/↓ or j/k", Description: "Navigate conversation list", Category: CategoryNavigation},
	{DisplayKey: "Esc", Description: "Cancel search / Back to conversations", Category: CategoryNavigation},

	// Chat (display-only, context-sensitive)
	{DisplayKey: "Enter", Description: "Send message", Category: CategoryChat},
	{DisplayKey: "Alt+Enter", Description: "Insert newline", Category: CategoryChat},
	{DisplayKey: "Tab", Description: "Complete command or user name", Category: CategoryChat},
	{DisplayKey: "↑/↓", Description: "Browse sent messages", Category: CategoryChat},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll messages", Category: CategoryChat},

	// General (display-only)
	{DisplayKey: "ctrl-c", Description: "Quit immediately", Category: CategoryGeneral},
}

// hasSelection reports whether a conversation is highlighted in the sidebar
func (m *Model) hasSelection() bool {
	_, ok := m.sidebar.SelectedID()
	return ok
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
// This is used to filter which shortcuts appear in the help modal.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSidebar && m.chat.IsFocused() {
		return false
	}
	if s.RequiresSelection && !m.hasSelection() {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// It checks all guards (RequiresSidebar, RequiresSelection, Condition) before executing.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	log := logger.WithComponent("shortcuts")

	// In search mode keys go to the search input
	if m.sidebar.IsSearchMode() && key != "/" {
		return m, nil, false
	}

	if key == helpShortcut.Key {
		if m.chat.IsFocused() {
			return m, nil, false // Guard failed, let key propagate to textarea
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			log.Debug("guard failed", "key", key, "chatFocused", m.chat.IsFocused(), "selection", m.hasSelection())
			return m, nil, false // Let key propagate to the focused panel
		}
		log.Debug("executing", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that are
// applicable in the current application state, plus the slash commands of the
// open conversation.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	if m.isShortcutApplicable(helpShortcut) {
		add(helpShortcut)
	}

	for _, s := range displayOnly {
		// Chat entries only matter with a conversation open
		if s.Category == CategoryChat && !m.chat.HasConversation() {
			continue
		}
		add(s)
	}

	if conv, ok := m.server.ConversationByID(m.activeID); ok {
		cmds := m.server.Commands(conv.Instance)
		for _, name := range cmds.CommandNames() {
			categories[CategoryCommands] = append(categories[CategoryCommands], modals.HelpShortcut{
				Key:  "/" + name,
				Desc: cmds[name].Description,
			})
		}
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// shortcutKeyForDisplay maps a help entry back to its registry key. Display-only
// entries and slash commands map to "".
func shortcutKeyForDisplay(display string) string {
	if display == helpShortcut.Key {
		return helpShortcut.Key
	}
	for _, s := range ShortcutRegistry {
		if s.DisplayKey == display || (s.DisplayKey == "" && s.Key == display) {
			return s.Key
		}
	}
	return ""
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleFocus()
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.EnterSearchMode()
}

func shortcutOpen(m *Model) (tea.Model, tea.Cmd) {
	id, _ := m.sidebar.SelectedID()
	return m, m.openConversation(id)
}

func shortcutNewChat(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewNewChatState(m.contactRegistry(), m.config))
	return m, nil
}

func shortcutLeave(m *Model) (tea.Model, tea.Cmd) {
	id, _ := m.sidebar.SelectedID()
	return m, m.leaveConversation(id)
}

func shortcutStatus(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewStatusState(m.server.OwnStatus()))
	return m, nil
}

func shortcutPreferences(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewPreferencesState(m.config.Preferences()))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	sections := m.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpStateFromSections(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m.requestQuit()
}
