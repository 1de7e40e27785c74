package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/compose"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/roster"
	"github.com/zhubert/parley/internal/ui"
	"github.com/zhubert/parley/internal/ui/modals"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	server  *im.Server
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	// The conversation list shown in the sidebar
	conversations    *roster.List
	conversationSync *roster.Synchronizer

	// The contact roster; it is not displayed but drives presence notifications
	contacts    *roster.List
	contactSync *roster.Synchronizer

	width  int
	height int
	focus  Focus

	activeID    string // Conversation shown in the chat panel
	pendingOpen string // Contact whose chat should open once the protocol creates it
}

// New creates a new app model over a server whose protocols are already logged in
func New(cfg *config.Config, server *im.Server, version string) *Model {
	// Styles are captured when components are built
	ui.SetThemeByName(cfg.GetTheme())

	conversations := roster.NewList()
	conversationSync := roster.New(
		roster.ConversationRegistry{Source: server},
		conversations,
		cfg,
		nil,
		roster.Options{},
	)

	contacts := roster.NewList()
	contactSync := roster.New(
		roster.ContactRegistry{Source: server},
		contacts,
		cfg,
		notification.Sink{},
		roster.Options{ApplyOfflineFilter: true, NotifyPresence: true},
	)

	m := &Model{
		config:           cfg,
		server:           server,
		version:          version,
		header:           ui.NewHeader(),
		footer:           ui.NewFooter(),
		sidebar:          ui.NewSidebar(conversations, conversationSync),
		chat:             ui.NewChat(),
		modal:            ui.NewModal(),
		conversations:    conversations,
		conversationSync: conversationSync,
		contacts:         contacts,
		contactSync:      contactSync,
		focus:            FocusSidebar,
	}

	conversationSync.Populate()
	contactSync.Populate()
	m.sidebar.Sync()
	m.sidebar.SetFocused(true)
	m.applyPreferences()
	m.header.SetOwnStatus(server.OwnStatus())

	return m
}

// Init starts listening for protocol events and restores the saved own status
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenForEvents()}
	if name := m.config.GetOwnStatus(); name != "" {
		if status, ok := im.ParseStatus(name); ok {
			cmds = append(cmds, m.setOwnStatus(status))
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case ui.SendMsg:
		return m, m.sendMessage(msg.Text)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case EventMsg:
		cmd := m.handleEvent(msg.Event)
		return m, tea.Batch(cmd, m.listenForEvents())

	case eventsClosedMsg:
		logger.WithComponent("app").Info("event queue closed")
		return m, nil
	}

	// Cursor blinks and other component messages
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}
	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return m, cmd
}

// handleKey routes a key press: modal first, then shortcuts, then the focused panel
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if result, cmd, ok := m.ExecuteShortcut(key); ok {
		return result, cmd
	}

	if m.focus == FocusChat {
		if key == keys.Escape {
			m.setFocus(FocusSidebar)
			return m, nil
		}
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd
	}

	sidebar, cmd := m.sidebar.Update(msg)
	m.sidebar = sidebar
	return m, cmd
}

// setFocus moves keyboard focus between the sidebar and the chat panel
func (m *Model) setFocus(focus Focus) tea.Cmd {
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	return m.chat.SetFocused(focus == FocusChat)
}

// toggleFocus switches panels; the chat panel only takes focus with a conversation open
func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusChat {
		return m.setFocus(FocusSidebar)
	}
	if !m.chat.HasConversation() {
		return nil
	}
	return m.setFocus(FocusChat)
}

// openConversation shows a conversation in the chat panel and focuses it
func (m *Model) openConversation(id string) tea.Cmd {
	conv, ok := m.server.ConversationByID(id)
	if !ok {
		return m.ShowFlashError("Conversation is gone")
	}

	log := logger.WithConversation(id)
	log.Debug("opening conversation", "name", conv.DisplayName())

	m.server.MarkRead(id)
	m.conversationSync.DomainEvent(id, roster.InfoUpdated)

	messages := append([]im.Message(nil), conv.Messages...)
	m.chat.SetConversation(id, messages, m.chatCommands(conv), conv)

	m.activeID = id
	m.pendingOpen = ""
	m.header.SetConversation(conv.DisplayName())
	m.sidebar.SetActive(id)
	m.sidebar.Sync()
	m.sidebar.Select(id)
	return m.setFocus(FocusChat)
}

// chatCommands returns the slash commands of a conversation's protocol, nil
// when it has none. A nil map would still be a non-nil interface.
func (m *Model) chatCommands(conv *im.Conversation) compose.CommandSet {
	if cmds := m.server.Commands(conv.Instance); len(cmds) > 0 {
		return cmds
	}
	return nil
}

// contactRegistry projects the server's contacts for roster lists
func (m *Model) contactRegistry() roster.ContactRegistry {
	return roster.ContactRegistry{Source: m.server}
}

// closeConversation clears the chat panel
func (m *Model) closeConversation() {
	m.activeID = ""
	m.chat.ClearConversation()
	m.header.SetConversation("")
	m.sidebar.SetActive("")
	m.setFocus(FocusSidebar)
}

// leaveConversation asks the protocol to leave a conversation. The chat
// panel is cleared once the protocol confirms.
func (m *Model) leaveConversation(id string) tea.Cmd {
	if err := m.server.LeaveChat(id); err != nil {
		logger.WithConversation(id).Warn("leave failed", "error", err)
		return m.ShowFlashError("Could not leave conversation: " + err.Error())
	}
	return nil
}

// startChat opens the conversation with a contact, asking the protocol to
// create it first when it doesn't exist yet
func (m *Model) startChat(contactID string) tea.Cmd {
	if _, ok := m.server.ConversationByID(contactID); ok {
		return m.openConversation(contactID)
	}
	if err := m.server.CreateChat(contactID); err != nil {
		logger.WithComponent("app").Warn("create chat failed", "contact", contactID, "error", err)
		return m.ShowFlashError("Could not start chat: " + err.Error())
	}
	m.pendingOpen = contactID
	return nil
}

// sendMessage hands the send box text to the active conversation's protocol.
// Blank text stays in the send history but is not sent.
func (m *Model) sendMessage(text string) tea.Cmd {
	if m.activeID == "" || strings.TrimSpace(text) == "" {
		return nil
	}
	if err := m.server.Send(m.activeID, text); err != nil {
		logger.WithConversation(m.activeID).Warn("send failed", "error", err)
		return m.ShowFlashError("Send failed: " + err.Error())
	}
	return nil
}

// setOwnStatus applies a status to every account
func (m *Model) setOwnStatus(status im.Status) tea.Cmd {
	if err := m.server.SetStatus(status); err != nil {
		return m.ShowFlashError("Could not set status: " + err.Error())
	}
	return nil
}

// applyPreferences pushes preference values into the components and
// re-evaluates roster visibility
func (m *Model) applyPreferences() {
	m.sidebar.SetShowUnread(m.config.GetMarkUnread())
	m.chat.SetIgnoreEmoticons(m.config.GetIgnoreEmoticons())
	m.conversationSync.Refresh()
	m.contactSync.Refresh()
	m.sidebar.Sync()
}

// saveConfigOrFlash saves the config and returns a flash command on failure
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Error("failed to save config", "error", err)
		return m.ShowFlashError("Failed to save preferences")
	}
	return nil
}

// requestQuit quits, asking first unless the user disabled confirmation
func (m *Model) requestQuit() (tea.Model, tea.Cmd) {
	if m.config.GetDisableQuitConfirm() {
		return m, tea.Quit
	}
	m.modal.Show(modals.NewConfirmQuitState(len(m.server.Instances())))
	return m, nil
}
