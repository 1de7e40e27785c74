package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/roster"
	"github.com/zhubert/parley/internal/ui/modals"
)

// EventMsg carries one event from the server's queue into Update
type EventMsg struct {
	Event im.Event
}

// eventsClosedMsg is sent when the server's queue has been closed
type eventsClosedMsg struct{}

// listenForEvents creates a command that waits for the next protocol event.
// Update re-arms it after every event, so the queue has a single consumer.
func (m *Model) listenForEvents() tea.Cmd {
	ch := m.server.Events()
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg{Event: e}
	}
}

// handleEvent folds an event into the domain state, then into the roster
// lists, then into the panels
func (m *Model) handleEvent(e im.Event) tea.Cmd {
	log := logger.WithComponent("app")
	log.Debug("event", "kind", e.Kind.String(), "instance", e.Instance,
		"contact", e.ContactID, "conversation", e.ConversationID)

	m.server.Apply(e)

	isMessage := e.Kind == im.EventMessageReceived || e.Kind == im.EventMessageSent
	if isMessage && e.ConversationID == m.activeID {
		m.server.MarkRead(e.ConversationID)
	}

	for _, re := range roster.ConversationEvents(e, m.server) {
		m.conversationSync.Dispatch(re)
	}
	if re, ok := roster.ContactEvent(e); ok {
		m.contactSync.Dispatch(re)
		if s, open := m.modal.State.(*modals.NewChatState); open {
			s.Synchronizer().Dispatch(re)
			s.Refresh()
		}
	}
	m.sidebar.Sync()
	if changed := m.conversations.TakeInvalidated(); len(changed) > 0 {
		log.Debug("conversations redrawn", "count", len(changed))
	}
	m.contacts.TakeInvalidated()

	switch e.Kind {
	case im.EventMessageReceived, im.EventMessageSent:
		return m.handleMessage(e)

	case im.EventChatCreated:
		if m.pendingOpen != "" && isChatWith(e, m.pendingOpen) {
			return m.openConversation(e.ConversationID)
		}

	case im.EventChatLeft:
		if e.ConversationID == m.activeID {
			m.closeConversation()
		}

	case im.EventUserJoined:
		if e.ConversationID == m.activeID {
			m.refreshActive()
		}

	case im.EventOwnStatus:
		m.header.SetOwnStatus(m.server.OwnStatus())

	case im.EventError:
		return m.handleProtocolError(e)
	}
	return nil
}

// isChatWith reports whether a created chat is the one-to-one chat with contactID
func isChatWith(e im.Event, contactID string) bool {
	if e.ConversationID == contactID {
		return true
	}
	return len(e.Users) == 1 && e.Users[0] == contactID
}

// handleMessage shows a message in the open conversation, or notifies about it
func (m *Model) handleMessage(e im.Event) tea.Cmd {
	if e.Message == nil {
		return nil
	}

	conv, ok := m.server.ConversationByID(e.ConversationID)
	if !ok {
		return nil
	}

	if e.ConversationID == m.activeID {
		// Apply stamped the id and time on the stored copy
		if n := len(conv.Messages); n > 0 {
			m.chat.AppendMessage(conv.Messages[n-1])
		}
		return nil
	}

	if e.Kind == im.EventMessageReceived && m.config.GetNotifyNewMessage() {
		_ = notification.MessageReceived(conv.DisplayName(), e.Message.Sender, e.Message.Body)
	}
	return nil
}

// refreshActive redraws the open conversation's name. The send box already
// completes against the live conversation, so a join keeps a tab cycle going.
func (m *Model) refreshActive() {
	conv, ok := m.server.ConversationByID(m.activeID)
	if !ok {
		return
	}
	m.header.SetConversation(conv.DisplayName())
}

// handleProtocolError reports a protocol failure in the error modal, or as a
// flash when another modal is open
func (m *Model) handleProtocolError(e im.Event) tea.Cmd {
	account := e.Error
	if inst, err := m.server.Instance(e.Instance); err == nil {
		account = inst.Account
	}
	logger.WithComponent("app").Error("protocol error", "account", account, "error", e.Error, "detail", e.Detail)

	if m.config.GetNotifyProtocols() {
		_ = notification.ProtocolError(account, e.Error)
	}

	if m.modal.IsVisible() {
		return m.ShowFlashError(e.Error)
	}
	m.modal.Show(modals.NewErrorState(e.Error, e.Detail))
	return nil
}
