package app

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/protocol/loopback"
	"github.com/zhubert/parley/internal/ui"
	"github.com/zhubert/parley/internal/ui/modals"
)

func TestNew_PopulatesFromLogin(t *testing.T) {
	m := testModel(t, testConfig(t))

	if m.sidebar.Len() != 1 {
		t.Fatalf("sidebar lists %d conversations, want 1", m.sidebar.Len())
	}
	if id, _ := m.sidebar.SelectedID(); id != loopback.LobbyID {
		t.Errorf("selected = %q, want %q", id, loopback.LobbyID)
	}
	if m.contacts.Len() != 5 {
		t.Errorf("contact roster has %d entries, want 5", m.contacts.Len())
	}
	if m.focus != FocusSidebar {
		t.Error("sidebar should start focused")
	}
}

func TestNew_HideOfflineFiltersContacts(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetHideOffline(true)
	m := testModel(t, cfg)

	// alice and carol arrive online, bob away
	var names []string
	for _, e := range m.contacts.Entries() {
		names = append(names, e.ID)
	}
	if got := strings.Join(names, ","); got != "alice,bob,carol" {
		t.Errorf("visible contacts = %s, want alice,bob,carol", got)
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := New(testConfig(t), im.NewServer(), "test")
	if got := m.render(); got != "Loading..." {
		t.Errorf("render() = %q, want Loading...", got)
	}
}

func TestView_ShowsHeaderAndConversation(t *testing.T) {
	m := testModel(t, testConfig(t))
	out := ansi.Strip(m.render())

	if !strings.Contains(out, "parley") {
		t.Error("header missing app name")
	}
	if !strings.Contains(out, "Lobby") {
		t.Error("sidebar missing the lobby")
	}
}

func TestOpenConversation_FocusesChat(t *testing.T) {
	m := testModel(t, testConfig(t))

	m = sendKey(m, keys.Enter)

	if m.activeID != loopback.LobbyID {
		t.Fatalf("activeID = %q, want %q", m.activeID, loopback.LobbyID)
	}
	if m.focus != FocusChat || !m.chat.IsFocused() {
		t.Error("chat should be focused after opening")
	}
	if m.chat.ConversationID() != loopback.LobbyID {
		t.Errorf("chat shows %q", m.chat.ConversationID())
	}

	m = sendKey(m, keys.Escape)
	if m.focus != FocusSidebar {
		t.Error("esc should return to the conversation list")
	}
	if m.activeID != loopback.LobbyID {
		t.Error("esc should keep the conversation open")
	}
}

func TestToggleFocus_NeedsConversation(t *testing.T) {
	m := testModel(t, testConfig(t))

	m = sendKey(m, keys.ShiftTab)
	if m.focus != FocusSidebar {
		t.Error("shift+tab without a conversation should keep the sidebar focused")
	}

	m = sendKey(m, keys.Enter)
	m = sendKey(m, keys.ShiftTab)
	if m.focus != FocusSidebar {
		t.Error("shift+tab from chat should focus the sidebar")
	}
	m = sendKey(m, keys.ShiftTab)
	if m.focus != FocusChat {
		t.Error("shift+tab from the sidebar should focus the open chat")
	}
}

func TestSend_EchoAppearsInChat(t *testing.T) {
	m := testModel(t, testConfig(t))
	m = sendKey(m, keys.Enter)

	m = typeText(m, "hi there")
	cmd := sendKeyCmd(m, keys.Enter)
	if cmd == nil {
		t.Fatal("enter in the send box should produce a send command")
	}
	msg, ok := cmd().(ui.SendMsg)
	if !ok || msg.Text != "hi there" {
		t.Fatalf("send command produced %#v", msg)
	}
	m.Update(msg)

	pumpUntil(t, m, messageIn(loopback.LobbyID))

	conv, _ := m.server.ConversationByID(loopback.LobbyID)
	if conv.Unread != 0 {
		t.Errorf("unread = %d in the open conversation, want 0", conv.Unread)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("lobby has %d messages, want 2", len(conv.Messages))
	}
	if !strings.Contains(ansi.Strip(m.chat.View()), "hi there") {
		t.Error("chat view should show the sent message")
	}
	if got := m.chat.SendBox().Value(); got != "" {
		t.Errorf("send box = %q after sending, want empty", got)
	}
}

func TestSend_SlashCommandRunsProtocolCommand(t *testing.T) {
	m := testModel(t, testConfig(t))
	m = sendKey(m, keys.Enter)

	m.Update(ui.SendMsg{Text: "/hello"})
	e := pumpUntil(t, m, messageIn(loopback.LobbyID))

	if e.Message.Body != "Hello!" {
		t.Errorf("body = %q, want Hello!", e.Message.Body)
	}
}

func TestSend_HistoryRecallsSentText(t *testing.T) {
	m := testModel(t, testConfig(t))
	m = sendKey(m, keys.Enter)

	m = typeText(m, "first")
	sendKey(m, keys.Enter)

	m = sendKey(m, keys.Up)
	if got := m.chat.SendBox().Value(); got != "first" {
		t.Errorf("up recalled %q, want first", got)
	}
}

func TestMessage_BackgroundConversationNotifies(t *testing.T) {
	got := captureNotifications(t)
	m := testModel(t, testConfig(t))
	*got = nil

	if err := m.server.Send(loopback.LobbyID, "ping"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	pumpUntil(t, m, messageIn(loopback.LobbyID))

	conv, _ := m.server.ConversationByID(loopback.LobbyID)
	if conv.Unread != 1 {
		t.Errorf("unread = %d, want 1", conv.Unread)
	}
	if len(*got) != 1 {
		t.Fatalf("got %d notifications, want 1: %v", len(*got), *got)
	}
	if n := (*got)[0]; n.title != "Lobby" || n.body != "alice: ping" {
		t.Errorf("notification = %+v", n)
	}
}

func TestMessage_NotificationDisabled(t *testing.T) {
	got := captureNotifications(t)
	cfg := testConfig(t)
	cfg.SetNotifyNewMessage(false)
	m := testModel(t, cfg)
	*got = nil

	_ = m.server.Send(loopback.LobbyID, "ping")
	pumpUntil(t, m, messageIn(loopback.LobbyID))

	if len(*got) != 0 {
		t.Errorf("got %d notifications with notify-new-message off", len(*got))
	}
}

func TestPresence_LoginIsQuiet(t *testing.T) {
	got := captureNotifications(t)
	cfg := testConfig(t)
	cfg.SetNotifyContactStatus(true)
	testModel(t, cfg)

	if len(*got) != 0 {
		t.Errorf("login should not notify, got %v", *got)
	}
}

func TestPresence_ComingOnlineNotifies(t *testing.T) {
	tests := []struct {
		name   string
		notify bool
		want   int
	}{
		{"enabled", true, 1},
		{"disabled", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captureNotifications(t)
			cfg := testConfig(t)
			cfg.SetNotifyContactStatus(tt.notify)
			m := testModel(t, cfg)

			m.Update(EventMsg{Event: im.Event{Kind: im.EventPresenceChanged, Instance: 1, ContactID: "dave", Status: im.StatusOnline}})

			if len(*got) != tt.want {
				t.Fatalf("got %d notifications, want %d: %v", len(*got), tt.want, *got)
			}
			if tt.want > 0 && (*got)[0].body != "Dave is now online" {
				t.Errorf("notification = %+v", (*got)[0])
			}
		})
	}
}

func TestPresence_LobbyFollowsMembers(t *testing.T) {
	m := testModel(t, testConfig(t))

	for _, id := range []string{"alice", "bob", "carol"} {
		m.Update(EventMsg{Event: im.Event{Kind: im.EventPresenceChanged, Instance: 1, ContactID: id, Status: im.StatusOffline}})
	}

	i := m.conversations.IndexOf(loopback.LobbyID)
	if i < 0 {
		t.Fatal("lobby missing from the sidebar")
	}
	if got := m.conversations.At(i).Status; got != im.StatusOffline {
		t.Errorf("lobby status = %v with every member offline", got)
	}
}

func TestNewChat_CreatesAndOpensConversation(t *testing.T) {
	m := testModel(t, testConfig(t))

	m = sendKey(m, "n")
	if !modalIs[*modals.NewChatState](m) {
		t.Fatal("n should open the new chat modal")
	}

	m = typeText(m, "car")
	m = sendKey(m, keys.Enter)

	if m.modal.IsVisible() {
		t.Error("modal should close after picking a contact")
	}
	if m.pendingOpen != "carol" {
		t.Fatalf("pendingOpen = %q, want carol", m.pendingOpen)
	}

	pumpUntil(t, m, func(e im.Event) bool { return e.Kind == im.EventChatCreated && e.ConversationID == "carol" })

	if m.activeID != "carol" {
		t.Errorf("activeID = %q, want carol", m.activeID)
	}
	if m.focus != FocusChat {
		t.Error("the new chat should take focus")
	}
	if m.sidebar.Len() != 2 {
		t.Errorf("sidebar lists %d conversations, want 2", m.sidebar.Len())
	}
	if m.pendingOpen != "" {
		t.Error("pendingOpen should be cleared")
	}
}

func TestNewChat_CtrlNFromChat(t *testing.T) {
	m := testModel(t, testConfig(t))
	m = sendKey(m, keys.Enter)

	m = sendKey(m, "n")
	if m.modal.IsVisible() {
		t.Fatal("n in the chat should type, not open the modal")
	}
	m = sendKey(m, keys.CtrlN)
	if !modalIs[*modals.NewChatState](m) {
		t.Error("ctrl+n should open the new chat modal from the chat")
	}
	m = sendKey(m, keys.Escape)
	if m.modal.IsVisible() {
		t.Error("esc should close the modal")
	}
}

func TestNewChat_FollowsPresenceWhileOpen(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetHideOffline(true)
	m := testModel(t, cfg)

	m = sendKey(m, "n")
	state := m.modal.State.(*modals.NewChatState)
	if _, ok := state.GetSelectedContact(); !ok {
		t.Fatal("expected online contacts in the modal")
	}

	m.Update(EventMsg{Event: im.Event{Kind: im.EventPresenceChanged, Instance: 1, ContactID: "dave", Status: im.StatusOnline}})

	// alice, bob, carol, dave
	for i := 0; i < 3; i++ {
		m = sendKey(m, keys.Down)
	}
	if id, ok := state.GetSelectedContact(); !ok || id != "dave" {
		t.Errorf("selected = %q, %v; want dave once online", id, ok)
	}
}

func TestLeaveConversation_ClearsChat(t *testing.T) {
	m := testModel(t, testConfig(t))
	m = sendKey(m, keys.Enter)
	m = sendKey(m, keys.Escape)

	m = sendKey(m, "x")
	pumpUntil(t, m, func(e im.Event) bool { return e.Kind == im.EventChatLeft })

	if m.activeID != "" {
		t.Errorf("activeID = %q after leaving", m.activeID)
	}
	if m.chat.HasConversation() {
		t.Error("chat should be cleared")
	}
	if m.sidebar.Len() != 0 {
		t.Errorf("sidebar lists %d conversations, want 0", m.sidebar.Len())
	}
}

func TestSearch_FiltersConversations(t *testing.T) {
	m := testModel(t, testConfig(t))

	m = sendKey(m, "/")
	if !m.sidebar.IsSearchMode() {
		t.Fatal("/ should enter search mode")
	}

	// q is a shortcut outside search mode
	m = typeText(m, "zq")
	if m.sidebar.Len() != 0 {
		t.Errorf("sidebar lists %d for zq, want 0", m.sidebar.Len())
	}
	if m.modal.IsVisible() {
		t.Error("typing in search should not trigger shortcuts")
	}
	if got := m.sidebar.GetSearchQuery(); got != "zq" {
		t.Errorf("search query = %q, want zq", got)
	}

	m = sendKey(m, keys.Escape)
	if m.sidebar.IsSearchMode() || m.sidebar.Len() != 1 {
		t.Errorf("esc should clear the search, got %d entries", m.sidebar.Len())
	}
}

func TestProtocolError_ShowsModalAndNotifies(t *testing.T) {
	got := captureNotifications(t)
	m := testModel(t, testConfig(t))
	*got = nil

	m.Update(EventMsg{Event: im.Event{Kind: im.EventError, Instance: 1, Error: "connection lost", Detail: "eof"}})

	state, ok := m.modal.State.(*modals.ErrorState)
	if !ok {
		t.Fatal("protocol error should open the error modal")
	}
	if state.Message != "connection lost" || state.Detail != "eof" {
		t.Errorf("error modal = %+v", state)
	}
	if len(*got) != 1 || (*got)[0].title != "test" {
		t.Errorf("notifications = %v, want one titled with the account", *got)
	}

	m = sendKey(m, keys.Enter)
	if m.modal.IsVisible() {
		t.Error("enter should dismiss the error modal")
	}
}

func TestProtocolError_FlashesWhenModalOpen(t *testing.T) {
	m := testModel(t, testConfig(t))
	m = sendKey(m, "?")

	m.Update(EventMsg{Event: im.Event{Kind: im.EventError, Instance: 1, Error: "connection lost"}})

	if !modalIs[*modals.HelpState](m) {
		t.Error("an open modal should not be replaced")
	}
	if !m.footer.HasFlash() {
		t.Error("error should be flashed")
	}
}

func TestStatusModal_AppliesAndSaves(t *testing.T) {
	cfg := testConfig(t)
	m := testModel(t, cfg)

	m = sendKey(m, "s")
	if !modalIs[*modals.StatusState](m) {
		t.Fatal("s should open the status modal")
	}
	m = sendKey(m, keys.Enter)

	if m.modal.IsVisible() {
		t.Error("enter should close the status modal")
	}
	if cfg.GetOwnStatus() != "online" {
		t.Errorf("saved own status = %q, want online", cfg.GetOwnStatus())
	}
	if _, err := os.Stat(cfg.Path()); err != nil {
		t.Errorf("config not saved: %v", err)
	}
	pumpUntil(t, m, func(e im.Event) bool { return e.Kind == im.EventOwnStatus })
}

func TestPreferencesModal_SaveRefreshesRoster(t *testing.T) {
	cfg := testConfig(t)
	m := testModel(t, cfg)

	prefs := cfg.Preferences()
	for i := range prefs {
		if prefs[i].Key == "hide-offline" {
			prefs[i].Value = true
		}
	}
	m.modal.Show(modals.NewPreferencesState(prefs))
	m = sendKey(m, keys.Enter)

	if !cfg.GetHideOffline() {
		t.Fatal("hide-offline should be saved")
	}
	if m.contacts.Len() != 3 {
		t.Errorf("contact roster has %d entries after hiding offline, want 3", m.contacts.Len())
	}
	if _, err := os.Stat(cfg.Path()); err != nil {
		t.Errorf("config not saved: %v", err)
	}
	if !m.footer.HasFlash() {
		t.Error("saving should flash a confirmation")
	}
}

func TestPreferencesModal_EscapeDiscards(t *testing.T) {
	cfg := testConfig(t)
	m := testModel(t, cfg)

	m = sendKey(m, ",")
	if !modalIs[*modals.PreferencesState](m) {
		t.Fatal(", should open preferences")
	}
	m = sendKey(m, keys.Escape)

	if m.modal.IsVisible() {
		t.Error("esc should close preferences")
	}
	if _, err := os.Stat(cfg.Path()); !os.IsNotExist(err) {
		t.Error("esc should not save")
	}
}

func TestQuit(t *testing.T) {
	t.Run("asks first", func(t *testing.T) {
		m := testModel(t, testConfig(t))

		cmd := sendKeyCmd(m, "q")
		if isQuit(cmd) {
			t.Fatal("q should ask before quitting")
		}
		if !modalIs[*modals.ConfirmQuitState](m) {
			t.Fatal("q should open the quit confirmation")
		}

		m = sendKey(m, "n")
		if m.modal.IsVisible() {
			t.Error("n should dismiss the confirmation")
		}

		sendKey(m, "q")
		if !isQuit(sendKeyCmd(m, "y")) {
			t.Error("y should quit")
		}
	})

	t.Run("confirmation disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.SetDisableQuitConfirm(true)
		m := testModel(t, cfg)

		if !isQuit(sendKeyCmd(m, "q")) {
			t.Error("q should quit immediately")
		}
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		m := testModel(t, testConfig(t))
		sendKey(m, "?")

		if !isQuit(sendKeyCmd(m, keys.CtrlC)) {
			t.Error("ctrl+c should quit with a modal open")
		}
	})
}
