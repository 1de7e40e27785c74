// Package loopback is an in-process protocol add-on. It serves a small
// seeded roster, echoes messages back from the peer and flips contact
// presence on a timer. It backs demo mode and end-to-end tests.
package loopback

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
)

// Signature is the protocol signature accounts use to select loopback.
const Signature = "loopback"

// LobbyID is the group conversation opened at login.
const LobbyID = "lobby"

// DefaultPresenceInterval is how often a contact's presence flips.
const DefaultPresenceInterval = 20 * time.Second

func init() {
	protocol.Register(Signature, func(acc config.Account) (im.Protocol, error) {
		return New(acc)
	})
}

type peer struct {
	id     string
	name   string
	status im.Status
}

// seedPeers is the roster every loopback account starts with.
var seedPeers = []peer{
	{"alice", "Alice", im.StatusOnline},
	{"bob", "Bob", im.StatusAway},
	{"bobby", "Bobby Tables", im.StatusOffline},
	{"carol", "Carol", im.StatusOnline},
	{"dave", "Dave", im.StatusOffline},
}

// Protocol is the loopback im.Protocol.
type Protocol struct {
	account  string
	interval time.Duration

	mu      sync.Mutex
	nick    string
	peers   []peer
	chats   map[string]bool
	flipped int

	actions chan func(im.Publisher)
}

// New creates a loopback protocol. Recognized settings: "nick" (own name),
// "presence-interval" (Go duration, "0" disables flipping).
func New(acc config.Account) (*Protocol, error) {
	p := &Protocol{
		account:  acc.Name,
		interval: DefaultPresenceInterval,
		nick:     "me",
		peers:    append([]peer(nil), seedPeers...),
		chats:    make(map[string]bool),
		actions:  make(chan func(im.Publisher), 64),
	}

	if nick := acc.Settings["nick"]; nick != "" {
		p.nick = nick
	}
	if v := acc.Settings["presence-interval"]; v != "" {
		if v == "0" {
			p.interval = 0
		} else {
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("invalid presence-interval %q: %w", v, err)
			}
			p.interval = d
		}
	}
	return p, nil
}

func (p *Protocol) Signature() string    { return Signature }
func (p *Protocol) FriendlyName() string { return "Loopback" }

// Run publishes the seeded state and then serves queued actions until ctx ends.
func (p *Protocol) Run(ctx context.Context, pub im.Publisher) error {
	log := logger.WithComponent("loopback")
	log.Info("login", "account", p.account)

	p.mu.Lock()
	nick := p.nick
	peers := append([]peer(nil), p.peers...)
	p.chats[LobbyID] = true
	p.mu.Unlock()

	pub.Publish(im.Event{Kind: im.EventOwnInfo, Name: nick})
	pub.Publish(im.Event{Kind: im.EventOwnStatus, Status: im.StatusOnline})
	// Contacts arrive with their presence so logging in is not a transition
	for _, pr := range peers {
		pub.Publish(im.Event{Kind: im.EventContactAdded, ContactID: pr.id, Name: pr.name, Status: pr.status})
	}

	lobbyUsers := make([]string, 0, len(peers))
	for _, pr := range peers {
		lobbyUsers = append(lobbyUsers, pr.id)
	}
	pub.Publish(im.Event{Kind: im.EventChatCreated, ConversationID: LobbyID, Name: "Lobby", Users: lobbyUsers})

	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("logout", "account", p.account)
			return nil
		case action := <-p.actions:
			action(pub)
		case <-tick:
			id, status := p.flip()
			log.Debug("presence flip", "contact", id, "status", status)
			pub.Publish(im.Event{Kind: im.EventPresenceChanged, ContactID: id, Status: status})
		}
	}
}

// flip toggles the next peer between offline and online, round robin.
func (p *Protocol) flip() (string, im.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pr := &p.peers[p.flipped%len(p.peers)]
	p.flipped++
	if pr.status.IsOnline() {
		pr.status = im.StatusOffline
	} else {
		pr.status = im.StatusOnline
	}
	return pr.id, pr.status
}

// enqueue hands an action to Run.
func (p *Protocol) enqueue(action func(im.Publisher)) error {
	select {
	case p.actions <- action:
		return nil
	default:
		return fmt.Errorf("loopback %s: action queue full", p.account)
	}
}

func (p *Protocol) peerName(id string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pr := range p.peers {
		if pr.id == id {
			return pr.name, true
		}
	}
	return "", false
}

func (p *Protocol) ownNick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nick
}

// SendMessage publishes the message as sent and echoes it back from the peer.
// In the lobby the echo comes from alice.
func (p *Protocol) SendMessage(conversationID, body string) error {
	p.mu.Lock()
	open := p.chats[conversationID]
	p.mu.Unlock()
	if !open {
		return fmt.Errorf("loopback %s: no chat %s", p.account, conversationID)
	}

	from := conversationID
	if conversationID == LobbyID {
		from = "alice"
	}
	nick := p.ownNick()

	return p.enqueue(func(pub im.Publisher) {
		pub.Publish(im.Event{
			Kind:           im.EventMessageSent,
			ConversationID: conversationID,
			Message:        &im.Message{Sender: nick, Body: body},
		})
		pub.Publish(im.Event{
			Kind:           im.EventMessageReceived,
			ConversationID: conversationID,
			Message:        &im.Message{Sender: from, Body: body},
		})
	})
}

// SetStatus changes the own status.
func (p *Protocol) SetStatus(status im.Status) error {
	return p.enqueue(func(pub im.Publisher) {
		pub.Publish(im.Event{Kind: im.EventOwnStatus, Status: status})
	})
}

// CreateChat opens a one-to-one chat whose id is the contact id.
func (p *Protocol) CreateChat(contactID string) error {
	name, ok := p.peerName(contactID)
	if !ok {
		return fmt.Errorf("loopback %s: unknown contact %s", p.account, contactID)
	}

	p.mu.Lock()
	p.chats[contactID] = true
	p.mu.Unlock()

	return p.enqueue(func(pub im.Publisher) {
		pub.Publish(im.Event{Kind: im.EventChatCreated, ConversationID: contactID, Name: name, Users: []string{contactID}})
	})
}

// LeaveChat closes a chat.
func (p *Protocol) LeaveChat(conversationID string) error {
	p.mu.Lock()
	delete(p.chats, conversationID)
	p.mu.Unlock()

	return p.enqueue(func(pub im.Publisher) {
		pub.Publish(im.Event{Kind: im.EventChatLeft, ConversationID: conversationID})
	})
}

// Commands returns the loopback slash commands.
func (p *Protocol) Commands() im.CommandMap {
	return im.CommandMap{
		"help":   {Name: "help", Description: "list commands", Handler: p.cmdHelp},
		"hello":  {Name: "hello", Description: "have the peer say hello", Handler: p.cmdHello},
		"me":     {Name: "me", Description: "send an action", Handler: p.cmdMe},
		"nick":   {Name: "nick", Description: "change your name", Handler: p.cmdNick},
		"status": {Name: "status", Description: "set status: online, away, busy, offline", Handler: p.cmdStatus},
	}
}

// system posts a notice from the protocol into a conversation.
func (p *Protocol) system(conversationID, body string) error {
	return p.enqueue(func(pub im.Publisher) {
		pub.Publish(im.Event{
			Kind:           im.EventMessageReceived,
			ConversationID: conversationID,
			Message:        &im.Message{Sender: Signature, Body: body},
		})
	})
}

func (p *Protocol) cmdHelp(conversationID, _ string) error {
	cmds := p.Commands()
	var b strings.Builder
	b.WriteString("Commands:")
	for _, name := range cmds.CommandNames() {
		fmt.Fprintf(&b, "\n  /%s  %s", name, cmds[name].Description)
	}
	return p.system(conversationID, b.String())
}

func (p *Protocol) cmdHello(conversationID, _ string) error {
	from := conversationID
	if conversationID == LobbyID {
		from = "alice"
	}
	return p.enqueue(func(pub im.Publisher) {
		pub.Publish(im.Event{
			Kind:           im.EventMessageReceived,
			ConversationID: conversationID,
			Message:        &im.Message{Sender: from, Body: "Hello!"},
		})
	})
}

func (p *Protocol) cmdMe(conversationID, args string) error {
	return p.SendMessage(conversationID, "* "+p.ownNick()+" "+args)
}

func (p *Protocol) cmdNick(conversationID, args string) error {
	nick := strings.TrimSpace(args)
	if nick == "" {
		return p.system(conversationID, "usage: /nick <name>")
	}
	p.mu.Lock()
	p.nick = nick
	p.mu.Unlock()
	return p.enqueue(func(pub im.Publisher) {
		pub.Publish(im.Event{Kind: im.EventOwnInfo, Name: nick})
	})
}

func (p *Protocol) cmdStatus(conversationID, args string) error {
	status, ok := im.ParseStatus(args)
	if !ok {
		return p.system(conversationID, "usage: /status online|away|busy|offline")
	}
	return p.SetStatus(status)
}

// Account returns a ready-to-use loopback account for demo mode.
func Account() config.Account {
	return config.Account{
		Name:     "demo",
		Protocol: Signature,
		Settings: map[string]string{"presence-interval": "15s"},
	}
}
