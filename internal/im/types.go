// Package im holds parley's domain model: contacts, conversations, the
// protocol add-on contract and the Server that ties them together.
package im

import (
	"sort"
	"time"
)

// Contact is a roster entry on one protocol instance.
type Contact struct {
	ID            string
	Name          string
	Status        Status
	StatusMessage string
	AvatarPath    string
	Instance      int64
}

// DisplayName returns the name, falling back to the id.
func (c *Contact) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// User is a participant in a conversation.
type User struct {
	ID     string
	Name   string
	Status Status
}

// Message is one chat message.
type Message struct {
	ID             string
	ConversationID string
	Sender         string
	Body           string
	Time           time.Time
	Own            bool
}

// Conversation is a chat on one protocol instance.
type Conversation struct {
	ID       string
	Name     string
	Instance int64
	Users    map[string]*User
	Messages []Message
	Unread   int
}

// NewConversation creates an empty conversation.
func NewConversation(id, name string, instance int64) *Conversation {
	return &Conversation{
		ID:       id,
		Name:     name,
		Instance: instance,
		Users:    make(map[string]*User),
	}
}

// DisplayName returns the name, falling back to the id.
func (c *Conversation) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// UserNames returns the conversation's user names in ascending order.
func (c *Conversation) UserNames() []string {
	names := make([]string, 0, len(c.Users))
	for name := range c.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status derives a presence for the conversation from its users: online if
// anyone other than the local user is online.
func (c *Conversation) Status() Status {
	best := StatusOffline
	for _, u := range c.Users {
		if u.Status == StatusOnline {
			return StatusOnline
		}
		if u.Status.IsOnline() {
			best = u.Status
		}
	}
	return best
}

// CommandHandler runs a slash command. args is the text after the command name.
type CommandHandler func(conversationID, args string) error

// Command is a slash command exposed by a protocol.
type Command struct {
	Name        string
	Description string
	Handler     CommandHandler
}

// CommandMap maps command names (without the slash) to commands.
type CommandMap map[string]Command

// CommandNames returns the command names in ascending order.
func (m CommandMap) CommandNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
