package im

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

// DefaultQueueSize is the capacity of the server's event queue.
const DefaultQueueSize = 256

// Instance is a running protocol add-on bound to one account.
type Instance struct {
	ID       int64
	Account  string
	Protocol Protocol
	Status   Status
	OwnName  string
}

// Server owns the protocol instances and the domain state they report.
//
// Protocol goroutines only ever publish into the event queue. The queue has a
// single consumer, which calls Apply; everything else reads the state.
type Server struct {
	mu            sync.RWMutex
	instances     map[int64]*Instance
	nextInstance  int64
	contacts      map[string]*Contact
	conversations map[string]*Conversation

	events chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a server with an empty state.
func NewServer() *Server {
	return &Server{
		instances:     make(map[int64]*Instance),
		nextInstance:  1,
		contacts:      make(map[string]*Contact),
		conversations: make(map[string]*Conversation),
		events:        make(chan Event, DefaultQueueSize),
	}
}

// AddInstance registers a protocol for an account and returns its instance id.
func (s *Server) AddInstance(account string, p Protocol) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextInstance
	s.nextInstance++
	s.instances[id] = &Instance{ID: id, Account: account, Protocol: p}
	logger.WithComponent("im").Info("added instance", "instance", id, "account", account, "protocol", p.Signature())
	return id
}

// Instances returns the registered instances ordered by id.
func (s *Server) Instances() []*Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Instance returns the instance with the given id.
func (s *Server) Instance(id int64) (*Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.instances[id]
	if !ok {
		return nil, perrors.InstanceNotFound(id)
	}
	return inst, nil
}

// Events returns the single-consumer event queue.
func (s *Server) Events() <-chan Event {
	return s.events
}

// publisher tags events with their instance and blocks until the queue
// accepts them or the server shuts down.
type publisher struct {
	ctx      context.Context
	instance int64
	events   chan<- Event
}

func (p publisher) Publish(e Event) {
	e.Instance = p.instance
	select {
	case p.events <- e:
	case <-p.ctx.Done():
	}
}

// LoginAll starts every registered protocol on its own goroutine.
func (s *Server) LoginAll(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, inst := range s.Instances() {
		s.wg.Add(1)
		go func(inst *Instance) {
			defer s.wg.Done()
			log := logger.WithComponent("im")
			pub := publisher{ctx: ctx, instance: inst.ID, events: s.events}

			log.Debug("protocol starting", "instance", inst.ID, "account", inst.Account)
			err := inst.Protocol.Run(ctx, pub)
			if err != nil && ctx.Err() == nil {
				err = perrors.ProtocolFailed(inst.Protocol.Signature(), err)
				log.Error("protocol stopped", "instance", inst.ID, "error", err)
				pub.Publish(Event{Kind: EventError, Error: inst.Account + " disconnected", Detail: err.Error()})
			}
		}(inst)
	}
}

// Quit stops every protocol and waits for them to return.
func (s *Server) Quit() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Apply folds an event into the domain state. It must only be called by the
// queue's consumer.
func (s *Server) Apply(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Kind {
	case EventContactAdded:
		s.contacts[e.ContactID] = &Contact{
			ID:            e.ContactID,
			Name:          e.Name,
			Status:        e.Status,
			StatusMessage: e.StatusMessage,
			AvatarPath:    e.AvatarPath,
			Instance:      e.Instance,
		}

	case EventContactRemoved:
		delete(s.contacts, e.ContactID)

	case EventPresenceChanged:
		if c, ok := s.contacts[e.ContactID]; ok {
			c.Status = e.Status
			if e.StatusMessage != "" {
				c.StatusMessage = e.StatusMessage
			}
		}
		for _, conv := range s.conversations {
			if u, ok := conv.Users[e.ContactID]; ok {
				u.Status = e.Status
			}
		}

	case EventInfoUpdated:
		if c, ok := s.contacts[e.ContactID]; ok {
			if e.Name != "" {
				c.Name = e.Name
			}
			c.StatusMessage = e.StatusMessage
		}

	case EventAvatarUpdated:
		if c, ok := s.contacts[e.ContactID]; ok {
			c.AvatarPath = e.AvatarPath
		}

	case EventExtendedInfo:
		if c, ok := s.contacts[e.ContactID]; ok && e.StatusMessage != "" {
			c.StatusMessage = e.StatusMessage
		}

	case EventChatCreated:
		conv := s.ensureConversation(e.ConversationID, e.Name, e.Instance)
		s.addUsers(conv, e.Users)

	case EventUserJoined:
		if conv, ok := s.conversations[e.ConversationID]; ok {
			s.addUsers(conv, e.Users)
		}

	case EventChatLeft:
		delete(s.conversations, e.ConversationID)

	case EventMessageReceived, EventMessageSent:
		if e.Message == nil {
			return
		}
		msg := *e.Message
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		if msg.Time.IsZero() {
			msg.Time = time.Now()
		}
		msg.ConversationID = e.ConversationID
		msg.Own = e.Kind == EventMessageSent

		conv := s.ensureConversation(e.ConversationID, e.Name, e.Instance)
		if !msg.Own {
			s.addUsers(conv, []string{msg.Sender})
			conv.Unread++
		}
		conv.Messages = append(conv.Messages, msg)

	case EventOwnStatus:
		if inst, ok := s.instances[e.Instance]; ok {
			inst.Status = e.Status
		}

	case EventOwnInfo:
		if inst, ok := s.instances[e.Instance]; ok && e.Name != "" {
			inst.OwnName = e.Name
		}
	}
}

// ensureConversation must be called with mu held.
func (s *Server) ensureConversation(id, name string, instance int64) *Conversation {
	conv, ok := s.conversations[id]
	if !ok {
		if name == "" {
			if c, ok := s.contacts[id]; ok {
				name = c.DisplayName()
			}
		}
		conv = NewConversation(id, name, instance)
		s.conversations[id] = conv
		logger.WithConversation(id).Debug("conversation created", "name", name)
	} else if name != "" && conv.Name == "" {
		conv.Name = name
	}
	return conv
}

// addUsers must be called with mu held.
func (s *Server) addUsers(conv *Conversation, ids []string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := conv.Users[id]; ok {
			continue
		}
		u := &User{ID: id, Name: id}
		if c, ok := s.contacts[id]; ok {
			u.Name = c.DisplayName()
			u.Status = c.Status
		}
		conv.Users[id] = u
	}
}

// Send sends text to a conversation. Text starting with "/" runs the named
// command from the instance's command map; unknown commands are passed to the
// protocol as plain text.
func (s *Server) Send(conversationID, text string) error {
	conv, inst, err := s.conversationInstance(conversationID)
	if err != nil {
		return err
	}

	if strings.HasPrefix(text, "/") {
		name, args, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
		if cmd, ok := inst.Protocol.Commands()[name]; ok {
			logger.WithConversation(conv.ID).Debug("running command", "command", name)
			return cmd.Handler(conv.ID, args)
		}
	}
	return inst.Protocol.SendMessage(conv.ID, text)
}

// RunCommand runs a named command in a conversation.
func (s *Server) RunCommand(conversationID, name, args string) error {
	_, inst, err := s.conversationInstance(conversationID)
	if err != nil {
		return err
	}
	cmd, ok := inst.Protocol.Commands()[name]
	if !ok {
		return perrors.CommandUnknown(name)
	}
	return cmd.Handler(conversationID, args)
}

func (s *Server) conversationInstance(conversationID string) (*Conversation, *Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, nil, perrors.ConversationNotFound(conversationID)
	}
	inst, ok := s.instances[conv.Instance]
	if !ok {
		return nil, nil, perrors.InstanceNotFound(conv.Instance)
	}
	return conv, inst, nil
}

// CreateChat asks the contact's protocol to open a chat with it. The
// conversation appears once the protocol reports EventChatCreated.
func (s *Server) CreateChat(contactID string) error {
	s.mu.RLock()
	c, ok := s.contacts[contactID]
	var inst *Instance
	if ok {
		inst = s.instances[c.Instance]
	}
	s.mu.RUnlock()

	if !ok {
		return perrors.ContactNotFound(contactID)
	}
	if inst == nil {
		return perrors.InstanceNotFound(c.Instance)
	}
	return inst.Protocol.CreateChat(contactID)
}

// LeaveChat asks the conversation's protocol to leave it.
func (s *Server) LeaveChat(conversationID string) error {
	conv, inst, err := s.conversationInstance(conversationID)
	if err != nil {
		return err
	}
	return inst.Protocol.LeaveChat(conv.ID)
}

// SetStatus sets the own status on every instance. The first error is
// returned after every instance has been tried.
func (s *Server) SetStatus(status Status) error {
	var first error
	for _, inst := range s.Instances() {
		if err := inst.Protocol.SetStatus(status); err != nil {
			logger.WithComponent("im").Warn("set status failed", "instance", inst.ID, "error", err)
			if first == nil {
				first = perrors.ProtocolFailed(inst.Protocol.Signature(), err)
			}
		}
	}
	return first
}

// OwnStatus returns the most available status across instances.
func (s *Server) OwnStatus() Status {
	status := StatusOffline
	for _, inst := range s.Instances() {
		if inst.Status == StatusOnline {
			return StatusOnline
		}
		if inst.Status.IsOnline() {
			status = inst.Status
		}
	}
	return status
}

// Commands returns the command map of an instance; nil if it is unknown.
func (s *Server) Commands(instance int64) CommandMap {
	s.mu.RLock()
	inst, ok := s.instances[instance]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return inst.Protocol.Commands()
}

// ConversationByID returns a conversation.
func (s *Server) ConversationByID(id string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	return conv, ok
}

// ContactByID returns a contact.
func (s *Server) ContactByID(id string) (*Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[id]
	return c, ok
}

// Contacts returns every contact ordered by id.
func (s *Server) Contacts() []*Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Conversations returns every conversation ordered by id.
func (s *Server) Conversations() []*Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MarkRead clears a conversation's unread counter.
func (s *Server) MarkRead(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.conversations[conversationID]; ok {
		conv.Unread = 0
	}
}
