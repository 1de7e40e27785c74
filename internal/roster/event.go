package roster

import "github.com/zhubert/parley/internal/im"

// EventKind selects the operation an Event is dispatched to.
type EventKind int

const (
	EventPresenceChanged EventKind = iota
	EventInfoUpdated
	EventAvatarUpdated
	EventExtendedInfo
	EventMessageReceived
	EventEntityAdded
	EventEntityRemoved
	EventSearchFilterChanged
	EventRefresh
)

// Event is a typed input to a Synchronizer.
type Event struct {
	Kind     EventKind
	EntityID string
	Status   im.Status
	Query    string
}

// Dispatch routes an event to the matching operation.
func (s *Synchronizer) Dispatch(e Event) {
	switch e.Kind {
	case EventPresenceChanged:
		s.PresenceChanged(e.EntityID, e.Status)
	case EventInfoUpdated:
		s.DomainEvent(e.EntityID, InfoUpdated)
	case EventAvatarUpdated:
		s.DomainEvent(e.EntityID, AvatarUpdated)
	case EventExtendedInfo:
		s.DomainEvent(e.EntityID, ExtendedInfo)
	case EventMessageReceived:
		s.MessageReceived(e.EntityID)
	case EventEntityAdded:
		s.EntityAdded(e.EntityID)
	case EventEntityRemoved:
		s.EntityRemoved(e.EntityID)
	case EventSearchFilterChanged:
		s.SearchFilterChanged(e.Query)
	case EventRefresh:
		s.Refresh()
	}
}

// ContactEvent translates a domain event into the roster event for a contact
// list. ok is false when the event doesn't concern contacts.
func ContactEvent(e im.Event) (Event, bool) {
	switch e.Kind {
	case im.EventPresenceChanged:
		return Event{Kind: EventPresenceChanged, EntityID: e.ContactID, Status: e.Status}, true
	case im.EventContactAdded:
		return Event{Kind: EventEntityAdded, EntityID: e.ContactID}, true
	case im.EventContactRemoved:
		return Event{Kind: EventEntityRemoved, EntityID: e.ContactID}, true
	case im.EventInfoUpdated:
		return Event{Kind: EventInfoUpdated, EntityID: e.ContactID}, true
	case im.EventAvatarUpdated:
		return Event{Kind: EventAvatarUpdated, EntityID: e.ContactID}, true
	case im.EventExtendedInfo:
		return Event{Kind: EventExtendedInfo, EntityID: e.ContactID}, true
	}
	return Event{}, false
}

// ConversationEvents is ConversationEvent plus a redraw of every group
// conversation with the contact of a presence change among its users, since
// a group's status is derived from its members.
func ConversationEvents(e im.Event, source ConversationSource) []Event {
	var out []Event
	if re, ok := ConversationEvent(e); ok {
		out = append(out, re)
	}
	if e.Kind != im.EventPresenceChanged || source == nil {
		return out
	}
	for _, conv := range source.Conversations() {
		if conv.ID == e.ContactID {
			continue
		}
		if _, member := conv.Users[e.ContactID]; member {
			out = append(out, Event{Kind: EventInfoUpdated, EntityID: conv.ID})
		}
	}
	return out
}

// ConversationEvent translates a domain event into the roster event for a
// conversation list. Presence of a one-to-one peer is reported against the
// conversation with the same id.
func ConversationEvent(e im.Event) (Event, bool) {
	switch e.Kind {
	case im.EventChatCreated:
		return Event{Kind: EventEntityAdded, EntityID: e.ConversationID}, true
	case im.EventChatLeft:
		return Event{Kind: EventEntityRemoved, EntityID: e.ConversationID}, true
	case im.EventMessageReceived, im.EventMessageSent:
		return Event{Kind: EventMessageReceived, EntityID: e.ConversationID}, true
	case im.EventUserJoined:
		return Event{Kind: EventInfoUpdated, EntityID: e.ConversationID}, true
	case im.EventPresenceChanged:
		return Event{Kind: EventPresenceChanged, EntityID: e.ContactID, Status: e.Status}, true
	case im.EventInfoUpdated:
		return Event{Kind: EventInfoUpdated, EntityID: e.ContactID}, true
	}
	return Event{}, false
}
