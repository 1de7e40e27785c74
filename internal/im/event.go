package im

// EventKind identifies what an Event carries.
type EventKind int

const (
	EventPresenceChanged EventKind = iota
	EventContactAdded
	EventContactRemoved
	EventInfoUpdated
	EventAvatarUpdated
	EventExtendedInfo
	EventMessageReceived
	EventMessageSent
	EventChatCreated
	EventChatLeft
	EventUserJoined
	EventOwnInfo
	EventOwnStatus
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventPresenceChanged:
		return "presence-changed"
	case EventContactAdded:
		return "contact-added"
	case EventContactRemoved:
		return "contact-removed"
	case EventInfoUpdated:
		return "info-updated"
	case EventAvatarUpdated:
		return "avatar-updated"
	case EventExtendedInfo:
		return "extended-info"
	case EventMessageReceived:
		return "message-received"
	case EventMessageSent:
		return "message-sent"
	case EventChatCreated:
		return "chat-created"
	case EventChatLeft:
		return "chat-left"
	case EventUserJoined:
		return "user-joined"
	case EventOwnInfo:
		return "own-info"
	case EventOwnStatus:
		return "own-status"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a typed notification from a protocol instance. Only the fields
// relevant to Kind are set; Instance is filled in by the Server.
type Event struct {
	Kind     EventKind
	Instance int64

	ContactID      string
	ConversationID string
	Name           string
	Status         Status
	StatusMessage  string
	AvatarPath     string

	// Users lists participant ids for EventChatCreated and EventUserJoined.
	Users   []string
	Message *Message

	Error  string
	Detail string
}

// Publisher receives events from a protocol instance. Implementations must be
// safe for concurrent use.
type Publisher interface {
	Publish(Event)
}
