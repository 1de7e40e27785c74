package roster

import "github.com/zhubert/parley/internal/im"

// ContactSource is the part of the IM server a contact registry reads.
type ContactSource interface {
	ContactByID(id string) (*im.Contact, bool)
	Contacts() []*im.Contact
}

// ConversationSource is the part of the IM server a conversation registry reads.
type ConversationSource interface {
	ConversationByID(id string) (*im.Conversation, bool)
	Conversations() []*im.Conversation
}

// ContactRegistry projects the server's contacts.
type ContactRegistry struct {
	Source ContactSource
}

func contactEntity(c *im.Contact) Entity {
	return Entity{ID: c.ID, Name: c.DisplayName(), Status: c.Status, Icon: c.AvatarPath}
}

// Lookup implements Registry.
func (r ContactRegistry) Lookup(id string) (Entity, bool) {
	c, ok := r.Source.ContactByID(id)
	if !ok {
		return Entity{}, false
	}
	return contactEntity(c), true
}

// Entities implements Registry.
func (r ContactRegistry) Entities() []Entity {
	contacts := r.Source.Contacts()
	out := make([]Entity, len(contacts))
	for i, c := range contacts {
		out[i] = contactEntity(c)
	}
	return out
}

// ConversationRegistry projects the server's conversations.
type ConversationRegistry struct {
	Source ConversationSource
}

func conversationEntity(c *im.Conversation) Entity {
	return Entity{ID: c.ID, Name: c.DisplayName(), Status: c.Status(), Unread: c.Unread}
}

// Lookup implements Registry.
func (r ConversationRegistry) Lookup(id string) (Entity, bool) {
	c, ok := r.Source.ConversationByID(id)
	if !ok {
		return Entity{}, false
	}
	return conversationEntity(c), true
}

// Entities implements Registry.
func (r ConversationRegistry) Entities() []Entity {
	convs := r.Source.Conversations()
	out := make([]Entity, len(convs))
	for i, c := range convs {
		out[i] = conversationEntity(c)
	}
	return out
}
