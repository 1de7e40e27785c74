package im

import "context"

// Protocol is an IM protocol add-on serving one account.
//
// Run blocks until ctx is cancelled or the protocol fails, publishing events
// as they happen. The remaining methods may be called from any goroutine
// while Run is active.
type Protocol interface {
	Signature() string
	FriendlyName() string
	Run(ctx context.Context, pub Publisher) error
	Commands() CommandMap
	SendMessage(conversationID, body string) error
	SetStatus(status Status) error
	CreateChat(contactID string) error
	LeaveChat(conversationID string) error
}
