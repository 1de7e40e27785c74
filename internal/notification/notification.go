// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/zhubert/parley/internal/logger"
)

// AppName is used as the title of message notifications.
const AppName = "Parley"

// notifier is the function used to deliver notifications; tests swap it out.
var notifier = beeep.Notify

// SetNotifier replaces the notification function. Used by tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the default beeep notifier.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title, message and icon.
// An empty icon lets beeep pick the platform default.
func Send(title, message, icon string) error {
	logger.Debug("Notification: sending title=%q, message=%q", title, message)
	var iconArg any = icon
	err := notifier(title, message, iconArg)
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// Sink delivers notifications through Send and drops delivery errors.
// It satisfies the fire-and-forget notifier the roster synchronizer expects.
type Sink struct{}

// Notify implements roster.Notifier.
func (Sink) Notify(title, body, icon string) {
	_ = Send(title, body, icon)
}

// MessageReceived notifies about a message in a conversation that isn't focused.
func MessageReceived(conversation, sender, body string) error {
	title := AppName
	if conversation != "" {
		title = conversation
	}
	return Send(title, sender+": "+body, "")
}

// ProtocolError notifies about a protocol failure on an account.
func ProtocolError(account, detail string) error {
	return Send(account, detail, "")
}
