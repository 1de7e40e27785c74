package config

import (
	"fmt"

	perrors "github.com/zhubert/parley/internal/errors"
)

// Preference describes one boolean preference for display and editing.
type Preference struct {
	Key   string // Stable key used by the CLI and the preferences modal
	Label string // Human-readable label
	Value bool
}

type preferenceDef struct {
	key   string
	label string
	get   func(*Config) bool
	set   func(*Config, bool)
}

var preferenceDefs = []preferenceDef{
	{"hide-offline", "Hide offline contacts", (*Config).GetHideOffline, (*Config).SetHideOffline},
	{"notify-contact-status", "Notify when contacts come online", (*Config).GetNotifyContactStatus, (*Config).SetNotifyContactStatus},
	{"notify-new-message", "Notify on new messages", (*Config).GetNotifyNewMessage, (*Config).SetNotifyNewMessage},
	{"notify-protocols", "Notify on protocol errors", (*Config).GetNotifyProtocols, (*Config).SetNotifyProtocols},
	{"ignore-emoticons", "Don't replace emoticons", (*Config).GetIgnoreEmoticons, (*Config).SetIgnoreEmoticons},
	{"disable-quit-confirm", "Quit without confirmation", (*Config).GetDisableQuitConfirm, (*Config).SetDisableQuitConfirm},
	{"mark-unread", "Show unread counters", (*Config).GetMarkUnread, (*Config).SetMarkUnread},
}

// Preferences returns the current value of every boolean preference, in display order.
func (c *Config) Preferences() []Preference {
	prefs := make([]Preference, len(preferenceDefs))
	for i, def := range preferenceDefs {
		prefs[i] = Preference{Key: def.key, Label: def.label, Value: def.get(c)}
	}
	return prefs
}

// SetPreference sets a boolean preference by key.
func (c *Config) SetPreference(key string, value bool) error {
	for _, def := range preferenceDefs {
		if def.key == key {
			def.set(c, value)
			return nil
		}
	}
	return perrors.ConfigInvalid(fmt.Sprintf("unknown preference %q", key))
}

// ApplyPreferences sets every known preference from a key set; keys not in
// enabled are turned off.
func (c *Config) ApplyPreferences(enabled []string) {
	on := make(map[string]bool, len(enabled))
	for _, key := range enabled {
		on[key] = true
	}
	for _, def := range preferenceDefs {
		def.set(c, on[def.key])
	}
}
