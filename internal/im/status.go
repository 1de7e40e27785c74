package im

import "strings"

// Status is the presence of a contact or of the user's own account.
type Status int

const (
	StatusOffline Status = iota
	StatusOnline
	StatusAway
	StatusBusy
)

var statusNames = []string{"offline", "online", "away", "busy"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "offline"
	}
	return statusNames[s]
}

// IsOnline reports whether the status is anything other than offline.
func (s Status) IsOnline() bool {
	return s != StatusOffline
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(name string) (Status, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range statusNames {
		if n == name {
			return Status(i), true
		}
	}
	return StatusOffline, false
}

// Statuses returns every status a user can choose for their own account.
func Statuses() []Status {
	return []Status{StatusOnline, StatusAway, StatusBusy, StatusOffline}
}
