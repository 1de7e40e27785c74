// Package roster keeps a displayed list of contacts or conversations in sync
// with presence, message and search events.
//
// A Synchronizer never owns the entities it shows. It reads them from a
// Registry and maintains their projections in a ListView, so the same code
// drives both the conversation list and the new-chat contact roster.
package roster

import (
	"log/slog"
	"strings"

	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/logger"
)

// Entity is the displayable projection of a contact or conversation.
type Entity struct {
	ID     string
	Name   string
	Status im.Status
	Icon   string // Avatar path used for notifications, may be empty
	Unread int
}

// Registry resolves entity ids to their current projection.
type Registry interface {
	Lookup(id string) (Entity, bool)
	Entities() []Entity
}

// ListView is the displayed list. Add and Remove are idempotent.
type ListView interface {
	Has(id string) bool
	Add(e Entity)
	Remove(id string)
	Invalidate(id string)
	Sort()
}

// Preferences exposes the flags the synchronizer reads.
type Preferences interface {
	GetHideOffline() bool
	GetNotifyContactStatus() bool
}

// Notifier delivers user-visible alerts. Delivery is fire-and-forget.
type Notifier interface {
	Notify(title, body, icon string)
}

// Options selects which behaviors apply to a list.
type Options struct {
	// ApplyOfflineFilter hides offline entities when the hide-offline
	// preference is set.
	ApplyOfflineFilter bool
	// NotifyPresence emits a notification when an entity comes online and
	// the notify-contact-status preference is set.
	NotifyPresence bool
}

// DomainEventKind is an entity update that only needs a redraw.
type DomainEventKind int

const (
	InfoUpdated DomainEventKind = iota
	AvatarUpdated
	ExtendedInfo
)

// Synchronizer applies events to a ListView. It is not safe for concurrent
// use; events must be delivered from a single goroutine.
type Synchronizer struct {
	registry Registry
	view     ListView
	prefs    Preferences
	notifier Notifier
	opts     Options

	query      string
	lastStatus map[string]im.Status
	log        *slog.Logger
}

// New creates a synchronizer. notifier may be nil when opts.NotifyPresence is off.
func New(registry Registry, view ListView, prefs Preferences, notifier Notifier, opts Options) *Synchronizer {
	return &Synchronizer{
		registry:   registry,
		view:       view,
		prefs:      prefs,
		notifier:   notifier,
		opts:       opts,
		lastStatus: make(map[string]im.Status),
		log:        logger.WithComponent("roster"),
	}
}

// Query returns the current search filter.
func (s *Synchronizer) Query() string {
	return s.query
}

// visible is the single predicate deciding whether an entity is shown.
func (s *Synchronizer) visible(e Entity) bool {
	if s.opts.ApplyOfflineFilter && s.prefs.GetHideOffline() && !e.Status.IsOnline() {
		return false
	}
	if s.query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), strings.ToLower(s.query))
}

// apply adds or removes e according to the predicate and reports whether it
// ended up in the view.
func (s *Synchronizer) apply(e Entity) bool {
	if s.visible(e) {
		s.view.Add(e)
		return true
	}
	s.view.Remove(e.ID)
	return false
}

// PresenceChanged updates an entity's presence. Unknown ids are ignored.
func (s *Synchronizer) PresenceChanged(id string, status im.Status) {
	e, ok := s.registry.Lookup(id)
	if !ok {
		s.log.Debug("presence for unknown entity", "id", id)
		return
	}
	e.Status = status

	prev, known := s.lastStatus[id]
	s.lastStatus[id] = status

	s.apply(e)
	s.view.Sort()
	s.view.Invalidate(id)

	cameOnline := status.IsOnline() && (!known || !prev.IsOnline())
	if cameOnline && s.opts.NotifyPresence && s.notifier != nil && s.prefs.GetNotifyContactStatus() {
		s.notifier.Notify("Contact status", e.Name+" is now online", e.Icon)
	}
	s.log.Debug("presence changed", "id", id, "status", status, "visible", s.view.Has(id))
}

// DomainEvent redraws an entity after an info, avatar or extended-info
// update. It never adds or removes entries.
func (s *Synchronizer) DomainEvent(id string, kind DomainEventKind) {
	if !s.view.Has(id) {
		return
	}
	if e, ok := s.registry.Lookup(id); ok {
		s.view.Add(e)
		s.view.Sort()
	}
	s.view.Invalidate(id)
}

// MessageReceived makes sure the conversation an inbound message belongs to
// has an entry and redraws it.
func (s *Synchronizer) MessageReceived(id string) {
	e, ok := s.registry.Lookup(id)
	if !ok {
		return
	}
	if s.apply(e) {
		s.view.Sort()
		s.view.Invalidate(id)
	}
}

// EntityAdded shows a newly known entity if the predicate allows it.
func (s *Synchronizer) EntityAdded(id string) {
	e, ok := s.registry.Lookup(id)
	if !ok {
		return
	}
	s.lastStatus[id] = e.Status
	if s.apply(e) {
		s.view.Sort()
		s.view.Invalidate(id)
	}
}

// EntityRemoved drops the entry of an entity that went away (conversation
// left, contact removed).
func (s *Synchronizer) EntityRemoved(id string) {
	delete(s.lastStatus, id)
	s.view.Remove(id)
}

// SearchFilterChanged filters the view to entities whose name contains query,
// case-insensitively. An empty query restores every entity that passes the
// offline filter. Every entry left in the view is redrawn.
func (s *Synchronizer) SearchFilterChanged(query string) {
	s.query = query
	s.reapply()
}

// Refresh re-applies the predicate to every entity, e.g. after the
// hide-offline preference changed.
func (s *Synchronizer) Refresh() {
	s.reapply()
}

// Populate seeds the view and the known presence of every entity.
func (s *Synchronizer) Populate() {
	for _, e := range s.registry.Entities() {
		s.lastStatus[e.ID] = e.Status
	}
	s.reapply()
}

func (s *Synchronizer) reapply() {
	for _, e := range s.registry.Entities() {
		if s.apply(e) {
			s.view.Invalidate(e.ID)
		}
	}
	s.view.Sort()
}
