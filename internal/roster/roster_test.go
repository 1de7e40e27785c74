package roster

import (
	"testing"

	"github.com/zhubert/parley/internal/im"
)

// fakeRegistry is an ordered in-memory Registry.
type fakeRegistry struct {
	order    []string
	entities map[string]Entity
}

func newFakeRegistry(entities ...Entity) *fakeRegistry {
	r := &fakeRegistry{entities: make(map[string]Entity)}
	for _, e := range entities {
		r.put(e)
	}
	return r
}

func (r *fakeRegistry) put(e Entity) {
	if _, ok := r.entities[e.ID]; !ok {
		r.order = append(r.order, e.ID)
	}
	r.entities[e.ID] = e
}

func (r *fakeRegistry) setStatus(id string, s im.Status) {
	e := r.entities[id]
	e.Status = s
	r.entities[id] = e
}

func (r *fakeRegistry) Lookup(id string) (Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

func (r *fakeRegistry) Entities() []Entity {
	out := make([]Entity, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// countingView wraps List and counts calls.
type countingView struct {
	*List
	sorts       int
	invalidates map[string]int
}

func newCountingView() *countingView {
	return &countingView{List: NewList(), invalidates: make(map[string]int)}
}

func (v *countingView) Sort() {
	v.sorts++
	v.List.Sort()
}

func (v *countingView) Invalidate(id string) {
	v.invalidates[id]++
	v.List.Invalidate(id)
}

type fakePrefs struct {
	hideOffline bool
	notify      bool
}

func (p *fakePrefs) GetHideOffline() bool         { return p.hideOffline }
func (p *fakePrefs) GetNotifyContactStatus() bool { return p.notify }

type notification struct{ title, body, icon string }

type fakeNotifier struct {
	sent []notification
}

func (n *fakeNotifier) Notify(title, body, icon string) {
	n.sent = append(n.sent, notification{title, body, icon})
}

type fixture struct {
	reg      *fakeRegistry
	view     *countingView
	prefs    *fakePrefs
	notifier *fakeNotifier
	sync     *Synchronizer
}

func newFixture(opts Options, prefs fakePrefs, entities ...Entity) *fixture {
	f := &fixture{
		reg:      newFakeRegistry(entities...),
		view:     newCountingView(),
		prefs:    &prefs,
		notifier: &fakeNotifier{},
	}
	f.sync = New(f.reg, f.view, f.prefs, f.notifier, opts)
	return f
}

func ids(l *List) []string {
	var out []string
	for _, e := range l.Entries() {
		out = append(out, e.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var contactOpts = Options{ApplyOfflineFilter: true, NotifyPresence: true}

func TestPopulate_HonorsHideOffline(t *testing.T) {
	entities := []Entity{
		{ID: "c", Name: "carol", Status: im.StatusOnline},
		{ID: "a", Name: "Alice", Status: im.StatusOffline},
		{ID: "b", Name: "bob", Status: im.StatusAway},
	}

	tests := []struct {
		name string
		hide bool
		want []string
	}{
		{"show offline", false, []string{"a", "b", "c"}},
		{"hide offline", true, []string{"b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(contactOpts, fakePrefs{hideOffline: tt.hide}, entities...)
			f.sync.Populate()
			if got := ids(f.view.List); !equal(got, tt.want) {
				t.Errorf("entries = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresenceChanged_OfflineToOnline(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{hideOffline: true, notify: true},
		Entity{ID: "alice", Name: "Alice", Status: im.StatusOffline, Icon: "/alice.png"})
	f.sync.Populate()

	if f.view.Len() != 0 {
		t.Fatalf("offline contact should be hidden, got %v", ids(f.view.List))
	}

	f.reg.setStatus("alice", im.StatusOnline)
	f.sync.PresenceChanged("alice", im.StatusOnline)

	if got := ids(f.view.List); !equal(got, []string{"alice"}) {
		t.Errorf("entries = %v, want [alice]", got)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(f.notifier.sent))
	}
	n := f.notifier.sent[0]
	if n.body != "Alice is now online" || n.icon != "/alice.png" {
		t.Errorf("notification = %+v", n)
	}
	if f.view.invalidates["alice"] == 0 {
		t.Error("entry should be invalidated")
	}
	if f.view.sorts == 0 {
		t.Error("view should be re-sorted")
	}
}

func TestPresenceChanged_OnlineToOffline(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{hideOffline: true, notify: true},
		Entity{ID: "alice", Name: "Alice", Status: im.StatusOnline})
	f.sync.Populate()

	f.reg.setStatus("alice", im.StatusOffline)
	f.sync.PresenceChanged("alice", im.StatusOffline)

	if f.view.Len() != 0 {
		t.Errorf("entries = %v, want none", ids(f.view.List))
	}
	if len(f.notifier.sent) != 0 {
		t.Errorf("notifications = %d, want 0", len(f.notifier.sent))
	}
}

func TestPresenceChanged_NotifiesOnlyOnComingOnline(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{notify: true},
		Entity{ID: "bob", Name: "Bob", Status: im.StatusOffline})
	f.sync.Populate()

	for _, s := range []im.Status{im.StatusOnline, im.StatusAway, im.StatusBusy, im.StatusOnline, im.StatusOffline, im.StatusAway} {
		f.sync.PresenceChanged("bob", s)
	}

	// offline->online and offline->away.
	if len(f.notifier.sent) != 2 {
		t.Errorf("notifications = %d, want 2", len(f.notifier.sent))
	}
}

func TestPresenceChanged_NotificationsDisabled(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		prefs fakePrefs
	}{
		{"preference off", contactOpts, fakePrefs{notify: false}},
		{"option off", Options{ApplyOfflineFilter: true}, fakePrefs{notify: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.opts, tt.prefs, Entity{ID: "bob", Name: "Bob"})
			f.sync.Populate()
			f.sync.PresenceChanged("bob", im.StatusOnline)
			if len(f.notifier.sent) != 0 {
				t.Errorf("notifications = %d, want 0", len(f.notifier.sent))
			}
		})
	}
}

func TestPresenceChanged_UnknownID(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{notify: true})
	f.sync.PresenceChanged("ghost", im.StatusOnline)

	if f.view.Len() != 0 || f.view.sorts != 0 || len(f.notifier.sent) != 0 {
		t.Error("unknown ids should be a no-op")
	}
}

func TestPresenceChanged_Idempotent(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{},
		Entity{ID: "bob", Name: "Bob", Status: im.StatusOnline})
	f.sync.Populate()

	f.sync.PresenceChanged("bob", im.StatusOnline)
	f.sync.PresenceChanged("bob", im.StatusAway)

	if got := ids(f.view.List); !equal(got, []string{"bob"}) {
		t.Errorf("entries = %v, want exactly one bob", got)
	}
	if f.view.At(0).Status != im.StatusAway {
		t.Errorf("status = %v, want away", f.view.At(0).Status)
	}
}

func TestDomainEvent_InvalidatesOnly(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{hideOffline: true},
		Entity{ID: "a", Name: "Alice", Status: im.StatusOnline},
		Entity{ID: "b", Name: "Bob", Status: im.StatusOffline})
	f.sync.Populate()
	f.view.invalidates = make(map[string]int)

	f.sync.DomainEvent("a", InfoUpdated)
	f.sync.DomainEvent("b", AvatarUpdated)
	f.sync.DomainEvent("ghost", ExtendedInfo)

	if f.view.invalidates["a"] != 1 {
		t.Errorf("a invalidated %d times, want 1", f.view.invalidates["a"])
	}
	if f.view.invalidates["b"] != 0 {
		t.Error("absent entries should not be touched")
	}
	if got := ids(f.view.List); !equal(got, []string{"a"}) {
		t.Errorf("entries = %v, want [a]", got)
	}
}

func TestDomainEvent_RenameKeepsOrder(t *testing.T) {
	f := newFixture(Options{}, fakePrefs{},
		Entity{ID: "a", Name: "Alice"},
		Entity{ID: "b", Name: "Bob"})
	f.sync.Populate()

	f.reg.put(Entity{ID: "a", Name: "Zed"})
	f.sync.DomainEvent("a", InfoUpdated)

	if got := ids(f.view.List); !equal(got, []string{"b", "a"}) {
		t.Errorf("entries = %v, want [b a]", got)
	}
}

func TestSearchFilterChanged(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{hideOffline: true},
		Entity{ID: "1", Name: "Alice", Status: im.StatusOnline},
		Entity{ID: "2", Name: "Malik", Status: im.StatusOnline},
		Entity{ID: "3", Name: "Bob", Status: im.StatusOnline},
		Entity{ID: "4", Name: "Alina", Status: im.StatusOffline})
	f.sync.Populate()

	f.sync.SearchFilterChanged("LI")
	// Alina matches but is still hidden as offline.
	if got := ids(f.view.List); !equal(got, []string{"1", "2"}) {
		t.Errorf("filtered entries = %v, want [1 2]", got)
	}

	f.sync.SearchFilterChanged("")
	if got := ids(f.view.List); !equal(got, []string{"1", "3", "2"}) {
		t.Errorf("restored entries = %v, want [1 3 2]", got)
	}

	// Restoring twice never duplicates.
	f.sync.SearchFilterChanged("")
	if f.view.Len() != 3 {
		t.Errorf("len = %d, want 3", f.view.Len())
	}
}

func TestSearchFilter_AppliesToLaterPresence(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{},
		Entity{ID: "1", Name: "Alice"},
		Entity{ID: "2", Name: "Bob"})
	f.sync.Populate()
	f.sync.SearchFilterChanged("ali")

	f.sync.PresenceChanged("2", im.StatusOnline)
	if f.view.Has("2") {
		t.Error("presence change should not bypass the search filter")
	}
}

func TestRefresh_AfterPreferenceChange(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{},
		Entity{ID: "1", Name: "Alice", Status: im.StatusOffline},
		Entity{ID: "2", Name: "Bob", Status: im.StatusOnline})
	f.sync.Populate()
	if f.view.Len() != 2 {
		t.Fatalf("len = %d, want 2", f.view.Len())
	}

	f.prefs.hideOffline = true
	f.sync.Refresh()
	if got := ids(f.view.List); !equal(got, []string{"2"}) {
		t.Errorf("entries = %v, want [2]", got)
	}
}

func TestConversationList_IgnoresOfflineFilter(t *testing.T) {
	f := newFixture(Options{}, fakePrefs{hideOffline: true, notify: true},
		Entity{ID: "c1", Name: "Room", Status: im.StatusOffline})
	f.sync.Populate()

	if !f.view.Has("c1") {
		t.Error("conversation lists show offline entries")
	}
	f.sync.PresenceChanged("c1", im.StatusOnline)
	if len(f.notifier.sent) != 0 {
		t.Error("conversation lists don't notify on presence")
	}
}

func TestMessageReceived_EnsuresEntry(t *testing.T) {
	f := newFixture(Options{}, fakePrefs{})

	f.sync.MessageReceived("c1")
	if f.view.Len() != 0 {
		t.Fatal("unknown conversation should be ignored")
	}

	f.reg.put(Entity{ID: "c1", Name: "Bob"})
	f.sync.MessageReceived("c1")
	f.sync.MessageReceived("c1")

	if got := ids(f.view.List); !equal(got, []string{"c1"}) {
		t.Errorf("entries = %v, want [c1]", got)
	}
	if f.view.invalidates["c1"] != 2 {
		t.Errorf("invalidated %d times, want 2", f.view.invalidates["c1"])
	}
}

func TestEntityAddedAndRemoved(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{notify: true})
	f.reg.put(Entity{ID: "x", Name: "Xavier", Status: im.StatusOnline})

	f.sync.EntityAdded("x")
	if !f.view.Has("x") {
		t.Fatal("added entity should be shown")
	}

	// Already online when added: staying online doesn't notify.
	f.sync.PresenceChanged("x", im.StatusOnline)
	if len(f.notifier.sent) != 0 {
		t.Errorf("notifications = %d, want 0", len(f.notifier.sent))
	}

	f.sync.EntityRemoved("x")
	f.sync.EntityRemoved("x")
	if f.view.Has("x") {
		t.Error("removed entity should be gone")
	}
}

func TestDispatch(t *testing.T) {
	f := newFixture(contactOpts, fakePrefs{hideOffline: true, notify: true},
		Entity{ID: "a", Name: "Alice"},
		Entity{ID: "b", Name: "Bob", Status: im.StatusOnline})
	f.sync.Populate()

	f.sync.Dispatch(Event{Kind: EventPresenceChanged, EntityID: "a", Status: im.StatusOnline})
	if !f.view.Has("a") || len(f.notifier.sent) != 1 {
		t.Error("presence event not dispatched")
	}

	f.sync.Dispatch(Event{Kind: EventSearchFilterChanged, Query: "bo"})
	if f.view.Has("a") || f.sync.Query() != "bo" {
		t.Error("search event not dispatched")
	}

	f.sync.Dispatch(Event{Kind: EventEntityRemoved, EntityID: "b"})
	if f.view.Has("b") {
		t.Error("remove event not dispatched")
	}

	f.sync.Dispatch(Event{Kind: EventSearchFilterChanged})
	f.sync.Dispatch(Event{Kind: EventRefresh})
	if got := ids(f.view.List); !equal(got, []string{"b"}) {
		// a's registry status is still offline, so a refresh hides it again.
		t.Errorf("entries = %v, want [b]", got)
	}
}

func TestContactAndConversationEvents(t *testing.T) {
	tests := []struct {
		name   string
		in     im.Event
		conv   bool
		want   EventKind
		wantID string
		wantOK bool
	}{
		{"contact presence", im.Event{Kind: im.EventPresenceChanged, ContactID: "a"}, false, EventPresenceChanged, "a", true},
		{"contact added", im.Event{Kind: im.EventContactAdded, ContactID: "a"}, false, EventEntityAdded, "a", true},
		{"contact avatar", im.Event{Kind: im.EventAvatarUpdated, ContactID: "a"}, false, EventAvatarUpdated, "a", true},
		{"contact ignores messages", im.Event{Kind: im.EventMessageReceived}, false, 0, "", false},
		{"chat created", im.Event{Kind: im.EventChatCreated, ConversationID: "c"}, true, EventEntityAdded, "c", true},
		{"chat left", im.Event{Kind: im.EventChatLeft, ConversationID: "c"}, true, EventEntityRemoved, "c", true},
		{"message", im.Event{Kind: im.EventMessageReceived, ConversationID: "c"}, true, EventMessageReceived, "c", true},
		{"conversation ignores errors", im.Event{Kind: im.EventError}, true, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Event
			var ok bool
			if tt.conv {
				got, ok = ConversationEvent(tt.in)
			} else {
				got, ok = ContactEvent(tt.in)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (got.Kind != tt.want || got.EntityID != tt.wantID) {
				t.Errorf("event = %+v, want kind %v id %q", got, tt.want, tt.wantID)
			}
		})
	}
}

// groupServer holds a lobby with alice and bob and a one-to-one chat with carol.
func groupServer() *im.Server {
	s := im.NewServer()
	for _, id := range []string{"alice", "bob", "carol"} {
		s.Apply(im.Event{Kind: im.EventContactAdded, ContactID: id, Name: id, Status: im.StatusOnline})
	}
	s.Apply(im.Event{Kind: im.EventChatCreated, ConversationID: "lobby", Name: "Lobby", Users: []string{"alice", "bob"}})
	s.Apply(im.Event{Kind: im.EventChatCreated, ConversationID: "carol", Users: []string{"carol"}})
	return s
}

func TestConversationEvents_GroupFollowsMemberPresence(t *testing.T) {
	s := groupServer()
	list := NewList()
	sync := New(ConversationRegistry{Source: s}, list, &fakePrefs{}, nil, Options{})
	sync.Populate()

	status := func(id string) im.Status {
		t.Helper()
		i := list.IndexOf(id)
		if i < 0 {
			t.Fatalf("%s missing from %v", id, ids(list))
		}
		return list.At(i).Status
	}

	if got := status("lobby"); got != im.StatusOnline {
		t.Fatalf("lobby status = %v, want online", got)
	}

	for _, id := range []string{"alice", "bob"} {
		e := im.Event{Kind: im.EventPresenceChanged, ContactID: id, Status: im.StatusOffline}
		s.Apply(e)
		for _, re := range ConversationEvents(e, s) {
			sync.Dispatch(re)
		}
	}

	conv, _ := s.ConversationByID("lobby")
	if got := status("lobby"); got != conv.Status() || got != im.StatusOffline {
		t.Errorf("lobby status = %v, domain status = %v, want offline", got, conv.Status())
	}
	if got := status("carol"); got != im.StatusOnline {
		t.Errorf("carol status = %v, a lobby change should not touch it", got)
	}
}

func TestConversationEvents_RedrawsOnlyMemberships(t *testing.T) {
	s := groupServer()

	tests := []struct {
		name string
		in   im.Event
		want []Event
	}{
		{
			"group member",
			im.Event{Kind: im.EventPresenceChanged, ContactID: "alice", Status: im.StatusAway},
			[]Event{
				{Kind: EventPresenceChanged, EntityID: "alice", Status: im.StatusAway},
				{Kind: EventInfoUpdated, EntityID: "lobby"},
			},
		},
		{
			"one-to-one peer",
			im.Event{Kind: im.EventPresenceChanged, ContactID: "carol", Status: im.StatusOffline},
			[]Event{{Kind: EventPresenceChanged, EntityID: "carol", Status: im.StatusOffline}},
		},
		{
			"not presence",
			im.Event{Kind: im.EventMessageReceived, ConversationID: "lobby"},
			[]Event{{Kind: EventMessageReceived, EntityID: "lobby"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConversationEvents(tt.in, s)
			if len(got) != len(tt.want) {
				t.Fatalf("events = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
