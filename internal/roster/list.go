package roster

import (
	"sort"
	"strings"
)

// List is the in-memory ListView used by the TUI: a sorted projection of
// entities with no duplicate ids and a set of entries awaiting redraw.
type List struct {
	entries     []Entity
	invalidated map[string]bool
}

// NewList creates an empty list.
func NewList() *List {
	return &List{invalidated: make(map[string]bool)}
}

// less orders entries by case-insensitive name, then id.
func less(a, b Entity) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return a.ID < b.ID
}

// Has reports whether an entry with id is present.
func (l *List) Has(id string) bool {
	return l.IndexOf(id) >= 0
}

// IndexOf returns the position of id, or -1.
func (l *List) IndexOf(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Add inserts e at its sorted position. If an entry with the same id is
// already present its projection is refreshed in place instead.
func (l *List) Add(e Entity) {
	if i := l.IndexOf(e.ID); i >= 0 {
		l.entries[i] = e
		return
	}
	i := sort.Search(len(l.entries), func(i int) bool { return less(e, l.entries[i]) })
	l.entries = append(l.entries, Entity{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = e
}

// Remove deletes the entry with id if present.
func (l *List) Remove(id string) {
	i := l.IndexOf(id)
	if i < 0 {
		return
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	delete(l.invalidated, id)
}

// Invalidate marks a present entry for redraw.
func (l *List) Invalidate(id string) {
	if l.Has(id) {
		l.invalidated[id] = true
	}
}

// Sort restores the display order after projections changed.
func (l *List) Sort() {
	sort.SliceStable(l.entries, func(i, j int) bool { return less(l.entries[i], l.entries[j]) })
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// At returns the entry at position i.
func (l *List) At(i int) Entity {
	return l.entries[i]
}

// Entries returns a copy of the entries in display order.
func (l *List) Entries() []Entity {
	out := make([]Entity, len(l.entries))
	copy(out, l.entries)
	return out
}

// TakeInvalidated returns and clears the ids marked for redraw, sorted.
func (l *List) TakeInvalidated() []string {
	ids := make([]string, 0, len(l.invalidated))
	for id := range l.invalidated {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	l.invalidated = make(map[string]bool)
	return ids
}
