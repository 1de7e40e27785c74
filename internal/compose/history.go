// Package compose holds the send box's editing state: the history of sent
// messages and tab completion of commands and user names.
//
// Nothing here is safe for concurrent use; the owning view drives it from
// its update loop.
package compose

// HistorySize is the number of sent messages kept for browsing.
const HistorySize = 20

// History is a bounded list of sent messages, most recent first, with a
// browse cursor. Cursor 0 means "not browsing"; 1..Len() is the position
// counted from the most recent entry.
type History struct {
	entries []string
	cursor  int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Record pushes text to the front, evicting the oldest entry beyond
// HistorySize, and stops browsing. Empty text is recorded too.
func (h *History) Record(text string) {
	h.cursor = 0
	h.entries = append([]string{text}, h.entries...)
	if len(h.entries) > HistorySize {
		h.entries = h.entries[:HistorySize]
	}
}

// Previous moves one entry back in time and returns it. When not browsing,
// non-empty current text is recorded first so it can be returned to; the
// first call then yields that same text. Past the oldest entry the cursor
// saturates and the oldest entry keeps being returned. Returns false only
// when the history is empty.
func (h *History) Previous(current string) (string, bool) {
	if h.cursor == 0 && current != "" {
		h.Record(current)
	}
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	return h.entries[h.cursor-1], true
}

// Next moves one entry forward in time and returns it. At the most recent
// entry (cursor 1) or when not browsing it returns false and leaves the
// cursor alone; browsing never returns to an empty input.
func (h *History) Next() (string, bool) {
	if h.cursor <= 1 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the browse position, 0 when not browsing.
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
