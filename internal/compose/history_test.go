package compose

import (
	"fmt"
	"testing"
)

func TestHistory_RecordBounded(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 50; i++ {
		text := fmt.Sprintf("msg %d", i)
		h.Record(text)

		if h.Len() > HistorySize {
			t.Fatalf("history grew to %d entries", h.Len())
		}
		if h.Entries()[0] != text {
			t.Fatalf("front = %q, want %q", h.Entries()[0], text)
		}
	}

	entries := h.Entries()
	if len(entries) != HistorySize {
		t.Fatalf("len = %d, want %d", len(entries), HistorySize)
	}
	if entries[HistorySize-1] != "msg 30" {
		t.Errorf("oldest = %q, want msg 30", entries[HistorySize-1])
	}
}

func TestHistory_RecordResetsCursor(t *testing.T) {
	h := NewHistory()
	h.Record("a")
	h.Record("b")
	h.Previous("")
	if h.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", h.Cursor())
	}
	h.Record("c")
	if h.Cursor() != 0 {
		t.Errorf("cursor = %d after Record, want 0", h.Cursor())
	}
}

// Empty submissions are recorded like any other text. This mirrors the send
// box's long-standing behavior and may not be intended.
func TestHistory_RecordsEmptyText(t *testing.T) {
	h := NewHistory()
	h.Record("")
	if h.Len() != 1 {
		t.Fatalf("len = %d, want 1", h.Len())
	}
	got, ok := h.Previous("")
	if !ok || got != "" {
		t.Errorf("Previous() = %q, %v; want empty entry", got, ok)
	}
}

func TestHistory_PreviousEmpty(t *testing.T) {
	h := NewHistory()
	if got, ok := h.Previous(""); ok || got != "" {
		t.Errorf("Previous() on empty history = %q, %v", got, ok)
	}
	if h.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", h.Cursor())
	}
}

func TestHistory_PreviousSaturates(t *testing.T) {
	h := NewHistory()
	h.Record("one")
	h.Record("two")
	h.Record("three")

	want := []string{"three", "two", "one", "one", "one"}
	for i, w := range want {
		got, ok := h.Previous("")
		if !ok || got != w {
			t.Errorf("Previous() #%d = %q, %v; want %q", i+1, got, ok, w)
		}
	}
	if h.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", h.Cursor())
	}
}

// Browsing away from unsent text records it first, so the first step back
// shows the same text again.
func TestHistory_PreviousSavesInProgressText(t *testing.T) {
	h := NewHistory()
	h.Record("sent")

	got, ok := h.Previous("draft")
	if !ok || got != "draft" {
		t.Errorf("first Previous() = %q, %v; want draft", got, ok)
	}
	got, _ = h.Previous("draft")
	if got != "sent" {
		t.Errorf("second Previous() = %q, want sent", got)
	}
	if h.Len() != 2 {
		t.Errorf("len = %d, want 2", h.Len())
	}

	// Only recorded when not already browsing.
	h.Previous("sent")
	if h.Len() != 2 {
		t.Errorf("len = %d after browsing, want 2", h.Len())
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory()
	h.Record("one")
	h.Record("two")
	h.Record("three")

	if _, ok := h.Next(); ok {
		t.Error("Next() when not browsing should do nothing")
	}

	h.Previous("")
	h.Previous("")
	h.Previous("")

	got, ok := h.Next()
	if !ok || got != "two" {
		t.Errorf("Next() = %q, %v; want two", got, ok)
	}
	got, ok = h.Next()
	if !ok || got != "three" {
		t.Errorf("Next() = %q, %v; want three", got, ok)
	}
}

// At the most recent entry Next never goes back to "nothing selected".
func TestHistory_NextStopsAtMostRecent(t *testing.T) {
	h := NewHistory()
	h.Record("one")
	h.Previous("")

	if _, ok := h.Next(); ok {
		t.Error("Next() at cursor 1 should be a no-op")
	}
	if h.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", h.Cursor())
	}
}
