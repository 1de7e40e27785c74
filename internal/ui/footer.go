package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DefaultFlashDuration is how long a flash message stays in the footer
const DefaultFlashDuration = 4 * time.Second

// flashTickInterval is how often expiry is checked while a flash is shown
const flashTickInterval = 500 * time.Millisecond

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient message shown in place of the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true once the message has been shown for its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry
type FlashTickMsg time.Time

// FlashTick returns a command that fires a FlashTickMsg
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width           int
	bindings        []KeyBinding
	hasConversation bool // Whether a conversation is open
	sidebarFocused  bool // Whether the conversation list has focus
	searching       bool // Whether the conversation list is in search mode
	flashMessage    *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "enter", Desc: "open"},
			{Key: "/", Desc: "search"},
			{Key: "n", Desc: "new chat"},
			{Key: "x", Desc: "leave"},
			{Key: "s", Desc: "status"},
			{Key: ",", Desc: "prefs"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasConversation, sidebarFocused, searching bool) {
	f.hasConversation = hasConversation
	f.sidebarFocused = sidebarFocused
	f.searching = searching
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash returns whether a flash message is shown
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func flashIconAndStyle(t FlashType) (string, lipgloss.Style) {
	switch t {
	case FlashError:
		return "✕", FlashErrorStyle
	case FlashWarning:
		return "⚠", FlashWarningStyle
	case FlashSuccess:
		return "✓", FlashSuccessStyle
	default:
		return "ℹ", FlashInfoStyle
	}
}

func renderBindings(bindings []KeyBinding) []string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	return parts
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		icon, style := flashIconAndStyle(f.flashMessage.Type)
		return FooterStyle.Width(f.width).Render(style.Render(icon + " " + f.flashMessage.Text))
	}

	var parts []string
	switch {
	case f.searching:
		parts = renderBindings([]KeyBinding{
			{Key: "enter", Desc: "keep filter"},
			{Key: "esc", Desc: "clear"},
			{Key: "↑/↓", Desc: "navigate"},
		})
	case !f.sidebarFocused && f.hasConversation:
		parts = renderBindings([]KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "alt+enter", Desc: "newline"},
			{Key: "tab", Desc: "complete"},
			{Key: "↑/↓", Desc: "history"},
			{Key: "esc", Desc: "conversations"},
			{Key: "pgup/dn", Desc: "scroll"},
		})
	default:
		var bindings []KeyBinding
		for _, b := range f.bindings {
			// Skip conversation-specific bindings when nothing is open
			if (b.Key == "enter" || b.Key == "x") && !f.hasConversation {
				continue
			}
			bindings = append(bindings, b)
		}
		parts = renderBindings(bindings)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
