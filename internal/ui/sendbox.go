package ui

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/compose"
	"github.com/zhubert/parley/internal/keys"
)

// SendMsg is emitted when the user submits the send box.
type SendMsg struct {
	Text string
}

// SendBox is the message input under the chat history. Enter submits, tab
// completes the last word, up/down browse previously sent messages and
// alt+enter inserts a newline. Any other key ends the current completion.
type SendBox struct {
	input          textarea.Model
	history        *compose.History
	completer      *compose.Completer
	commandContext bool
}

// NewSendBox creates an empty send box with its own history
func NewSendBox() *SendBox {
	ta := textarea.New()
	ta.Placeholder = "Type a message, /command or tab to complete..."
	ta.CharLimit = 0
	ta.SetHeight(TextareaHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	applyTextareaStyles(&ta)

	return &SendBox{
		input:     ta,
		history:   compose.NewHistory(),
		completer: compose.NewCompleter(nil, nil),
	}
}

// applyTextareaStyles drops the textarea's default background so the
// terminal background shows through.
func applyTextareaStyles(ta *textarea.Model) {
	styles := ta.Styles()

	baseStyle := lipgloss.NewStyle()
	textStyle := lipgloss.NewStyle().Foreground(ColorText)
	placeholderStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)

	styles.Focused.Base = baseStyle
	styles.Focused.CursorLine = textStyle
	styles.Focused.Text = textStyle
	styles.Focused.Placeholder = placeholderStyle

	styles.Blurred.Base = baseStyle
	styles.Blurred.CursorLine = textStyle
	styles.Blurred.Text = textStyle
	styles.Blurred.Placeholder = placeholderStyle

	ta.SetStyles(styles)
}

// SetSources sets what tab completes against. Slash commands only complete
// when commands is non-nil.
func (s *SendBox) SetSources(commands compose.CommandSet, users compose.UserSet) {
	s.completer.SetSources(commands, users)
	s.commandContext = commands != nil
}

// SetWidth sets the input width
func (s *SendBox) SetWidth(width int) {
	s.input.SetWidth(width)
}

// Focus focuses the input
func (s *SendBox) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur blurs the input
func (s *SendBox) Blur() {
	s.input.Blur()
}

// Value returns the current text
func (s *SendBox) Value() string {
	return s.input.Value()
}

// SetValue replaces the current text
func (s *SendBox) SetValue(text string) {
	s.input.SetValue(text)
}

// History exposes the sent-message history
func (s *SendBox) History() *compose.History {
	return s.history
}

// Update handles key presses for the send box
func (s *SendBox) Update(msg tea.Msg) (*SendBox, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch keyMsg.String() {
	case keys.Tab:
		if text, ok := s.completer.Complete(s.input.Value(), s.commandContext); ok {
			s.input.SetValue(text)
		}
		return s, nil

	case keys.Up:
		s.completer.Reset()
		if s.input.Line() > 0 {
			break
		}
		if text, ok := s.history.Previous(s.input.Value()); ok {
			s.input.SetValue(text)
		}
		return s, nil

	case keys.Down:
		s.completer.Reset()
		if s.input.Line() < s.input.LineCount()-1 {
			break
		}
		if text, ok := s.history.Next(); ok {
			s.input.SetValue(text)
		}
		return s, nil

	case keys.Enter:
		s.completer.Reset()
		text := s.input.Value()
		s.history.Record(text)
		s.input.Reset()
		return s, func() tea.Msg { return SendMsg{Text: text} }

	case keys.AltEnter:
		s.completer.Reset()
		s.input.InsertString("\n")
		return s, nil
	}

	s.completer.Reset()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input
func (s *SendBox) View() string {
	return s.input.View()
}
