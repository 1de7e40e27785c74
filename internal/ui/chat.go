package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/viewport"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/compose"
	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/keys"
)

// Chat is the right panel: message history of the open conversation above
// the send box.
type Chat struct {
	viewport viewport.Model
	sendBox  *SendBox
	width    int
	height   int
	focused  bool

	conversationID  string
	hasConversation bool
	messages        []im.Message
	ignoreEmoticons bool
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		sendBox:  NewSendBox(),
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	layout := ctx.Chat(width, height)

	c.viewport.SetWidth(layout.LogWidth)
	c.viewport.SetHeight(layout.LogHeight)
	c.sendBox.SetWidth(layout.SendBoxWidth)

	ctx.Log("Chat.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"viewportWidth", c.viewport.Width(),
		"viewportHeight", c.viewport.Height(),
	)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.sendBox.Focus()
	}
	c.sendBox.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetIgnoreEmoticons turns emoticon replacement off
func (c *Chat) SetIgnoreEmoticons(ignore bool) {
	if c.ignoreEmoticons == ignore {
		return
	}
	c.ignoreEmoticons = ignore
	c.updateContent()
}

// SetConversation shows a conversation's messages and points tab completion
// at its commands and users. commands is nil when the protocol has none.
func (c *Chat) SetConversation(id string, messages []im.Message, commands compose.CommandSet, users compose.UserSet) {
	c.conversationID = id
	c.hasConversation = true
	c.messages = messages
	c.sendBox.SetSources(commands, users)
	c.updateContent()
}

// ClearConversation shows the placeholder
func (c *Chat) ClearConversation() {
	c.conversationID = ""
	c.hasConversation = false
	c.messages = nil
	c.sendBox.SetSources(nil, nil)
	c.updateContent()
}

// ConversationID returns the open conversation, empty if none
func (c *Chat) ConversationID() string {
	return c.conversationID
}

// HasConversation returns whether a conversation is open
func (c *Chat) HasConversation() bool {
	return c.hasConversation
}

// AppendMessage adds a message to the open conversation
func (c *Chat) AppendMessage(msg im.Message) {
	c.messages = append(c.messages, msg)
	c.updateContent()
}

// SendBox returns the input component
func (c *Chat) SendBox() *SendBox {
	return c.sendBox
}

func (c *Chat) renderNoConversationMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No conversation open"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("enter"))
	sb.WriteString(msgStyle.Render(" to open the selected conversation"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("n"))
	sb.WriteString(msgStyle.Render(" to start a chat with a contact"))
	return sb.String()
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	switch {
	case !c.hasConversation:
		sb.WriteString(c.renderNoConversationMessage())
	case len(c.messages) == 0:
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No messages yet. Say hello!"))
	default:
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(renderMessage(msg, wrapWidth, c.ignoreEmoticons))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if c.focused && c.hasConversation {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, keys.Home, keys.End, "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}

			var cmd tea.Cmd
			c.sendBox, cmd = c.sendBox.Update(msg)
			return c, cmd
		}
	}

	// Mouse wheel and other non-key events scroll the history
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if !c.hasConversation {
		return panelStyle.Width(c.width).Height(c.height).Render(c.renderNoConversationMessage())
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.sendBox.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
