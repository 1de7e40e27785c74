package ui

import (
	"sync"

	"github.com/zhubert/parley/internal/logger"
)

// ViewContext is the window layout: header and footer rows, the conversation
// list on the left and the chat panel on the right. Every size goes through
// here so panels agree on borders.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	mu sync.Mutex
}

// ChatLayout is how the chat panel splits its area between the message log
// and the send box.
type ChatLayout struct {
	LogWidth     int // viewport width inside the log border
	LogHeight    int // viewport height inside the log border
	SendBoxWidth int // textarea width inside the send box border and padding
}

var (
	ctx     *ViewContext
	ctxOnce sync.Once
)

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// UpdateTerminalSize recomputes the panel sizes for a terminal of the given
// size, clamped to the minimum usable window.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight
	v.SidebarWidth = max(width/SidebarWidthRatio, MinSidebarWidth)
	v.ChatWidth = width - v.SidebarWidth

	logger.WithComponent("ui").Debug("layout",
		"width", width,
		"height", height,
		"sidebar", v.SidebarWidth,
		"chat", v.ChatWidth,
	)
}

// Chat splits a chat panel of the given outer size. The send box keeps its
// fixed height and the log gets at least one line.
func (v *ViewContext) Chat(width, height int) ChatLayout {
	return ChatLayout{
		LogWidth:     v.InnerWidth(width),
		LogHeight:    max(v.InnerHeight(height-InputTotalHeight), 1),
		SendBoxWidth: v.InnerWidth(width) - InputPaddingWidth,
	}
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}

// Log writes a layout debug line
func (v *ViewContext) Log(msg string, args ...any) {
	logger.WithComponent("ui").Debug(msg, args...)
}
