package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/parley/internal/im"
)

// Gradient endpoints for the header background
const (
	headerGradientStart = "#7C3AED"
	headerGradientEnd   = "#1F2937"
)

// Header represents the top header bar
type Header struct {
	width        int
	conversation string
	ownStatus    im.Status
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversation sets the name of the focused conversation
func (h *Header) SetConversation(name string) {
	h.conversation = name
}

// SetOwnStatus sets the own status shown after the title
func (h *Header) SetOwnStatus(status im.Status) {
	h.ownStatus = status
}

// View renders the header
func (h *Header) View() string {
	titleText := " parley"
	statusText := " [" + h.ownStatus.String() + "]"
	var rightText string
	if h.conversation != "" {
		rightText = h.conversation + " "
	}

	left := titleText + statusText
	paddingLen := h.width - ansi.StringWidth(left) - ansi.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := left + strings.Repeat(" ", paddingLen) + rightText
	return h.renderGradient(fullContent, len([]rune(titleText)), len([]rune(left)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a gradient background. Runes before
// boldEnd are bold; runes in [boldEnd, mutedEnd) use the muted color.
func (h *Header) renderGradient(content string, boldEnd, mutedEnd int) string {
	if len(content) == 0 {
		return ""
	}

	startR, startG, startB := parseHexColor(headerGradientStart)
	endR, endG, endB := parseHexColor(headerGradientEnd)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)
		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < boldEnd)

		if i >= boldEnd && i < mutedEnd {
			style = style.Foreground(ColorTextMuted)
		} else {
			style = style.Foreground(ColorText)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
