package ui

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorOwn         = lipgloss.Color("#A78BFA") // Own messages
	ColorPeer        = lipgloss.Color("#22D3EE") // Messages from others
	ColorWarning     = lipgloss.Color("#F59E0B") // Away
	ColorError       = lipgloss.Color("#EF4444") // Busy, errors
	ColorSuccess     = lipgloss.Color("#10B981") // Online
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary)

	HeaderMutedStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Background(ColorPrimary)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)

	UnreadStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)

// Chat styles
var (
	ChatOwnStyle = lipgloss.NewStyle().
			Foreground(ColorOwn).
			Bold(true)

	ChatPeerStyle = lipgloss.NewStyle().
			Foreground(ColorPeer).
			Bold(true)

	ChatTimeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	CodeBlockStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	FlashErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	FlashWarningStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	FlashInfoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	FlashSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

func init() {
	refreshModalStyles()
}
