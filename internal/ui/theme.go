package ui

import (
	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/ui/modals"
)

// Theme is the color palette every style is built from.
type Theme struct {
	// Name is the display name of the theme
	Name string

	Primary   string // Focus, highlights, header background
	Secondary string // Unread counters, keys in the footer

	Bg          string
	BgSelected  string // Selected sidebar row (defaults to Primary if empty)
	Text        string
	TextMuted   string
	TextInverse string // Text on colored backgrounds
	Muted       string // Timestamps, offline contacts

	Own  string // Own nick in the message log
	Peer string // Other nicks in the message log

	// Presence and flash colors
	Success string // Online
	Warning string // Away
	Error   string // Busy, errors

	Border      string
	BorderFocus string // Focused panel border (defaults to Primary if empty)
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeCatppuccin ThemeName = "catppuccin"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#B0B8C4",
		TextInverse: "#1F2937",
		Muted:       "#6B7280",
		Own:         "#A78BFA",
		Peer:        "#22D3EE",
		Success:     "#10B981",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Border:      "#374151",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Muted:       "#4C566A",
		Own:         "#A3BE8C",
		Peer:        "#88C0D0",
		Success:     "#A3BE8C",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Border:      "#4C566A",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#BFBFBF",
		TextInverse: "#282A36",
		Muted:       "#6272A4",
		Own:         "#FF79C6",
		Peer:        "#8BE9FD",
		Success:     "#50FA7B",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Border:      "#44475A",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Muted:       "#928374",
		Own:         "#FABD2F",
		Peer:        "#83A598",
		Success:     "#B8BB26",
		Warning:     "#FE8019",
		Error:       "#FB4934",
		Border:      "#504945",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#A9B1D6",
		TextInverse: "#1A1B26",
		Muted:       "#565F89",
		Own:         "#9ECE6A",
		Peer:        "#7AA2F7",
		Success:     "#9ECE6A",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Border:      "#3B4261",
	},
	ThemeCatppuccin: {
		Name:        "Catppuccin Mocha",
		Primary:     "#CBA6F7",
		Secondary:   "#89DCEB",
		Bg:          "#1E1E2E",
		Text:        "#CDD6F4",
		TextMuted:   "#A6ADC8",
		TextInverse: "#1E1E2E",
		Muted:       "#6C7086",
		Own:         "#F5C2E7",
		Peer:        "#89DCEB",
		Success:     "#A6E3A1",
		Warning:     "#FAB387",
		Error:       "#F38BA8",
		Border:      "#313244",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#4B5563",
		TextInverse: "#FFFFFF",
		Muted:       "#9CA3AF",
		Own:         "#7C3AED",
		Peer:        "#0891B2",
		Success:     "#059669",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Border:      "#D1D5DB",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeLight,
	}
}

// IsTheme reports whether name is a built-in theme.
func IsTheme(name string) bool {
	_, ok := BuiltinThemes[ThemeName(name)]
	return ok
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// GetThemeName resolves a configured name, falling back to the default.
func GetThemeName(name string) ThemeName {
	if IsTheme(name) {
		return ThemeName(name)
	}
	return DefaultTheme
}

var currentTheme = DefaultTheme

// CurrentThemeName returns the name of the active theme
func CurrentThemeName() ThemeName {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles. Components
// created before the call keep their old input styles.
func SetTheme(name ThemeName) {
	name = GetThemeName(string(name))
	currentTheme = name
	regenerateStyles(BuiltinThemes[name])
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// regenerateStyles updates all style variables from t
func regenerateStyles(t Theme) {
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.Muted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorOwn = lipgloss.Color(t.Own)
	ColorPeer = lipgloss.Color(t.Peer)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary)
	HeaderMutedStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Background(ColorPrimary)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	SidebarItemStyle = lipgloss.NewStyle().
		Padding(0, 1)
	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)
	UnreadStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

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

	refreshModalStyles()
}

// refreshModalStyles hands the current styles to the modals package.
func refreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, SidebarItemStyle, SidebarSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning,
		ModalInputWidth, ModalInputCharLimit, ModalWidth,
	)
}
