package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// MinSidebarWidth keeps names readable on narrow terminals
	MinSidebarWidth = 20

	// TextareaHeight is the number of lines for the send box
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the send box
	TextareaBorderHeight = 2

	// InputTotalHeight is the total height of the send box (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// InputPaddingWidth is the horizontal padding inside the send box (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// DefaultWrapWidth is the width for text wrapping when the viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight bound layout calculations
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Sidebar constants
const (
	// SidebarSearchCharLimit is the character limit for the conversation search
	SidebarSearchCharLimit = 64
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)
