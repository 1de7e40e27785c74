// Package ui provides the terminal components of parley: header, footer,
// the conversation list, the chat panel with its send box, and the modal
// container. Components are plain structs updated by the app model.
package ui
