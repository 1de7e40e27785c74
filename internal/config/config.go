package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	perrors "github.com/zhubert/parley/internal/errors"
)

// Config holds the user's preferences
type Config struct {
	HideOffline         bool `json:"hide_offline"`          // Hide offline contacts in the roster
	NotifyContactStatus bool `json:"notify_contact_status"` // Notify when a contact comes online
	NotifyNewMessage    bool `json:"notify_new_message"`    // Notify on messages in unfocused conversations
	NotifyProtocols     bool `json:"notify_protocols"`      // Notify on protocol errors
	IgnoreEmoticons     bool `json:"ignore_emoticons"`      // Render emoticons as typed
	DisableQuitConfirm  bool `json:"disable_quit_confirm"`  // Quit without asking
	MarkUnread          bool `json:"mark_unread"`           // Show unread counters in the conversation list

	OwnStatus       string `json:"own_status,omitempty"`        // Status applied to all accounts at startup
	Theme           string `json:"theme,omitempty"`             // Color theme name; unknown names fall back to the default
	LastSeenVersion string `json:"last_seen_version,omitempty"` // Last version the user has run

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the preferences file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a Config with default preferences that is not backed by a file.
func Default() *Config {
	return &Config{
		NotifyContactStatus: true,
		NotifyNewMessage:    true,
		NotifyProtocols:     true,
		MarkUnread:          true,
	}
}

// Load reads the preferences from disk, or returns defaults if the file doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	// Fields missing from the file keep their defaults.
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.OwnStatus != "" && !validStatuses[c.OwnStatus] {
		return perrors.ConfigInvalid(fmt.Sprintf("unknown own_status %q", c.OwnStatus))
	}
	return nil
}

// validStatuses mirrors im.Status names; config sits below im so it can't import it.
var validStatuses = map[string]bool{
	"offline": true,
	"online":  true,
	"away":    true,
	"busy":    true,
}

// Save writes the preferences to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		path, err := configPath()
		if err != nil {
			return err
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file this config is saved to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath sets the file Save writes to
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetHideOffline returns whether offline contacts are hidden
func (c *Config) GetHideOffline() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HideOffline
}

// SetHideOffline sets whether offline contacts are hidden
func (c *Config) SetHideOffline(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.HideOffline = enabled
}

// GetNotifyContactStatus returns whether contact status changes trigger notifications
func (c *Config) GetNotifyContactStatus() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotifyContactStatus
}

// SetNotifyContactStatus sets whether contact status changes trigger notifications
func (c *Config) SetNotifyContactStatus(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotifyContactStatus = enabled
}

// GetNotifyNewMessage returns whether new messages trigger notifications
func (c *Config) GetNotifyNewMessage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotifyNewMessage
}

// SetNotifyNewMessage sets whether new messages trigger notifications
func (c *Config) SetNotifyNewMessage(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotifyNewMessage = enabled
}

// GetNotifyProtocols returns whether protocol errors trigger notifications
func (c *Config) GetNotifyProtocols() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotifyProtocols
}

// SetNotifyProtocols sets whether protocol errors trigger notifications
func (c *Config) SetNotifyProtocols(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotifyProtocols = enabled
}

// GetIgnoreEmoticons returns whether emoticons are left as typed
func (c *Config) GetIgnoreEmoticons() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.IgnoreEmoticons
}

// SetIgnoreEmoticons sets whether emoticons are left as typed
func (c *Config) SetIgnoreEmoticons(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.IgnoreEmoticons = enabled
}

// GetDisableQuitConfirm returns whether quitting skips the confirmation modal
func (c *Config) GetDisableQuitConfirm() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DisableQuitConfirm
}

// SetDisableQuitConfirm sets whether quitting skips the confirmation modal
func (c *Config) SetDisableQuitConfirm(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DisableQuitConfirm = enabled
}

// GetMarkUnread returns whether unread counters are shown
func (c *Config) GetMarkUnread() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.MarkUnread
}

// SetMarkUnread sets whether unread counters are shown
func (c *Config) SetMarkUnread(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MarkUnread = enabled
}

// GetOwnStatus returns the saved own status name, or empty if none was saved
func (c *Config) GetOwnStatus() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.OwnStatus
}

// SetOwnStatus sets the own status name
func (c *Config) SetOwnStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.OwnStatus = status
}

// GetTheme returns the saved color theme name, or empty for the default
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the color theme name
func (c *Config) SetTheme(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = name
}

// GetLastSeenVersion returns the last version the user has run
func (c *Config) GetLastSeenVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSeenVersion
}

// SetLastSeenVersion sets the last version the user has run
func (c *Config) SetLastSeenVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSeenVersion = version
}
