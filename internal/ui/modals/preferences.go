package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/config"
)

// =============================================================================
// PreferencesState - State for the Preferences modal
// =============================================================================

type PreferencesState struct {
	// MultiSelect binding: keys of the enabled preferences
	enabled []string

	form *huh.Form
}

func (*PreferencesState) modalState() {}

func (s *PreferencesState) Title() string { return "Preferences" }

func (s *PreferencesState) Help() string {
	return "up/down: move  Space: toggle  Enter: save  Esc: cancel"
}

func (s *PreferencesState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *PreferencesState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Enabled returns the keys of the preferences currently checked.
func (s *PreferencesState) Enabled() []string {
	return s.enabled
}

// NewPreferencesState creates a PreferencesState from the current preference values.
func NewPreferencesState(prefs []config.Preference) *PreferencesState {
	s := &PreferencesState{}

	options := make([]huh.Option[string], 0, len(prefs))
	for _, p := range prefs {
		options = append(options, huh.NewOption(p.Label, p.Key).Selected(p.Value))
		if p.Value {
			s.enabled = append(s.enabled, p.Key)
		}
	}

	s.form = newModalForm(
		huh.NewMultiSelect[string]().
			Options(options...).
			Value(&s.enabled),
	)

	return s
}
