package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/im"
)

// =============================================================================
// StatusState - State for the own-status modal
// =============================================================================

type StatusState struct {
	selected string
	form     *huh.Form
}

func (*StatusState) modalState() {}

func (s *StatusState) Title() string { return "Set Status" }

func (s *StatusState) Help() string {
	return "up/down: select  Enter: apply to all accounts  Esc: cancel"
}

func (s *StatusState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *StatusState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Selected returns the highlighted status.
func (s *StatusState) Selected() im.Status {
	status, _ := im.ParseStatus(s.selected)
	return status
}

// NewStatusState creates a StatusState with current preselected.
func NewStatusState(current im.Status) *StatusState {
	s := &StatusState{selected: current.String()}

	var options []huh.Option[string]
	for _, st := range im.Statuses() {
		options = append(options, huh.NewOption(st.String(), st.String()))
	}

	s.form = newModalForm(
		huh.NewSelect[string]().
			Options(options...).
			Value(&s.selected),
	)

	return s
}
