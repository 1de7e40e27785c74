package modals

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/keys"
)

// newModalForm wraps a single field in a themed, help-less form sized for
// the modal box. The form is initialized so the first Render is complete.
func newModalForm(field huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6).
		WithLayout(huh.LayoutStack)
	form.Init()
	return form
}

// huhFormUpdate forwards a message to a modal form. Enter and Escape are
// left to the app's modal handlers, which read the form's value themselves.
func huhFormUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		if k := keyMsg.String(); k == keys.Enter || k == keys.Escape {
			return form, nil
		}
	}

	m, cmd := form.Update(msg)
	return m.(*huh.Form), cmd
}

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// ModalTheme returns a huh theme built from the current modal colors.
// Selected options use the presence dots of the sidebar.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		focused := &t.Focused
		focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		focused.Card = focused.Base
		focused.Title = fg(ColorText).Bold(true)
		focused.Description = fg(ColorTextMuted)
		focused.ErrorIndicator = fg(ColorWarning).SetString(" !")
		focused.ErrorMessage = fg(ColorWarning)

		focused.SelectSelector = fg(ColorPrimary).SetString("› ")
		focused.Option = fg(ColorText)
		focused.NextIndicator = fg(ColorPrimary).MarginLeft(1).SetString("›")
		focused.PrevIndicator = fg(ColorPrimary).MarginRight(1).SetString("‹")

		focused.MultiSelectSelector = fg(ColorPrimary).SetString("› ")
		focused.SelectedOption = fg(ColorSecondary)
		focused.SelectedPrefix = fg(ColorSecondary).SetString("● ")
		focused.UnselectedOption = fg(ColorText)
		focused.UnselectedPrefix = fg(ColorTextMuted).SetString("○ ")

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.Group.Title = fg(ColorSecondary).Bold(true)
		t.Group.Description = fg(ColorTextMuted)
		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles

		return t
	})
}
