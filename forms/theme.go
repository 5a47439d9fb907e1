package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/simplereplay-cli/styles"
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func button(bg, text lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(text).Padding(0, 1)
}

// Theme returns a huh theme in the styles palette. Focused fields get a thick
// accent bar on the left; blurred fields are dimmed to the muted colours.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	f := &t.Focused
	f.Base = f.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Accent).
		PaddingLeft(1)
	f.Title = fg(styles.Amber).Bold(true)
	f.NoteTitle = fg(styles.Own).Bold(true)
	f.Description = fg(styles.Subtle)
	f.ErrorIndicator = fg(styles.Red).Bold(true)
	f.ErrorMessage = fg(styles.Red)
	f.SelectSelector = fg(styles.Own).SetString("▸ ")
	f.MultiSelectSelector = fg(styles.Own).SetString("▸ ")
	f.Option = fg(styles.Text)
	f.SelectedOption = fg(styles.Own)
	f.SelectedPrefix = fg(styles.Own).SetString("[✓] ")
	f.UnselectedOption = fg(styles.Subtle)
	f.UnselectedPrefix = fg(styles.Subtle).SetString("[ ] ")
	f.NextIndicator = fg(styles.Subtle)
	f.PrevIndicator = fg(styles.Subtle)
	f.TextInput.Cursor = fg(styles.Own)
	f.TextInput.Placeholder = fg(styles.Muted)
	f.TextInput.Prompt = fg(styles.Own)
	f.TextInput.Text = fg(styles.Text)
	f.FocusedButton = button(styles.Accent, styles.Text).Bold(true)
	f.BlurredButton = button(styles.Muted, styles.Subtle)
	f.Next = f.FocusedButton
	f.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Muted).
		Padding(0, 1)

	b := &t.Blurred
	b.Base = b.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	b.Title = fg(styles.Subtle)
	b.NoteTitle = fg(styles.Subtle)
	b.Description = fg(styles.Muted)
	b.ErrorIndicator = fg(styles.Red)
	b.ErrorMessage = fg(styles.Red)
	b.SelectSelector = lipgloss.NewStyle().SetString("  ")
	b.MultiSelectSelector = lipgloss.NewStyle().SetString("  ")
	b.Option = fg(styles.Subtle)
	b.SelectedOption = fg(styles.Subtle)
	b.SelectedPrefix = fg(styles.Subtle).SetString("[✓] ")
	b.UnselectedOption = fg(styles.Muted)
	b.UnselectedPrefix = fg(styles.Muted).SetString("[ ] ")
	b.TextInput.Cursor = fg(styles.Muted)
	b.TextInput.Placeholder = fg(styles.Muted)
	b.TextInput.Prompt = fg(styles.Muted)
	b.TextInput.Text = fg(styles.Subtle)
	b.FocusedButton = button(styles.Muted, styles.Subtle)
	b.BlurredButton = button(styles.Background, styles.Muted)
	b.Next = b.FocusedButton
	b.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Background).
		Padding(0, 1)

	return t
}
