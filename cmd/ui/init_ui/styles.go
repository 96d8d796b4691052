package init_ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// palette follows the default site brand so the setup screen looks like the
// sites it scaffolds. Each colour adapts to light and dark terminals.
type palette struct {
	ink    lipgloss.AdaptiveColor
	soft   lipgloss.AdaptiveColor
	faint  lipgloss.AdaptiveColor
	brand  lipgloss.AdaptiveColor
	accent lipgloss.AdaptiveColor
	paper  lipgloss.AdaptiveColor
}

var brandPalette = palette{
	ink:    lipgloss.AdaptiveColor{Light: "#1a2433", Dark: "#e8edf3"},
	soft:   lipgloss.AdaptiveColor{Light: "#46546a", Dark: "#b4c0cf"},
	faint:  lipgloss.AdaptiveColor{Light: "#8591a3", Dark: "#7d8899"},
	brand:  lipgloss.AdaptiveColor{Light: "#1e3a5f", Dark: "#7fa7d9"},
	accent: lipgloss.AdaptiveColor{Light: "#b8862b", Dark: "#e0b45c"},
	paper:  lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#141b24"},
}

type uiStyles struct {
	title             lipgloss.Style
	section           lipgloss.Style
	label             lipgloss.Style
	blockFocused      lipgloss.Style
	blockUnfocused    lipgloss.Style
	submit            lipgloss.Style
	submitFocused     lipgloss.Style
	listTitle         lipgloss.Style
	listSelectedTitle lipgloss.Style
	listSelectedDesc  lipgloss.Style
	listNormalTitle   lipgloss.Style
	listNormalDesc    lipgloss.Style
}

func initStyles() uiStyles {
	p := brandPalette
	bar := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.accent).
		PaddingLeft(1)
	indent := lipgloss.NewStyle().PaddingLeft(2)
	button := lipgloss.NewStyle().Bold(true).MarginLeft(2).Padding(0, 2)

	return uiStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(p.paper).Background(p.brand).Padding(0, 1).MarginLeft(2),
		section: lipgloss.NewStyle().Bold(true).Foreground(p.brand),
		label:   lipgloss.NewStyle().Foreground(p.ink),

		blockFocused:   bar,
		blockUnfocused: indent,

		submit:        button.Foreground(p.paper).Background(p.faint),
		submitFocused: button.Foreground(p.paper).Background(p.accent),

		listTitle:         lipgloss.NewStyle().Bold(true).Foreground(p.paper).Background(p.brand).Padding(0, 1),
		listSelectedTitle: bar.Bold(true).Foreground(p.brand),
		listSelectedDesc:  bar.Foreground(p.soft),
		listNormalTitle:   indent.Foreground(p.ink),
		listNormalDesc:    indent.Foreground(p.faint),
	}
}

func (s uiStyles) block(focused bool) lipgloss.Style {
	if focused {
		return s.blockFocused
	}
	return s.blockUnfocused
}

func applyTextInputStyles(input *textinput.Model) {
	p := brandPalette
	input.PromptStyle = lipgloss.NewStyle().Foreground(p.accent)
	input.TextStyle = lipgloss.NewStyle().Foreground(p.ink)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(p.faint).Italic(true)
	input.Cursor.Style = lipgloss.NewStyle().Foreground(p.accent)
}
