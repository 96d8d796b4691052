package init_ui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
)

type sourceItem struct {
	path string
}

func (s sourceItem) Title() string       { return filepath.Base(s.path) }
func (s sourceItem) Description() string { return s.path }
func (s sourceItem) FilterValue() string { return s.path }

func buildSourceList(sources []string) list.Model {
	items := make([]list.Item, 0, len(sources))
	for _, src := range sources {
		items = append(items, sourceItem{path: src})
	}

	delegate := list.NewDefaultDelegate()
	styles := initStyles()
	delegate.Styles.SelectedTitle = styles.listSelectedTitle
	delegate.Styles.SelectedDesc = styles.listSelectedDesc
	delegate.Styles.NormalTitle = styles.listNormalTitle
	delegate.Styles.NormalDesc = styles.listNormalDesc

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select the section registry:"
	l.Styles.Title = styles.listTitle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func selectSourceInList(l *list.Model, selected string) {
	for i, item := range l.Items() {
		if s, ok := item.(sourceItem); ok && s.path == selected {
			l.Select(i)
			return
		}
	}
}
