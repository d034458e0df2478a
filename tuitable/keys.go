package tuitable

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit      key.Binding
	filter    key.Binding
	escape    key.Binding
	left      key.Binding
	right     key.Binding
	sort      key.Binding
	hide      key.Binding
	showAll   key.Binding
	columns   key.Binding
	toggle    key.Binding
	up        key.Binding
	down      key.Binding
	expand    key.Binding
	nextPage  key.Binding
	prevPage  key.Binding
	firstPage key.Binding
	lastPage  key.Binding
	pageSize  key.Binding
	copyRow   key.Binding
	help      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "done"),
		),
		left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "column"),
		),
		right: key.NewBinding(
			key.WithKeys("right"),
		),
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide column"),
		),
		showAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "show all columns"),
		),
		columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "columns"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle column"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "row"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n/p", "page"),
		),
		prevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
		),
		firstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/G", "first/last page"),
		),
		lastPage: key.NewBinding(
			key.WithKeys("G", "end"),
		),
		pageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "page size"),
		),
		copyRow: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy row"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.filter,
		k.left,
		k.sort,
		k.hide,
		k.columns,
		k.nextPage,
		k.help,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.filter, k.escape, k.pageSize},
		{k.left, k.sort, k.hide, k.showAll, k.columns, k.toggle},
		{k.up, k.expand, k.copyRow},
		{k.nextPage, k.firstPage},
		{k.help, k.quit},
	}
}
