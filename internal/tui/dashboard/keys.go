package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap centralizes keybindings for pages, toggles and global actions.
type keyMap struct {
	NextPage      key.Binding
	PrevPage      key.Binding
	Pages         []key.Binding
	Menu          key.Binding
	Sidebar       key.Binding
	Inbox         key.Binding
	Profile       key.Binding
	Notifications key.Binding
	Dismiss       key.Binding
	Filter        key.Binding
	NextRecords   key.Binding
	PrevRecords   key.Binding
	Refresh       key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPage: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev page")),
		Pages: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "readings")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "snapshots")),
			key.NewBinding(key.WithKeys("4", "?"), key.WithHelp("4", "help")),
		},
		Menu:          key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Sidebar:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sidebar")),
		Inbox:         key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inbox")),
		Profile:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "alerts")),
		Dismiss:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Filter:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		NextRecords:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next records")),
		PrevRecords:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev records")),
		Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.Menu, k.Inbox, k.Dismiss, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		append([]key.Binding{k.NextPage, k.PrevPage}, k.Pages...),
		{k.Menu, k.Sidebar, k.Inbox, k.Profile, k.Notifications, k.Dismiss},
		{k.Filter, k.PrevRecords, k.NextRecords, k.Refresh, k.Quit},
	}
}
