package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SwitchTab key.Binding
	Up        key.Binding
	Down      key.Binding
	Prev      key.Binding
	Next      key.Binding
	Swap      key.Binding
	Add       key.Binding
	Delete    key.Binding
	ClearAll  key.Binding
	Save      key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev field")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
	Prev:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev option")),
	Next:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
	Swap:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap units")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	ClearAll:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete all")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// converterHelp and notesHelp implement help.KeyMap for the footer.
type converterHelp struct{}

func (converterHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Prev, keys.Next, keys.Swap, keys.SwitchTab, keys.Quit}
}
func (h converterHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type notesHelp struct{}

func (notesHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Add, keys.Delete, keys.ClearAll, keys.SwitchTab, keys.Quit}
}
func (h notesHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type formHelp struct{}

func (formHelp) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		keys.Save, keys.Cancel,
	}
}
func (h formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
