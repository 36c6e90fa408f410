package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	New      key.Binding
	Edit     key.Binding
	Search   key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Drag     key.Binding
	Cancel   key.Binding
	FontUp   key.Binding
	FontDown key.Binding
	Preview  key.Binding
	Save     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Copy:     key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		Drag:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pick up/drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		FontUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "font")),
		FontDown: key.NewBinding(key.WithKeys("-")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseHelp lists the bindings shown in the footer.
func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Search, k.Drag, k.Copy, k.Delete, k.FontUp, k.Preview, k.Quit}
}
