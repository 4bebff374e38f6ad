package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typerush/internal/typing"
)

type keyMap struct {
	Stop    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Retry   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Stop:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Pause:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pause")),
		Restart: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "new words")),
		Retry:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Pause, k.Restart, k.Retry, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// keyEvents converts a terminal key press into typing events. Pasted text is dropped.
func keyEvents(msg tea.KeyMsg) []typing.Event {
	if msg.Paste {
		return nil
	}
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []typing.Event{typing.ControlKey{Key: msg.String()}}
		}
		events := make([]typing.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, typing.CharacterKey{Key: string(r)})
		}
		return events
	case tea.KeySpace:
		return []typing.Event{typing.CharacterKey{Key: typing.KeySpace}}
	case tea.KeyEnter:
		return []typing.Event{typing.CharacterKey{Key: typing.KeyEnter}}
	case tea.KeyBackspace, tea.KeyDelete:
		return []typing.Event{typing.ControlKey{Key: typing.KeyBackspace}}
	default:
		return []typing.Event{typing.ControlKey{Key: msg.String()}}
	}
}
