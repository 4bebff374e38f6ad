package typing

// Key names recognized by the state machine.
const (
	KeyEnter     = "Enter"
	KeySpace     = " "
	KeyBackspace = "Backspace"
)

// Event is an input delivered to a session.
type Event interface {
	event()
}

// CharacterKey is a printable key press (Enter included).
type CharacterKey struct {
	Key string
}

// ControlKey is a non-printable key press such as Backspace.
type ControlKey struct {
	Key string
}

func (CharacterKey) event() {}
func (ControlKey) event()   {}

// IsConfirmKey reports whether key advances past a fully typed word.
func IsConfirmKey(key string) bool {
	return key == KeyEnter || key == KeySpace
}

// Hook identifies the notification fired while handling an event.
type Hook int

const (
	// HookNone means the event was ignored.
	HookNone Hook = iota
	// HookKeyPress fires for every accepted CharacterKey.
	HookKeyPress
	// HookKeyDown fires for every accepted ControlKey.
	HookKeyDown
)

func (h Hook) String() string {
	switch h {
	case HookKeyPress:
		return "keypress"
	case HookKeyDown:
		return "keydown"
	default:
		return "none"
	}
}
