package typing

import "slices"

// Observer receives the notifications fired by a Processor.
type Observer interface {
	KeyPressed()
	KeyDown()
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnKeyPress func()
	OnKeyDown  func()
}

// KeyPressed implements Observer.
func (o ObserverFuncs) KeyPressed() {
	if o.OnKeyPress != nil {
		o.OnKeyPress()
	}
}

// KeyDown implements Observer.
func (o ObserverFuncs) KeyDown() {
	if o.OnKeyDown != nil {
		o.OnKeyDown()
	}
}

// Option configures a Processor.
type Option func(*Processor)

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(p *Processor) {
		p.observers = append(p.observers, o)
	}
}

// Processor owns one typing session and applies events to it one at a time.
// It is not safe for concurrent use.
type Processor struct {
	cfg       Config
	state     State
	observers []Observer
}

// New validates cfg and returns a Processor in its initial state.
func New(cfg Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Words = slices.Clone(cfg.Words)
	p := &Processor{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Subscribe registers an observer for subsequent events.
func (p *Processor) Subscribe(o Observer) {
	p.observers = append(p.observers, o)
}

// Handle applies ev. Observers are notified before the new state is
// committed, so they still see the state the key was pressed in.
func (p *Processor) Handle(ev Event) {
	next, hook := Transition(p.cfg, p.state, ev)
	p.notify(hook)
	p.state = next
}

// OnCharacterKey handles a printable key press.
func (p *Processor) OnCharacterKey(key string) {
	p.Handle(CharacterKey{Key: key})
}

// OnControlKey handles a non-printable key press.
func (p *Processor) OnControlKey(key string) {
	p.Handle(ControlKey{Key: key})
}

// Reset restores the initial state. The config is unchanged.
func (p *Processor) Reset() {
	p.state = State{}
}

// SetBlocked gates all input.
func (p *Processor) SetBlocked(blocked bool) {
	p.cfg.Blocked = blocked
}

// State returns a copy of the current state.
func (p *Processor) State() State {
	return p.state.Clone()
}

// Config returns a copy of the session config.
func (p *Processor) Config() Config {
	cfg := p.cfg
	cfg.Words = slices.Clone(p.cfg.Words)
	return cfg
}

// IsLastWord reports whether the cursor is on the final word.
func (p *Processor) IsLastWord() bool {
	return p.state.IsLastWord(p.cfg)
}

// WordComplete reports whether the active word is fully typed.
func (p *Processor) WordComplete() bool {
	return p.state.WordComplete(p.cfg)
}

func (p *Processor) notify(hook Hook) {
	for _, o := range p.observers {
		switch hook {
		case HookKeyPress:
			o.KeyPressed()
		case HookKeyDown:
			o.KeyDown()
		}
	}
}
