// Package game runs typing games on top of the typing state machine.
package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unsupported names.
var ErrUnknownMode = errors.New("unknown game mode")

// Mode selects how a game ends and how words are supplied.
type Mode string

const (
	// ModeWords ends once a fixed number of words is typed.
	ModeWords Mode = "words"
	// ModeTimed ends when the countdown runs out.
	ModeTimed Mode = "timed"
	// ModeInfinite runs until stopped, refilling words page by page.
	ModeInfinite Mode = "infinite"
	// ModePerfection is a timed game that refuses to advance past mistakes.
	ModePerfection Mode = "perfection"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeWords, ModeTimed, ModeInfinite, ModePerfection}

// ParseMode converts a name into a Mode.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownMode, name, strings.Join(names, ", "))
}

// Timed reports whether the mode runs against a countdown.
func (m Mode) Timed() bool {
	return m == ModeTimed || m == ModePerfection
}

// Paged reports whether finishing the word list loads a fresh page.
func (m Mode) Paged() bool {
	return m != ModeWords
}
