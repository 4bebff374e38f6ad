// Package typing implements the typing-session state machine.
package typing

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

var (
	// ErrNoWords is returned when a session is configured without target words.
	ErrNoWords = errors.New("word list is empty")
	// ErrEmptyWord is returned when a target word has no characters.
	ErrEmptyWord = errors.New("word is empty")
)

// Config defines the target words and input policies of a session.
type Config struct {
	Words                  []string
	Blocked                bool
	ValidateBeforeNextWord bool
	AllowBackspace         bool
}

// Validate reports whether the config can drive a session.
func (c Config) Validate() error {
	if len(c.Words) == 0 {
		return ErrNoWords
	}
	for i, w := range c.Words {
		if w == "" {
			return fmt.Errorf("word %d: %w", i, ErrEmptyWord)
		}
	}
	return nil
}

// WordLen returns the rune length of the word at index i.
func (c Config) WordLen(i int) int {
	return utf8.RuneCountInString(c.Words[i])
}

// Position identifies a letter inside the word list.
type Position struct {
	Word   int
	Letter int
}

// Before reports whether p comes strictly before o in typing order.
func (p Position) Before(o Position) bool {
	if p.Word != o.Word {
		return p.Word < o.Word
	}
	return p.Letter < o.Letter
}

// State is the mutable part of a session.
type State struct {
	ActiveWord      int
	ActiveLetter    int
	Incorrect       []Position
	WordsCompleted  int
	CharactersTyped int
}

// Cursor returns the position the next keystroke applies to.
func (s State) Cursor() Position {
	return Position{Word: s.ActiveWord, Letter: s.ActiveLetter}
}

// CorrectCharacters returns the number of typed characters that matched.
func (s State) CorrectCharacters() int {
	return s.CharactersTyped - len(s.Incorrect)
}

// IncorrectCharacters returns the number of outstanding mistakes.
func (s State) IncorrectCharacters() int {
	return len(s.Incorrect)
}

// IsIncorrect reports whether pos is recorded as a mistake.
func (s State) IsIncorrect(pos Position) bool {
	return slices.Contains(s.Incorrect, pos)
}

// IsLastWord reports whether the cursor is on the final word.
func (s State) IsLastWord(cfg Config) bool {
	return s.ActiveWord >= len(cfg.Words)-1
}

// WordComplete reports whether the active word is fully typed and waits for a confirm key.
func (s State) WordComplete(cfg Config) bool {
	if s.ActiveWord >= len(cfg.Words) {
		return false
	}
	return s.ActiveLetter == cfg.WordLen(s.ActiveWord)
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Incorrect = slices.Clone(s.Incorrect)
	return s
}
