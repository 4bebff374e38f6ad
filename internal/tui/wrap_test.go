package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typerush/internal/typing"
)

func TestLetterStatusAt(t *testing.T) {
	state := typing.State{
		ActiveWord:      1,
		ActiveLetter:    1,
		CharactersTyped: 3,
		Incorrect:       []typing.Position{{Word: 0, Letter: 1}},
	}
	tests := []struct {
		pos     typing.Position
		standBy bool
		want    letterStatus
	}{
		{pos: typing.Position{Word: 0, Letter: 0}, want: statusHighlighted},
		{pos: typing.Position{Word: 0, Letter: 1}, want: statusIncorrect},
		{pos: typing.Position{Word: 1, Letter: 0}, want: statusHighlighted},
		{pos: typing.Position{Word: 1, Letter: 1}, want: statusCurrent},
		{pos: typing.Position{Word: 2, Letter: 0}, want: statusNone},
		{pos: typing.Position{Word: 2, Letter: 0}, standBy: true, want: statusStandBy},
		{pos: typing.Position{Word: 0, Letter: 1}, standBy: true, want: statusIncorrect},
	}
	for _, tt := range tests {
		if got := letterStatusAt(state, tt.pos, tt.standBy); got != tt.want {
			t.Fatalf("status at %v (standBy=%v) = %v, want %v", tt.pos, tt.standBy, got, tt.want)
		}
	}
}

func TestBuildStyledRunesCursor(t *testing.T) {
	cfg := typing.Config{Words: []string{"ab", "cd"}}

	runes := buildStyledRunes(cfg, typing.State{ActiveLetter: 1, CharactersTyped: 1}, false)
	if len(runes) != 6 {
		t.Fatalf("expected 6 cells, got %d", len(runes))
	}
	if !runes[1].cursor || cursorCount(runes) != 1 {
		t.Fatalf("expected cursor on second letter")
	}
	if !runes[2].isSpace || !runes[5].isSpace {
		t.Fatalf("expected separators after each word")
	}

	runes = buildStyledRunes(cfg, typing.State{ActiveLetter: 2, CharactersTyped: 2}, false)
	if !runes[2].cursor || cursorCount(runes) != 1 {
		t.Fatalf("expected cursor on separator of a completed word")
	}
}

func TestWrapStyledRunesTracksCursorLine(t *testing.T) {
	cfg := typing.Config{Words: []string{"one", "two", "six", "ten"}}
	state := typing.State{ActiveWord: 2, ActiveLetter: 0, CharactersTyped: 6, WordsCompleted: 2}
	lines, cursorLine := wrapStyledRunes(buildStyledRunes(cfg, state, false), 8)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if cursorLine != 1 {
		t.Fatalf("expected cursor on second line, got %d", cursorLine)
	}
	if !strings.Contains(lines[0], "o") || !strings.Contains(lines[1], "s") {
		t.Fatalf("unexpected wrapping: %q", lines)
	}
}

func TestWrapStyledRunesBreaksLongWords(t *testing.T) {
	cfg := typing.Config{Words: []string{"abcdefgh"}}
	lines, _ := wrapStyledRunes(buildStyledRunes(cfg, typing.State{}, false), 3)
	if len(lines) != 3 {
		t.Fatalf("expected hard breaks, got %q", lines)
	}
}

func TestVisibleLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	tests := []struct {
		cursor int
		want   string
	}{
		{cursor: 0, want: "abc"},
		{cursor: 2, want: "bcd"},
		{cursor: 4, want: "cde"},
	}
	for _, tt := range tests {
		if got := strings.Join(visibleLines(lines, tt.cursor, 3), ""); got != tt.want {
			t.Fatalf("cursor %d: got %q, want %q", tt.cursor, got, tt.want)
		}
	}
	if got := visibleLines(lines[:2], 1, 3); len(got) != 2 {
		t.Fatalf("expected all lines when fewer than count")
	}
}

func cursorCount(runes []styledRune) int {
	n := 0
	for _, r := range runes {
		if r.cursor {
			n++
		}
	}
	return n
}
