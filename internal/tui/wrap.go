package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typerush/internal/typing"
)

type letterStatus int

const (
	statusNone letterStatus = iota
	statusHighlighted
	statusIncorrect
	statusStandBy
	statusCurrent
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
	cursor  bool
}

var statusStyles = map[letterStatus]lipgloss.Style{
	statusNone:        pendingStyle,
	statusHighlighted: correctStyle,
	statusIncorrect:   incorrectStyle,
	statusStandBy:     standByStyle,
	statusCurrent:     currentWordStyle,
}

func letterStatusAt(state typing.State, pos typing.Position, standBy bool) letterStatus {
	cursor := state.Cursor()
	if pos.Before(cursor) {
		if state.IsIncorrect(pos) {
			return statusIncorrect
		}
		return statusHighlighted
	}
	if standBy {
		return statusStandBy
	}
	if pos.Word == cursor.Word {
		return statusCurrent
	}
	return statusNone
}

// buildStyledRunes lays out every word followed by a separator space. The
// cursor underlines the next letter, or the separator once a word is complete.
func buildStyledRunes(cfg typing.Config, state typing.State, standBy bool) []styledRune {
	out := make([]styledRune, 0, len(cfg.Words)*6)
	for wi, word := range cfg.Words {
		for li, r := range []rune(word) {
			pos := typing.Position{Word: wi, Letter: li}
			style := statusStyles[letterStatusAt(state, pos, standBy)]
			isCursor := pos == state.Cursor()
			if isCursor {
				style = style.Underline(true)
			}
			out = append(out, styledRune{
				s:      style.Render(string(r)),
				width:  runewidth.RuneWidth(r),
				cursor: isCursor,
			})
		}
		sepCursor := wi == state.ActiveWord && state.WordComplete(cfg)
		sepStyle := pendingStyle
		if sepCursor {
			sepStyle = cursorStyle
		}
		out = append(out, styledRune{
			s:       sepStyle.Render(" "),
			width:   1,
			isSpace: true,
			cursor:  sepCursor,
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, splitting at
// spaces where possible, and returns the index of the line holding the cursor.
func wrapStyledRunes(runes []styledRune, width int) ([]string, int) {
	if width <= 0 {
		return []string{renderStyledRunes(runes)}, 0
	}
	var lines []string
	cursorLine := 0
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpaceIdx := -1

	flush := func(part []styledRune) {
		for _, item := range part {
			if item.cursor {
				cursorLine = len(lines)
			}
		}
		lines = append(lines, renderStyledRunes(part))
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				flush(line[:lastSpaceIdx+1])
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
			} else {
				flush(line)
				line = line[:0]
			}
			lineWidth = lineWidthOf(line)
			lastSpaceIdx = lastSpaceIndex(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	if len(line) > 0 {
		flush(line)
	}
	return lines, cursorLine
}

// visibleLines returns up to count lines keeping the cursor line second from the top.
func visibleLines(lines []string, cursorLine, count int) []string {
	if count <= 0 || len(lines) <= count {
		return lines
	}
	start := max(0, cursorLine-1)
	if start+count > len(lines) {
		start = len(lines) - count
	}
	return lines[start : start+count]
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
