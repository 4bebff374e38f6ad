// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typerush/internal/game"
	"github.com/verte-zerg/typerush/internal/stats"
)

const (
	clockInterval = 100 * time.Millisecond
	visibleRows   = 3
)

// Model implements the Bubble Tea typing UI.
type Model struct {
	game   *game.Game
	lang   string
	source string

	stopwatch stopwatch.Model
	timer     timer.Model
	throttle  *stats.Throttle
	samples   []float64

	keys keyMap
	help help.Model

	width  int
	height int

	results *stats.Results
	errMsg  string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	standByStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	resultStyle      = lipgloss.NewStyle().
				Padding(1, 2).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a typing TUI model around a game.
func NewModel(g *game.Game, lang, source string) *Model {
	m := &Model{
		game:     g,
		lang:     lang,
		source:   source,
		throttle: stats.NewThrottle(stats.DefaultThrottleInterval),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.resetClocks()
	return m
}

// Results returns the summary of the last finished game.
func (m *Model) Results() (stats.Results, bool) {
	if m.results == nil {
		return stats.Results{}, false
	}
	return *m.results, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case stopwatch.TickMsg, stopwatch.StartStopMsg, stopwatch.ResetMsg:
		var cmd tea.Cmd
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		m.sample()
		m.refreshWPM(time.Now())
		return m, cmd
	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.game.Timeout()
		return m, m.finish()
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		if err := m.game.Restart(); err != nil {
			log.Printf("restart failed: %v", err)
			m.errMsg = err.Error()
			return m, nil
		}
		m.resetClocks()
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		m.game.Retry()
		m.resetClocks()
		return m, nil
	case key.Matches(msg, m.keys.Stop):
		if !m.game.Stop() {
			return m, nil
		}
		return m, m.finish()
	case key.Matches(msg, m.keys.Pause):
		if !m.game.TogglePause() {
			return m, nil
		}
		cmds := []tea.Cmd{m.stopwatch.Toggle()}
		if m.game.Settings().Mode.Timed() {
			cmds = append(cmds, m.timer.Toggle())
		}
		return m, tea.Batch(cmds...)
	}

	var cmds []tea.Cmd
	for _, ev := range keyEvents(msg) {
		out, err := m.game.Handle(ev)
		if err != nil {
			log.Printf("failed to handle key: %v", err)
			m.errMsg = err.Error()
			return m, nil
		}
		if out.Started {
			cmds = append(cmds, m.startClocks())
		}
		if out.Finished {
			cmds = append(cmds, m.finish())
			break
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) startClocks() tea.Cmd {
	cmds := []tea.Cmd{m.stopwatch.Start()}
	if m.game.Settings().Mode.Timed() {
		cmds = append(cmds, m.timer.Init())
	}
	return tea.Batch(cmds...)
}

// resetClocks replaces both clocks so ticks from a previous game are ignored.
func (m *Model) resetClocks() {
	m.stopwatch = stopwatch.NewWithInterval(clockInterval)
	m.timer = timer.NewWithInterval(m.game.Settings().Duration, time.Second)
	m.throttle.Reset()
	m.samples = nil
	m.results = nil
	m.errMsg = ""
}

func (m *Model) finish() tea.Cmd {
	res := m.game.Results(m.elapsed(), m.samples)
	m.results = &res
	log.Printf("game finished: %d wpm, %d%% accuracy", res.WPM(), res.Accuracy())
	return tea.Batch(m.stopwatch.Stop(), m.timer.Stop())
}

func (m *Model) elapsed() time.Duration {
	return m.stopwatch.Elapsed()
}

// sample records one WPM reading per elapsed second.
func (m *Model) sample() {
	if !m.game.Running() {
		return
	}
	secs := int(m.elapsed() / time.Second)
	if secs == 0 || secs <= len(m.samples) {
		return
	}
	wpm := stats.WordsPerMinute(m.game.Totals().Words, m.elapsed())
	m.samples = append(m.samples, float64(wpm))
}

// refreshWPM offers the current WPM to the status line throttle.
func (m *Model) refreshWPM(now time.Time) {
	if !m.game.Running() {
		return
	}
	m.throttle.Update(now, stats.WordsPerMinute(m.game.Totals().Words, m.elapsed()))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.results != nil {
		return m.place(m.renderResults())
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 40
	}
	cfg, state := m.game.Session()
	standBy := !m.game.Running()
	lines, cursorLine := wrapStyledRunes(buildStyledRunes(cfg, state, standBy), contentWidth)
	words := strings.Join(visibleLines(lines, cursorLine, visibleRows), "\n")

	body := lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(), "", words)
	content := lipgloss.NewStyle().Width(contentWidth).Render(body)
	return m.place(content)
}

func (m *Model) place(content string) string {
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderStatus() string {
	settings := m.game.Settings()
	segments := []string{string(settings.Mode), m.lang}
	if !m.game.Started() {
		segments = append(segments, m.source, "start typing")
		return footerStyle.Render(strings.Join(segments, " · "))
	}
	segments = append(segments, m.renderClock())

	totals := m.game.Totals()
	segments = append(segments,
		fmt.Sprintf("%d wpm", m.throttle.Value()),
		fmt.Sprintf("%d%%", stats.Accuracy(totals.Correct, totals.Characters)),
		fmt.Sprintf("%d/%d/%d chars", totals.Characters, totals.Correct, totals.Incorrect),
	)
	if m.game.Paused() {
		segments = append(segments, "paused")
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}

func (m *Model) renderClock() string {
	if m.game.Settings().Mode.Timed() {
		return stats.FormatElapsed(m.timer.Timeout)
	}
	return stats.FormatElapsed(m.elapsed())
}

func (m *Model) renderResults() string {
	r := *m.results
	title := "Finished"
	if m.game.Stopped() {
		title = "Stopped"
	}
	lines := []string{
		correctStyle.Bold(true).Render(title),
		"",
		fmt.Sprintf("%-12s %d", "wpm", r.WPM()),
		fmt.Sprintf("%-12s %d%%", "accuracy", r.Accuracy()),
		fmt.Sprintf("%-12s %d", "characters", r.Characters),
		fmt.Sprintf("%-12s %d", "correct", r.Correct),
		fmt.Sprintf("%-12s %d", "incorrect", r.Incorrect),
		fmt.Sprintf("%-12s %s", "time", stats.FormatElapsed(r.Elapsed)),
	}
	if len(r.Samples) > 1 {
		lines = append(lines, "", stats.Sparkline(stats.Downsample(r.Samples, 40)))
	}
	return resultStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return incorrectStyle.Render(m.errMsg)
	}
	return m.help.View(m.keys)
}
