package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/typerush/internal/stats"
	"github.com/verte-zerg/typerush/internal/typing"
)

// ErrInvalidSettings wraps every settings validation failure.
var ErrInvalidSettings = errors.New("invalid game settings")

// WordSource supplies target words.
type WordSource interface {
	Next(n int) []string
}

// Settings configures a Game.
type Settings struct {
	Mode Mode
	// Words is the total for ModeWords and the page size otherwise.
	Words          int
	Duration       time.Duration
	AllowBackspace bool
	ValidateWords  bool
}

// Validate checks settings before a game is built.
func (s Settings) Validate() error {
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if s.Words <= 0 {
		return fmt.Errorf("%w: words must be > 0", ErrInvalidSettings)
	}
	if s.Mode.Timed() && s.Duration <= 0 {
		return fmt.Errorf("%w: %s mode needs a positive duration", ErrInvalidSettings, s.Mode)
	}
	return nil
}

// Totals are counters accumulated over every page of a game.
type Totals struct {
	Words      int
	Characters int
	Correct    int
	Incorrect  int
}

// Outcome reports what a handled event changed at the game level.
type Outcome struct {
	Started    bool
	PageTurned bool
	Finished   bool
}

// Game tracks one game: the active page, totals of earlier pages, and the
// start/pause/stop lifecycle that gates input.
type Game struct {
	settings Settings
	source   WordSource
	proc     *typing.Processor

	past     Totals
	started  bool
	paused   bool
	stopped  bool
	finished bool
}

// New builds a Game and loads its first page.
func New(settings Settings, source WordSource) (*Game, error) {
	if settings.Mode == ModePerfection {
		settings.ValidateWords = true
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	g := &Game{settings: settings, source: source}
	if err := g.loadPage(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadPage() error {
	proc, err := typing.New(typing.Config{
		Words:                  g.source.Next(g.settings.Words),
		ValidateBeforeNextWord: g.settings.ValidateWords,
		AllowBackspace:         g.settings.AllowBackspace,
	}, typing.WithObserver(typing.ObserverFuncs{OnKeyPress: g.markStarted}))
	if err != nil {
		return fmt.Errorf("failed to start page: %w", err)
	}
	g.proc = proc
	g.syncBlocked()
	return nil
}

func (g *Game) markStarted() {
	g.started = true
}

func (g *Game) syncBlocked() {
	g.proc.SetBlocked(g.paused || g.stopped || g.finished)
}

// Handle feeds one input event to the active page. Words mode ends on the
// last letter; paged modes turn the page on the following confirm key.
func (g *Game) Handle(ev typing.Event) (Outcome, error) {
	if g.finished {
		return Outcome{}, nil
	}
	if g.settings.Mode.Paged() && !g.paused && isConfirm(ev) && g.pageDone() {
		g.foldPage(1)
		if err := g.loadPage(); err != nil {
			return Outcome{}, err
		}
		return Outcome{PageTurned: true}, nil
	}

	wasStarted := g.started
	g.proc.Handle(ev)
	out := Outcome{Started: !wasStarted && g.started}

	if g.settings.Mode.Paged() || !g.pageDone() {
		return out, nil
	}
	g.finish(1)
	out.Finished = true
	return out, nil
}

func isConfirm(ev typing.Event) bool {
	key, ok := ev.(typing.CharacterKey)
	return ok && typing.IsConfirmKey(key.Key)
}

// The processor never confirms the final word of a page, so it is counted here.
func (g *Game) pageDone() bool {
	if !g.proc.IsLastWord() || !g.proc.WordComplete() {
		return false
	}
	state := g.proc.State()
	return !g.settings.ValidateWords || len(state.Incorrect) == 0
}

func (g *Game) foldPage(extraWords int) {
	state := g.proc.State()
	g.past.Words += state.WordsCompleted + extraWords
	g.past.Characters += state.CharactersTyped
	g.past.Correct += state.CorrectCharacters()
	g.past.Incorrect += state.IncorrectCharacters()
}

func (g *Game) finish(extraWords int) {
	g.foldPage(extraWords)
	g.finished = true
	g.syncBlocked()
}

// TogglePause pauses or resumes a running game.
func (g *Game) TogglePause() bool {
	if !g.started || g.stopped || g.finished {
		return false
	}
	g.paused = !g.paused
	g.syncBlocked()
	return true
}

// Stop ends a started game early.
func (g *Game) Stop() bool {
	if !g.started || g.stopped || g.finished {
		return false
	}
	g.stopped = true
	g.paused = false
	g.finish(0)
	return true
}

// Timeout ends a timed game when its countdown expires.
func (g *Game) Timeout() {
	if g.finished {
		return
	}
	g.finish(0)
}

// Restart discards progress and loads fresh words.
func (g *Game) Restart() error {
	g.resetLifecycle()
	return g.loadPage()
}

// Retry discards progress but keeps the current page's words.
func (g *Game) Retry() {
	g.resetLifecycle()
	g.proc.Reset()
	g.syncBlocked()
}

func (g *Game) resetLifecycle() {
	g.past = Totals{}
	g.started = false
	g.paused = false
	g.stopped = false
	g.finished = false
}

// Totals returns counters over all pages, including the active one.
func (g *Game) Totals() Totals {
	t := g.past
	if g.finished {
		return t
	}
	state := g.proc.State()
	t.Words += state.WordsCompleted
	t.Characters += state.CharactersTyped
	t.Correct += state.CorrectCharacters()
	t.Incorrect += state.IncorrectCharacters()
	return t
}

// Results summarizes the game for the given elapsed time.
func (g *Game) Results(elapsed time.Duration, samples []float64) stats.Results {
	t := g.Totals()
	return stats.Results{
		Words:      t.Words,
		Characters: t.Characters,
		Correct:    t.Correct,
		Incorrect:  t.Incorrect,
		Elapsed:    elapsed,
		Samples:    samples,
	}
}

// Session returns the active page's config and state for rendering.
func (g *Game) Session() (typing.Config, typing.State) {
	return g.proc.Config(), g.proc.State()
}

// Settings returns the effective settings.
func (g *Game) Settings() Settings { return g.settings }

// Started reports whether the first key has been pressed.
func (g *Game) Started() bool { return g.started }

// Paused reports whether input is paused.
func (g *Game) Paused() bool { return g.paused }

// Stopped reports whether the game was stopped early.
func (g *Game) Stopped() bool { return g.stopped }

// Finished reports whether the game is over for any reason.
func (g *Game) Finished() bool { return g.finished }

// Running reports whether input is currently accepted by a started game.
func (g *Game) Running() bool {
	return g.started && !g.paused && !g.finished
}
