package game

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/typerush/internal/typing"
)

// fixedSource hands out pages from a predefined list, repeating the last one.
type fixedSource struct {
	pages [][]string
	calls int
}

func (f *fixedSource) Next(n int) []string {
	page := f.pages[min(f.calls, len(f.pages)-1)]
	f.calls++
	if len(page) > n {
		page = page[:n]
	}
	return page
}

func typeWord(t *testing.T, g *Game, word string) Outcome {
	t.Helper()
	var last Outcome
	for _, r := range word {
		out, err := g.Handle(typing.CharacterKey{Key: string(r)})
		if err != nil {
			t.Fatalf("handle %q: %v", r, err)
		}
		last = out
	}
	return last
}

func confirm(t *testing.T, g *Game) Outcome {
	t.Helper()
	out, err := g.Handle(typing.CharacterKey{Key: typing.KeySpace})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	return out
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(" " + string(m) + " ")
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("zen"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if !ModePerfection.Timed() || ModeInfinite.Timed() || ModeWords.Paged() || !ModeTimed.Paged() {
		t.Fatalf("unexpected mode properties")
	}
}

func TestNewValidatesSettings(t *testing.T) {
	src := &fixedSource{pages: [][]string{{"a"}}}
	tests := []Settings{
		{Mode: "zen", Words: 1},
		{Mode: ModeWords, Words: 0},
		{Mode: ModeTimed, Words: 5},
	}
	for _, s := range tests {
		if _, err := New(s, src); !errors.Is(err, ErrInvalidSettings) {
			t.Fatalf("settings %+v: expected ErrInvalidSettings, got %v", s, err)
		}
	}
	if _, err := New(Settings{Mode: ModeWords, Words: 1}, &fixedSource{pages: [][]string{{}}}); !errors.Is(err, typing.ErrNoWords) {
		t.Fatalf("expected ErrNoWords for an empty page, got %v", err)
	}
}

func TestWordsModeFinishesOnLastWord(t *testing.T) {
	g, err := New(Settings{Mode: ModeWords, Words: 2, AllowBackspace: true}, &fixedSource{pages: [][]string{{"ab", "cd"}}})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	out := typeWord(t, g, "a")
	if !out.Started || !g.Started() {
		t.Fatalf("expected first key to start the game")
	}
	typeWord(t, g, "b")
	confirm(t, g)
	out = typeWord(t, g, "cx")
	if !out.Finished || !g.Finished() {
		t.Fatalf("expected game to finish on last letter")
	}

	totals := g.Totals()
	want := Totals{Words: 2, Characters: 4, Correct: 3, Incorrect: 1}
	if totals != want {
		t.Fatalf("unexpected totals %+v, want %+v", totals, want)
	}

	// Input after the end changes nothing.
	typeWord(t, g, "zz")
	if g.Totals() != want {
		t.Fatalf("totals changed after finish: %+v", g.Totals())
	}

	res := g.Results(30*time.Second, nil)
	if res.WPM() != 4 || res.Accuracy() != 75 {
		t.Fatalf("unexpected results wpm=%d acc=%d", res.WPM(), res.Accuracy())
	}
}

func TestPerfectionWaitsForCorrection(t *testing.T) {
	g, err := New(Settings{Mode: ModePerfection, Words: 1, Duration: time.Minute, AllowBackspace: true},
		&fixedSource{pages: [][]string{{"ab"}, {"cd"}}})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if !g.Settings().ValidateWords {
		t.Fatalf("perfection mode must validate words")
	}

	out := typeWord(t, g, "ax")
	if out.PageTurned {
		t.Fatalf("page must not turn with a mistake outstanding")
	}
	if _, err := g.Handle(typing.ControlKey{Key: typing.KeyBackspace}); err != nil {
		t.Fatalf("backspace: %v", err)
	}
	out = typeWord(t, g, "b")
	if out.PageTurned {
		t.Fatalf("page must wait for the confirm key")
	}
	if out = confirm(t, g); !out.PageTurned {
		t.Fatalf("expected page turn after correction")
	}
	cfg, state := g.Session()
	if cfg.Words[0] != "cd" || state.CharactersTyped != 0 {
		t.Fatalf("expected fresh page, got %v %+v", cfg.Words, state)
	}
	if got := g.Totals(); got.Words != 1 || got.Characters != 2 || got.Incorrect != 0 {
		t.Fatalf("unexpected totals %+v", got)
	}
}

func TestInfinitePagesAccumulate(t *testing.T) {
	src := &fixedSource{pages: [][]string{{"a", "b"}, {"c", "d"}}}
	g, err := New(Settings{Mode: ModeInfinite, Words: 2}, src)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	typeWord(t, g, "a")
	confirm(t, g)
	out := typeWord(t, g, "b")
	if out.PageTurned || src.calls != 1 {
		t.Fatalf("page turned before confirm, outcome %+v calls %d", out, src.calls)
	}
	typeWord(t, g, "q")
	if _, state := g.Session(); state.CharactersTyped != 2 || len(state.Incorrect) != 0 {
		t.Fatalf("non-confirm key on a finished page must be ignored, got %+v", state)
	}
	if out = confirm(t, g); !out.PageTurned || src.calls != 2 {
		t.Fatalf("expected second page, outcome %+v calls %d", out, src.calls)
	}
	typeWord(t, g, "x")
	if got := g.Totals(); got != (Totals{Words: 2, Characters: 3, Correct: 2, Incorrect: 1}) {
		t.Fatalf("unexpected totals %+v", got)
	}
	if !g.Stop() || !g.Stopped() || !g.Finished() {
		t.Fatalf("expected stop to end the game")
	}
	if got := g.Totals(); got != (Totals{Words: 2, Characters: 3, Correct: 2, Incorrect: 1}) {
		t.Fatalf("stop changed totals %+v", got)
	}
}

func TestConfirmAcrossPageBoundaryIsNotAMistake(t *testing.T) {
	for _, mode := range []Mode{ModeInfinite, ModeTimed, ModePerfection} {
		src := &fixedSource{pages: [][]string{{"ab", "cd"}, {"ef", "gh"}}}
		g, err := New(Settings{Mode: mode, Words: 2, Duration: time.Minute}, src)
		if err != nil {
			t.Fatalf("%s: new game: %v", mode, err)
		}
		for _, word := range []string{"ab", "cd", "ef"} {
			typeWord(t, g, word)
			confirm(t, g)
		}
		cfg, state := g.Session()
		if cfg.Words[0] != "ef" || state.ActiveWord != 1 || state.ActiveLetter != 0 || len(state.Incorrect) != 0 {
			t.Fatalf("%s: unexpected page state %v %+v", mode, cfg.Words, state)
		}
		if got := g.Totals(); got != (Totals{Words: 3, Characters: 6, Correct: 6}) {
			t.Fatalf("%s: unexpected totals %+v", mode, got)
		}
	}
}

func TestPausedConfirmDoesNotTurnPage(t *testing.T) {
	src := &fixedSource{pages: [][]string{{"ab"}, {"cd"}}}
	g, err := New(Settings{Mode: ModeInfinite, Words: 1}, src)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	typeWord(t, g, "ab")
	g.TogglePause()
	if out := confirm(t, g); out.PageTurned {
		t.Fatalf("paused game must not turn the page")
	}
	g.TogglePause()
	if out := confirm(t, g); !out.PageTurned {
		t.Fatalf("expected page turn after resume")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g, err := New(Settings{Mode: ModeTimed, Words: 3, Duration: time.Minute}, &fixedSource{pages: [][]string{{"abc"}}})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.TogglePause() {
		t.Fatalf("pause must wait for the game to start")
	}
	typeWord(t, g, "a")
	if !g.TogglePause() || !g.Paused() || g.Running() {
		t.Fatalf("expected paused game")
	}
	typeWord(t, g, "b")
	if _, state := g.Session(); state.ActiveLetter != 1 {
		t.Fatalf("expected paused input to be ignored, got %+v", state)
	}
	g.TogglePause()
	typeWord(t, g, "b")
	if _, state := g.Session(); state.ActiveLetter != 2 {
		t.Fatalf("expected input after resume, got %+v", state)
	}

	g.Timeout()
	if !g.Finished() || g.Stopped() {
		t.Fatalf("expected timeout to finish without stop")
	}
	if got := g.Totals(); got.Characters != 2 || got.Words != 0 {
		t.Fatalf("unexpected totals %+v", got)
	}
}

func TestRestartAndRetry(t *testing.T) {
	src := &fixedSource{pages: [][]string{{"ab"}, {"cd"}}}
	g, err := New(Settings{Mode: ModeWords, Words: 1, AllowBackspace: true}, src)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	typeWord(t, g, "a")

	g.Retry()
	cfg, state := g.Session()
	if g.Started() || cfg.Words[0] != "ab" || state.CharactersTyped != 0 {
		t.Fatalf("retry should keep words and reset state: %v %+v", cfg.Words, state)
	}

	typeWord(t, g, "ab")
	if !g.Finished() {
		t.Fatalf("expected finish")
	}
	if err := g.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	cfg, _ = g.Session()
	if g.Finished() || g.Started() || cfg.Words[0] != "cd" || g.Totals() != (Totals{}) {
		t.Fatalf("restart should load fresh words and clear totals: %v %+v", cfg.Words, g.Totals())
	}
	typeWord(t, g, "c")
	if _, state := g.Session(); state.ActiveLetter != 1 {
		t.Fatalf("expected input after restart")
	}
}
