package typing

// Transition applies ev to s under cfg and returns the resulting state and the
// hook that fired. The input state is never modified.
func Transition(cfg Config, s State, ev Event) (State, Hook) {
	if cfg.Blocked {
		return s, HookNone
	}
	switch ev := ev.(type) {
	case CharacterKey:
		return characterKey(cfg, s, ev.Key), HookKeyPress
	case ControlKey:
		if ev.Key == KeyBackspace && cfg.AllowBackspace {
			return backspace(cfg, s), HookKeyDown
		}
		return s, HookKeyDown
	default:
		return s, HookNone
	}
}

func characterKey(cfg Config, s State, key string) State {
	if s.ActiveWord >= len(cfg.Words) {
		return s
	}
	if s.WordComplete(cfg) {
		if !IsConfirmKey(key) {
			return s
		}
		if cfg.ValidateBeforeNextWord && len(s.Incorrect) > 0 {
			return s
		}
		// The host ends the game on the last word; the cursor stays in range.
		if s.IsLastWord(cfg) {
			return s
		}
		s.ActiveLetter = 0
		s.WordsCompleted++
		s.ActiveWord++
		return s
	}

	expected := []rune(cfg.Words[s.ActiveWord])[s.ActiveLetter]
	if string(expected) != key {
		s.Incorrect = append(s.Incorrect[:len(s.Incorrect):len(s.Incorrect)], s.Cursor())
	}
	s.CharactersTyped++
	s.ActiveLetter++
	return s
}

func backspace(cfg Config, s State) State {
	if s.ActiveWord == 0 && s.ActiveLetter == 0 {
		return s
	}
	s.CharactersTyped--

	target := Position{Word: s.ActiveWord, Letter: s.ActiveLetter - 1}
	if s.ActiveLetter == 0 {
		target = Position{Word: s.ActiveWord - 1, Letter: cfg.WordLen(s.ActiveWord-1) - 1}
	}

	// Only the most recent mistake is checked.
	if n := len(s.Incorrect); n > 0 && s.Incorrect[n-1] == target {
		s.Incorrect = s.Incorrect[: n-1 : n-1]
	}

	s.ActiveWord = target.Word
	s.ActiveLetter = target.Letter
	return s
}
