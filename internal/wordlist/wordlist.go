// Package wordlist loads word lists from files or the built-in set.
package wordlist

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed data/*.txt
var builtin embed.FS

// ErrUnknownLanguage is returned when no word list exists for a language.
var ErrUnknownLanguage = errors.New("unknown language")

// Source describes where a word list was loaded from.
type Source struct {
	Lang string
	// Path is empty for built-in lists.
	Path string
}

func (s Source) String() string {
	if s.Path == "" {
		return "builtin:" + s.Lang
	}
	return s.Path
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

// Resolve loads the word list for lang, preferring a user list in dir over
// the built-in one. Words rejected by the language filter are dropped.
func Resolve(lang, dir string) ([]string, Source, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, Source{}, fmt.Errorf("language must not be empty")
	}

	var (
		words []string
		src   = Source{Lang: lang}
	)
	path := filepath.Join(dir, lang+".txt")
	userWords, err := LoadWords(path)
	switch {
	case err == nil:
		words = userWords
		src.Path = path
	case errors.Is(err, fs.ErrNotExist):
		words, err = loadBuiltin(lang)
		if err != nil {
			return nil, Source{}, err
		}
	default:
		return nil, Source{}, fmt.Errorf("failed to load %s: %w", path, err)
	}

	filter := FilterForLang(lang)
	kept := words[:0]
	for _, w := range words {
		if filter(w) {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil, Source{}, fmt.Errorf("word list %s has no usable words", src)
	}
	return kept, src, nil
}

// Languages lists built-in languages and user lists in dir, sorted and deduplicated.
func Languages(dir string) ([]string, error) {
	set := map[string]struct{}{}
	entries, err := fs.ReadDir(builtin, "data")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		set[strings.TrimSuffix(entry.Name(), ".txt")] = struct{}{}
	}

	userEntries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read word list directory: %w", err)
	}
	for _, entry := range userEntries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		set[strings.TrimSuffix(name, ".txt")] = struct{}{}
	}

	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

func loadBuiltin(lang string) ([]string, error) {
	file, err := builtin.Open("data/" + lang + ".txt")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w %q", ErrUnknownLanguage, lang)
		}
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return readWords(file)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
