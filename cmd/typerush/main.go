// Package main provides the CLI entrypoint for typerush.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typerush/internal/config"
	"github.com/verte-zerg/typerush/internal/game"
	"github.com/verte-zerg/typerush/internal/generator"
	"github.com/verte-zerg/typerush/internal/model"
	"github.com/verte-zerg/typerush/internal/stats"
	"github.com/verte-zerg/typerush/internal/tui"
	"github.com/verte-zerg/typerush/internal/wordlist"
)

const (
	defaultLang     = "en"
	defaultMode     = string(game.ModeWords)
	defaultWords    = 25
	defaultDuration = 30 * time.Second
	defaultCaps     = 0.0
	defaultPunct    = 0.0
	debugEnv        = "TYPERUSH_DEBUG"
)

const defaultPunctSet = ".,!?;:\"'()-"

var (
	gameLang          string
	gameMode          string
	gameWords         int
	gameDuration      time.Duration
	gameCaps          float64
	gamePunct         float64
	gamePunctSet      string
	gameBackspace     bool
	gameValidateWords bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typerush",
		Short:         "Terminal typing speed game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	rootCmd.Flags().StringVar(&gameLang, "lang", defaultLang, "language code")
	rootCmd.Flags().StringVar(&gameMode, "mode", defaultMode, "game mode: "+modeNames())
	rootCmd.Flags().IntVar(&gameWords, "words", defaultWords, "words per game (page size in paged modes)")
	rootCmd.Flags().DurationVar(&gameDuration, "duration", defaultDuration, "countdown for timed and perfection modes")
	rootCmd.Flags().Float64Var(&gameCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&gamePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&gamePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().BoolVar(&gameBackspace, "backspace", true, "allow correcting typed letters")
	rootCmd.Flags().BoolVar(&gameValidateWords, "validate-words", false, "refuse to advance while a mistake is outstanding")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())

	return rootCmd
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &gameLang, fileCfg.Game.Lang)
	applyStringConfig(cmd, "mode", &gameMode, fileCfg.Game.Mode)
	applyIntConfig(cmd, "words", &gameWords, fileCfg.Game.Words)
	applyDurationConfig(cmd, "duration", &gameDuration, fileCfg.Game.Duration)
	applyFloatConfig(cmd, "caps", &gameCaps, fileCfg.Game.CapsPct)
	applyFloatConfig(cmd, "punct", &gamePunct, fileCfg.Game.PunctPct)
	applyStringConfig(cmd, "punct-set", &gamePunctSet, fileCfg.Game.PunctSet)
	applyBoolConfig(cmd, "backspace", &gameBackspace, fileCfg.Game.Backspace)
	applyBoolConfig(cmd, "validate-words", &gameValidateWords, fileCfg.Game.ValidateWords)

	cfg := model.Config{
		Lang:           gameLang,
		Mode:           gameMode,
		Words:          gameWords,
		Duration:       gameDuration,
		CapsPct:        gameCaps,
		PunctPct:       gamePunct,
		PunctSet:       gamePunctSet,
		AllowBackspace: gameBackspace,
		ValidateWords:  gameValidateWords,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, src, err := wordlist.Resolve(cfg.Lang, config.DefaultWordListDir())
	if err != nil {
		return wordListLoadError(cfg.Lang, err)
	}

	if os.Getenv(debugEnv) != "" {
		logPath := config.DefaultLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err := tea.LogToFile(logPath, "typerush")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				logErrf("failed to close log file: %v\n", cerr)
			}
		}()
	}

	g, err := newGame(cfg, words)
	if err != nil {
		return err
	}

	m := tui.NewModel(g, cfg.Lang, src.String())
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if fm, ok := final.(*tui.Model); ok {
		if res, ok := fm.Results(); ok {
			if err := stats.RenderResults(cmd.OutOrStdout(), res); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
		}
	}
	return nil
}

func newGame(cfg model.Config, words []string) (*game.Game, error) {
	mode, err := game.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	source := generator.NewSource(generator.New(), words, generator.Options{
		CapsPct:  cfg.CapsPct,
		PunctPct: cfg.PunctPct,
		PunctSet: []rune(cfg.PunctSet),
	})
	g, err := game.New(game.Settings{
		Mode:           mode,
		Words:          cfg.Words,
		Duration:       cfg.Duration,
		AllowBackspace: cfg.AllowBackspace,
		ValidateWords:  cfg.ValidateWords,
	}, source)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	return g, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := wordlist.Languages(config.DefaultWordListDir())
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typerush configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# lang = %q               # Language code
# mode = %q            # One of: %s
# words = %d              # Words per game (page size in paged modes)
# duration = %q          # Countdown for timed and perfection modes
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q
# backspace = true        # Allow correcting typed letters
# validate-words = false  # Refuse to advance while a mistake is outstanding
`,
		defaultLang,
		defaultMode,
		modeNames(),
		defaultWords,
		defaultDuration.String(),
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
	)
}

func modeNames() string {
	names := make([]string, 0, len(game.Modes))
	for _, m := range game.Modes {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

func validateConfig(cfg model.Config) error {
	mode, err := game.ParseMode(cfg.Mode)
	if err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if mode.Timed() && cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0 in %s mode", cfg.Mode)
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	return nil
}

func wordListLoadError(lang string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("language %q not found", lang),
		fmt.Sprintf("Add one at: %s", config.DefaultWordListPath(lang)),
		"Run: typerush langs",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
