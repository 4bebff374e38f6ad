package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"
)

const (
	colorBold           = "\x1b[1m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
	sparkLabel          = "WPM trend "
)

// RenderResults prints a results table and a WPM trend line.
func RenderResults(w io.Writer, r Results) error {
	title := "Results"
	if shouldUseColor(w) {
		title = colorBold + title + colorReset
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	headers := []string{"Metric", "Value"}
	rows := [][]string{
		{"Words per minute", strconv.Itoa(r.WPM())},
		{"Accuracy", fmt.Sprintf("%d%%", r.Accuracy())},
		{"Total characters", strconv.Itoa(r.Characters)},
		{"Correct characters", strconv.Itoa(r.Correct)},
		{"Incorrect characters", strconv.Itoa(r.Incorrect)},
		{"Words", strconv.Itoa(r.Words)},
		{"Gross WPM", fmt.Sprintf("%.1f", r.GrossWPM())},
		{"CPM", fmt.Sprintf("%.1f", r.CPM())},
		{"Time", FormatElapsed(r.Elapsed)},
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(r.Samples) > 1 {
		width := outputWidth(w) - displayWidth(sparkLabel)
		line := sparkLabel + Sparkline(Downsample(r.Samples, width))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatElapsed renders a duration as m:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func outputWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
