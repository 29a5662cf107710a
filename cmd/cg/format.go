package main

import (
	"os"
	"time"

	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 120

// termWidth returns the terminal width for table truncation.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 3 {
		max = 3
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// descWidth returns the column width available for descriptions, given the
// space the fixed columns take.
func descWidth(fixed int) int {
	w := termWidth() - fixed
	if w < 20 {
		return 20
	}
	return w
}

// formatTime renders a timestamp for table output.
func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// formatTimePtr renders a nullable timestamp, with a dash for nil.
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

// orDash substitutes a dash for empty strings in table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
