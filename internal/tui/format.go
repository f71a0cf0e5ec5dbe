package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// fitLine truncates a rendered line to the given display width,
// accounting for ANSI sequences and wide runes.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// wrapText wraps plain text to the given display width.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "")
}

// renderMarkdown renders coach output with glamour. Falls back to the
// raw text when rendering fails.
func renderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// formatDate renders a nullable timestamp as a short date.
func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("2006-01-02")
}

// formatPercent renders a 0..100 progress value.
func formatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// moodGlyphs maps the 1..5 mood scale to a display rune.
var moodGlyphs = []string{"😞", "😕", "😐", "🙂", "😄"}

func moodGlyph(mood int) string {
	if mood < 1 || mood > len(moodGlyphs) {
		return "?"
	}
	return moodGlyphs[mood-1]
}
