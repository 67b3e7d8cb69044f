package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to width cells, ending in "…" when cut.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// FormatRatio renders part/total as a percentage; 0 when total is 0.
func FormatRatio(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(total)*100)
}

// Ratio returns part/total clamped to [0,1].
func Ratio(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(part) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}

func key(k, label string) string {
	return footerKeyStyle.Render("["+k+"]") + dimStyle.Render(" "+label+"  ")
}

func keys(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, key(pairs[i], pairs[i+1]))
	}
	return footerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}
