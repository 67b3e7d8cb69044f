// Package format holds the pure presentation helpers shared by every view:
// status icons, HTML escaping and timestamp display.
package format

import (
	"html"
	"strings"
	"time"

	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

// Icon is the glyph shown next to a status label.
type Icon int

const (
	// IconNone is used for statuses without a mapping.
	IconNone Icon = iota
	// IconCheck marks a completed project.
	IconCheck
	// IconExclamation marks a failed project.
	IconExclamation
	// IconSpinner marks a project the service is working on.
	IconSpinner
)

// StatusIcon maps a status to its icon. Unknown statuses get IconNone.
func StatusIcon(s project.Status) Icon {
	switch s {
	case project.StatusCompleted:
		return IconCheck
	case project.StatusFailed:
		return IconExclamation
	case project.StatusGenerating, project.StatusEditing:
		return IconSpinner
	default:
		return IconNone
	}
}

// HTML returns the icon markup, or "" for IconNone.
func (i Icon) HTML() string {
	switch i {
	case IconCheck:
		return `<i class="fas fa-check-circle"></i>`
	case IconExclamation:
		return `<i class="fas fa-exclamation-circle"></i>`
	case IconSpinner:
		return `<i class="fas fa-spinner fa-spin"></i>`
	default:
		return ""
	}
}

// Glyph returns a terminal-friendly symbol, or "" for IconNone.
func (i Icon) Glyph() string {
	switch i {
	case IconCheck:
		return "✓"
	case IconExclamation:
		return "✗"
	case IconSpinner:
		return "◌"
	default:
		return ""
	}
}

// Spins reports whether the icon is animated.
func (i Icon) Spins() bool {
	return i == IconSpinner
}

// String returns a short name for logs and tests.
func (i Icon) String() string {
	switch i {
	case IconCheck:
		return "check"
	case IconExclamation:
		return "exclamation"
	case IconSpinner:
		return "spinner"
	default:
		return "none"
	}
}

// EscapeHTML makes s safe for insertion as element text or a quoted
// attribute value.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// StatusClass returns the CSS class of a status badge, e.g. "status-completed".
func StatusClass(s project.Status) string {
	return "status-" + strings.ToLower(string(s))
}

// InvalidDate is shown for timestamps that cannot be parsed.
const InvalidDate = "Invalid Date"

// DisplayLayout renders like en-US "Mar 1, 2024, 10:15 AM" with a two-digit hour.
const DisplayLayout = "Jan 2, 2006, 03:04 PM"

// Timestamps without an offset are interpreted in the display location.
// Bare dates are handled separately in ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC1123,
	time.RFC1123Z,
}

// FormatTimestamp renders raw in loc using DisplayLayout.
// A nil loc means time.Local.
func FormatTimestamp(raw string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, ok := ParseTimestamp(raw, loc)
	if !ok {
		return InvalidDate
	}
	return t.In(loc).Format(DisplayLayout)
}

// ParseTimestamp tries the known layouts in order.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	// A bare date is midnight UTC, not local midnight.
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
