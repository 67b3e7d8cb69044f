package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		name     string
		status   project.Status
		expected Icon
	}{
		{"completed", project.StatusCompleted, IconCheck},
		{"failed", project.StatusFailed, IconExclamation},
		{"generating", project.StatusGenerating, IconSpinner},
		{"editing", project.StatusEditing, IconSpinner},
		{"unknown", project.Status("Queued"), IconNone},
		{"empty", project.Status(""), IconNone},
		{"wrong_case", project.Status("completed"), IconNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusIcon(tt.status))
		})
	}
}

func TestIcon_HTML(t *testing.T) {
	assert.Equal(t, `<i class="fas fa-check-circle"></i>`, IconCheck.HTML())
	assert.Equal(t, `<i class="fas fa-exclamation-circle"></i>`, IconExclamation.HTML())
	assert.Equal(t, `<i class="fas fa-spinner fa-spin"></i>`, IconSpinner.HTML())
	assert.Empty(t, IconNone.HTML())
	assert.Empty(t, Icon(99).HTML())
}

func TestIcon_Glyph(t *testing.T) {
	assert.NotEmpty(t, IconCheck.Glyph())
	assert.NotEmpty(t, IconExclamation.Glyph())
	assert.NotEmpty(t, IconSpinner.Glyph())
	assert.Empty(t, IconNone.Glyph())
	assert.True(t, IconSpinner.Spins())
	assert.False(t, IconCheck.Spins())
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "todo app", "todo app"},
		{"script", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"ampersand", "a & b", "a &amp; b"},
		{"quotes", `say "hi" it's`, "say &#34;hi&#34; it&#39;s"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeHTML(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, "<")
			assert.NotContains(t, got, ">")
		})
	}
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "status-completed", StatusClass(project.StatusCompleted))
	assert.Equal(t, "status-generating", StatusClass(project.StatusGenerating))
	assert.Equal(t, "status-", StatusClass(""))
}

func TestFormatTimestamp(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"naive_iso", "2024-03-01T10:15:00", "Mar 1, 2024, 10:15 AM"},
		{"naive_iso_micro", "2024-03-01T22:05:09.123456", "Mar 1, 2024, 10:05 PM"},
		{"rfc3339", "2024-12-25T08:00:00Z", "Dec 25, 2024, 08:00 AM"},
		{"space_separated", "2024-07-04 00:30:00", "Jul 4, 2024, 12:30 AM"},
		{"date_only", "2024-01-02", "Jan 2, 2024, 12:00 AM"},
		{"empty", "", InvalidDate},
		{"garbage", "yesterday", InvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimestamp(tt.raw, utc))
		})
	}
}

func TestFormatTimestamp_ConvertsOffsetToLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got := FormatTimestamp("2024-03-01T10:15:00Z", loc)
	assert.Equal(t, "Mar 1, 2024, 12:15 PM", got)
}

func TestFormatTimestamp_DateOnlyIsUTC(t *testing.T) {
	eastern := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, "Feb 29, 2024, 07:00 PM", FormatTimestamp("2024-03-01", eastern))
	assert.Equal(t, "Mar 1, 2024, 10:15 AM", FormatTimestamp("2024-03-01T10:15:00", eastern))
}

func TestFormatTimestamp_NilLocation(t *testing.T) {
	got := FormatTimestamp("2024-03-01T10:15:00", nil)
	assert.True(t, strings.HasPrefix(got, "Mar 1, 2024"), got)
}
