package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghijkl", 8, "abcdefg…"},
		{"two\n  lines", 20, "two lines"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
	}
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "0%", FormatRatio(0, 0))
	assert.Equal(t, "50%", FormatRatio(1, 2))
	assert.Equal(t, "100%", FormatRatio(3, 3))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(1, 0))
	assert.Equal(t, 0.25, Ratio(1, 4))
	assert.Equal(t, 1.0, Ratio(5, 4))
}

func TestStatusStyle(t *testing.T) {
	assert.Equal(t, healthyStyle, StatusStyle(project.StatusCompleted))
	assert.Equal(t, errorStyle, StatusStyle(project.StatusFailed))
	assert.Equal(t, warningStyle, StatusStyle(project.StatusEditing))
	assert.Equal(t, dimStyle, StatusStyle("Queued"))
}
