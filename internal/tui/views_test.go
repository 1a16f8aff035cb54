package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "coffee", 10, "coffee"},
		{"exactly at limit", "coffee", 6, "coffee"},
		{"over limit", "coffee and cake", 10, "coffee an…"},
		{"multi-byte description", "café au lait à emporter", 10, "café au l…"},
		{"multi-byte at the cut", "éééééééééé", 5, "éééé…"},
		{"limit of one", "coffee", 1, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len([]rune(got)), tt.limit)
		})
	}
}
