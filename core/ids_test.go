package core

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{
			name:   "valid prefix",
			prefix: "vch",
		},
		{
			name:   "uppercase prefix gets lowercased",
			prefix: "VCH",
		},
		{
			name:   "prefix with spaces gets trimmed",
			prefix: "  evt  ",
		},
	}

	ulidPattern := regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewID(tt.prefix)

			expectedPrefix := strings.ToLower(strings.TrimSpace(tt.prefix)) + "_"
			assert.True(t, strings.HasPrefix(got, expectedPrefix), "NewID() = %v, want prefix %v", got, expectedPrefix)
			assert.Regexp(t, ulidPattern, strings.TrimPrefix(got, expectedPrefix))
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := NewID("vch")
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewIDPanicsOnEmptyPrefix(t *testing.T) {
	assert.Panics(t, func() { NewID("   ") })
}
