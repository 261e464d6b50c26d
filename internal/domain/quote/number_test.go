package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "Q-2025-001", FormatNumber("Q", 2025, 1))
	assert.Equal(t, "MWD-2024-1234", FormatNumber("MWD", 2024, 1234))
}

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name   string
		issued []string
		want   string
	}{
		{"first of year", nil, "Q-2025-001"},
		{"after highest", []string{"Q-2025-002", "Q-2025-007", "Q-2025-003"}, "Q-2025-008"},
		{"other years ignored", []string{"Q-2024-041"}, "Q-2025-001"},
		{"other prefixes ignored", []string{"X-2025-010", "Q-2025-002"}, "Q-2025-003"},
		{"malformed ignored", []string{"Q-2025-abc", "Q-2025-"}, "Q-2025-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextNumber("Q", 2025, tt.issued))
		})
	}
}
