package merge

import (
	"testing"

	"world-merger/core/region"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	older := region.Record{Timestamp: 1}
	newer := region.Record{Timestamp: 2}

	tests := []struct {
		name        string
		input       string
		wantReplace bool
	}{
		{"Default", "", true},
		{"LastModified", "last-modified", true},
		{"CaseInsensitive", "  Last-Modified ", true},
		{"Always", "always", true},
		{"Never", "never", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRule(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReplace, rule.ShouldReplace(older, newer))
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		rule, err := ParseRule("force")
		assert.Nil(t, rule)
		assert.ErrorContains(t, err, "unknown merge rule")
		assert.ErrorContains(t, err, "always, last-modified, never")
	})
}

func TestBuiltinRules(t *testing.T) {
	older := region.Record{Timestamp: 10}
	newer := region.Record{Timestamp: 20}

	assert.True(t, NewestWins.ShouldReplace(older, newer))
	assert.False(t, NewestWins.ShouldReplace(newer, older))
	assert.False(t, NewestWins.ShouldReplace(newer, newer))

	assert.True(t, AlwaysReplace.ShouldReplace(newer, older))
	assert.False(t, NeverReplace.ShouldReplace(older, newer))
}

func TestRuleFunc(t *testing.T) {
	var calls int
	rule := RuleFunc(func(existing, incoming region.Record) bool {
		calls++
		return incoming.Sectors > existing.Sectors
	})

	assert.True(t, rule.ShouldReplace(region.Record{Sectors: 1}, region.Record{Sectors: 2}))
	assert.Equal(t, 1, calls)
}
