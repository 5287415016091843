package merge

import (
	"fmt"
	"sort"
	"strings"

	"world-merger/core/region"
)

// Rule decides whether an incoming record replaces an existing one.
type Rule interface {
	ShouldReplace(existing, incoming region.Record) bool
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(existing, incoming region.Record) bool

// ShouldReplace calls f.
func (f RuleFunc) ShouldReplace(existing, incoming region.Record) bool {
	return f(existing, incoming)
}

var (
	// NewestWins replaces the existing record only when the incoming one is strictly newer.
	// Equal timestamps keep the existing record.
	NewestWins Rule = RuleFunc(func(existing, incoming region.Record) bool {
		return incoming.Timestamp > existing.Timestamp
	})

	// AlwaysReplace lets the incoming record win every conflict.
	AlwaysReplace Rule = RuleFunc(func(existing, incoming region.Record) bool {
		return true
	})

	// NeverReplace keeps the existing record in every conflict.
	NeverReplace Rule = RuleFunc(func(existing, incoming region.Record) bool {
		return false
	})
)

const (
	RuleLastModified = "last-modified"
	RuleAlways       = "always"
	RuleNever        = "never"

	// DefaultRule is used when no rule is configured.
	DefaultRule = RuleLastModified
)

var rules = map[string]Rule{
	RuleLastModified: NewestWins,
	RuleAlways:       AlwaysReplace,
	RuleNever:        NeverReplace,
}

// ParseRule resolves a rule name. An empty name selects DefaultRule.
func ParseRule(name string) (Rule, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultRule
	}
	rule, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("unknown merge rule %q (valid: %s)", name, strings.Join(RuleNames(), ", "))
	}
	return rule, nil
}

// RuleNames returns the names accepted by ParseRule, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
