// Package risk scores job descriptions for scam indicators.
//
// A Scanner evaluates every indicator rule against the whole description,
// collects the labels of the rules that fired in table order, and derives
// a tier from how many fired. Scanning has no side effects and never
// fails, so a Scanner may be shared freely between goroutines.
package risk

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// MinPlausibleLength is the description length, in characters, above which
// a description with no indicator hits is considered plausibly scored.
// Shorter descriptions with no hits still fall back to TierLow.
const MinPlausibleLength = 30

type compiledRule struct {
	label    string
	patterns []*regexp.Regexp
}

func (r compiledRule) matches(text string) bool {
	for _, re := range r.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Scanner holds a compiled, immutable indicator table.
type Scanner struct {
	rules []compiledRule
}

// NewScanner compiles rules into a Scanner. Patterns are case-insensitive
// and "." stops at line breaks unless the rule sets SpanLines.
func NewScanner(rules []Rule) (*Scanner, error) {
	if err := validateRules(rules); err != nil {
		return nil, err
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{label: strings.TrimSpace(r.Label)}
		flags := "(?i)"
		if r.SpanLines {
			flags = "(?is)"
		}
		for _, p := range r.Patterns {
			re, err := regexp.Compile(flags + p)
			if err != nil {
				return nil, fmt.Errorf("compiling pattern %q for %q: %w", p, cr.label, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		compiled = append(compiled, cr)
	}
	return &Scanner{rules: compiled}, nil
}

var defaultScanner = sync.OnceValue(func() *Scanner {
	s, err := NewScanner(BuiltInRules())
	if err != nil {
		panic(fmt.Sprintf("risk: built-in indicators: %v", err))
	}
	return s
})

// Default returns the Scanner built from the embedded indicator table.
func Default() *Scanner { return defaultScanner() }

// Scan classifies description with the default indicator table.
func Scan(description string) Result { return Default().Scan(description) }

// Labels returns the indicator labels in evaluation order.
func (s *Scanner) Labels() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.label
	}
	return out
}

// Scan classifies description. Every input, including the empty string,
// yields a valid Result.
func (s *Scanner) Scan(description string) Result {
	flags := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		if r.matches(description) {
			flags = append(flags, r.label)
		}
	}
	return Result{
		Tier:  tierFor(len(flags), utf8.RuneCountInString(description)),
		Flags: flags,
	}
}

func tierFor(matches, length int) Tier {
	switch {
	case matches == 0 && length > MinPlausibleLength:
		return TierLow
	case matches == 1:
		return TierMedium
	case matches >= 2:
		return TierHigh
	default:
		// Short description with no hits. Scored low rather than left
		// unscored; terse scam postings slip through here.
		return TierLow
	}
}
