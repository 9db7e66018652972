package risk

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// builtInIndicators is the default indicator table.
//
//go:embed indicators.yaml
var builtInIndicators []byte

// Rule is a single scam indicator: a label plus the patterns that detect it.
// The rule fires when any of its patterns matches the description.
type Rule struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Patterns []string `yaml:"patterns"`
	// SpanLines lets "." match line breaks, so a pattern can match across
	// lines of the description. Off by default.
	SpanLines bool `yaml:"span_lines,omitempty"`
}

type ruleFile struct {
	Indicators []Rule `yaml:"indicators"`
}

// LoadRules parses an indicator table in the YAML format of indicators.yaml.
// Table order is preserved.
func LoadRules(data []byte) ([]Rule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing indicator rules: %w", err)
	}
	if len(f.Indicators) == 0 {
		return nil, fmt.Errorf("parsing indicator rules: no indicators defined")
	}
	return f.Indicators, nil
}

// LoadRulesFile reads an indicator table from disk.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading indicator rules %s: %w", path, err)
	}
	return LoadRules(data)
}

// BuiltInRules returns the embedded indicator table.
func BuiltInRules() []Rule {
	rules, err := LoadRules(builtInIndicators)
	if err != nil {
		panic(fmt.Sprintf("risk: embedded indicators.yaml is invalid: %v", err))
	}
	return rules
}

func validateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		label := strings.TrimSpace(r.Label)
		if label == "" {
			return fmt.Errorf("rule %d: label is required", i)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("rule %d: duplicate label %q", i, label)
		}
		seen[label] = struct{}{}
		if len(r.Patterns) == 0 {
			return fmt.Errorf("rule %q: at least one pattern is required", label)
		}
	}
	return nil
}
