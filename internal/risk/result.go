package risk

import "fmt"

// Tier is the ordinal risk classification of a description.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// ParseTier converts a stored tier name back into a Tier.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case TierLow, TierMedium, TierHigh:
		return t, nil
	default:
		return "", fmt.Errorf("invalid risk tier %q", s)
	}
}

// Rank orders tiers: low < medium < high.
func (t Tier) Rank() int {
	switch t {
	case TierLow:
		return 0
	case TierMedium:
		return 1
	case TierHigh:
		return 2
	default:
		return -1
	}
}

// Result is the verdict of one scan. Flags holds the labels of the
// indicators that fired, in rule-table order; it is never nil.
type Result struct {
	Tier  Tier     `json:"tier"`
	Flags []string `json:"flags"`
}

// Flagged reports whether any indicator fired.
func (r Result) Flagged() bool { return len(r.Flags) > 0 }
