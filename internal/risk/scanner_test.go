package risk

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	labelPayment    = "Payment request detected"
	labelGuaranteed = "Guaranteed job claim"
	labelSalary     = "Unrealistic salary promise"
	labelMisleading = "Misleading language"
)

func TestScan_Cases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tier  Tier
		flags []string
	}{
		{
			name:  "empty",
			input: "",
			tier:  TierLow,
			flags: []string{},
		},
		{
			name:  "benign",
			input: "Build UI components with React. Collaborate with a small team on a customer-facing dashboard.",
			tier:  TierLow,
			flags: []string{},
		},
		{
			name:  "registration fee",
			input: "Pay a small registration fee to begin.",
			tier:  TierMedium,
			flags: []string{labelPayment},
		},
		{
			name:  "guaranteed job",
			input: "We offer a guaranteed job after training.",
			tier:  TierMedium,
			flags: []string{labelGuaranteed},
		},
		{
			name:  "multiple indicators",
			input: "Earn $5000 per day working from home. No experience needed, guaranteed job offer with advance payment required.",
			tier:  TierHigh,
			flags: []string{labelPayment, labelGuaranteed, labelSalary},
		},
		{
			name:  "upper case",
			input: "PAY THE FEE NOW",
			tier:  TierMedium,
			flags: []string{labelPayment},
		},
		{
			name:  "placement promise",
			input: "100% placement support for every batch",
			tier:  TierMedium,
			flags: []string{labelGuaranteed},
		},
		{
			name:  "assured offer",
			input: "Assured offer letter on completion of the course",
			tier:  TierMedium,
			flags: []string{labelGuaranteed},
		},
		{
			name:  "earn per day without currency sign",
			input: "Earn 10000 a day from your phone",
			tier:  TierMedium,
			flags: []string{labelSalary},
		},
		{
			name:  "unlimited income",
			input: "Join now for unlimited income potential",
			tier:  TierMedium,
			flags: []string{labelSalary},
		},
		{
			name:  "work from home amount",
			input: "Work from home and make $2000 weekly",
			tier:  TierMedium,
			flags: []string{labelMisleading},
		},
		{
			name:  "no experience high salary",
			input: "No experience needed and a high salary from day one",
			tier:  TierMedium,
			flags: []string{labelMisleading},
		},
		{
			name:  "short without indicators",
			input: "Intern wanted",
			tier:  TierLow,
			flags: []string{},
		},
		{
			name:  "short with indicator",
			input: "Pay fee",
			tier:  TierMedium,
			flags: []string{labelPayment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(tt.input)
			assert.Equal(t, tt.tier, res.Tier)
			assert.Equal(t, tt.flags, res.Flags)
		})
	}
}

func TestScan_FlagsFollowTableOrder(t *testing.T) {
	// Salary indicator appears first in the text, payment last.
	res := Scan("Get rich quickly with us. Before starting, pay the onboarding fee.")

	assert.Equal(t, TierHigh, res.Tier)
	assert.Equal(t, []string{labelPayment, labelSalary}, res.Flags)
}

func TestScan_PatternsStopAtLineBreaks(t *testing.T) {
	res := Scan("Please pay\nthe processing\nfee by Friday.")
	assert.Equal(t, TierLow, res.Tier)
	assert.Empty(t, res.Flags)

	res = Scan("Please pay the processing fee\nby Friday.")
	assert.Equal(t, []string{labelPayment}, res.Flags)
}

func TestScan_SpanLinesOptIn(t *testing.T) {
	rules, err := LoadRules([]byte(`
indicators:
  - id: payment_request
    label: Payment request detected
    patterns: ['pay.*fee']
    span_lines: true
  - id: guaranteed_job
    label: Guaranteed job claim
    patterns: ['guaranteed.*job']
`))
	require.NoError(t, err)
	assert.True(t, rules[0].SpanLines)
	assert.False(t, rules[1].SpanLines)

	s, err := NewScanner(rules)
	require.NoError(t, err)
	res := s.Scan("Please pay\nthe processing\nfee. A guaranteed\njob awaits.")
	assert.Equal(t, []string{"Payment request detected"}, res.Flags)
	assert.Equal(t, TierMedium, res.Tier)
}

func TestScan_TierFollowsMatchCount(t *testing.T) {
	inputs := []string{
		"",
		"ok",
		"A plain description of a warehouse associate position.",
		"pay the fee",
		"pay the fee for a guaranteed job",
		"pay the fee for a guaranteed job and get rich",
		"pay the fee for a guaranteed job, get rich, no experience needed, high salary",
	}
	for _, in := range inputs {
		res := Scan(in)
		switch n := len(res.Flags); {
		case n == 0:
			assert.Equal(t, TierLow, res.Tier, in)
		case n == 1:
			assert.Equal(t, TierMedium, res.Tier, in)
		default:
			assert.Equal(t, TierHigh, res.Tier, in)
		}
	}
	assert.Len(t, Scan(inputs[len(inputs)-1]).Flags, 4)
}

func TestScan_Deterministic(t *testing.T) {
	in := "Earn $5000 per day working from home. No experience needed, guaranteed job offer with advance payment required."
	first := Scan(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Scan(in))
	}
}

func TestScan_Concurrent(t *testing.T) {
	in := "Registration fee required. Guaranteed job."
	want := Scan(in)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Scan(in)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestScan_LongInput(t *testing.T) {
	in := strings.Repeat("Maintain inventory records. ", 5000) + "advance payment"
	res := Scan(in)
	assert.Equal(t, TierMedium, res.Tier)
	assert.Equal(t, []string{labelPayment}, res.Flags)
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierLow, tierFor(0, MinPlausibleLength+1))
	assert.Equal(t, TierLow, tierFor(0, MinPlausibleLength))
	assert.Equal(t, TierLow, tierFor(0, 0))
	assert.Equal(t, TierMedium, tierFor(1, 0))
	assert.Equal(t, TierHigh, tierFor(2, 500))
	assert.Equal(t, TierHigh, tierFor(4, 5))
}

func TestNewScanner_CustomRules(t *testing.T) {
	s, err := NewScanner([]Rule{
		{ID: "crypto", Label: "Crypto payout", Patterns: []string{`paid\s+in\s+bitcoin`}},
		{ID: "telegram", Label: "Off-platform contact", Patterns: []string{`telegram`, `whatsapp`}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Crypto payout", "Off-platform contact"}, s.Labels())

	res := s.Scan("Message us on WhatsApp, you will be PAID IN BITCOIN")
	assert.Equal(t, TierHigh, res.Tier)
	assert.Equal(t, []string{"Crypto payout", "Off-platform contact"}, res.Flags)
}

func TestNewScanner_InvalidRules(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"missing label", []Rule{{Patterns: []string{"x"}}}},
		{"no patterns", []Rule{{Label: "x"}}},
		{"duplicate label", []Rule{{Label: "x", Patterns: []string{"a"}}, {Label: "x", Patterns: []string{"b"}}}},
		{"bad regex", []Rule{{Label: "x", Patterns: []string{"(unclosed"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScanner(tt.rules)
			assert.Error(t, err)
		})
	}
}

func TestBuiltInRules(t *testing.T) {
	rules := BuiltInRules()
	require.Len(t, rules, 4)
	assert.Equal(t, []string{labelPayment, labelGuaranteed, labelSalary, labelMisleading}, Default().Labels())
	for _, r := range rules {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Patterns)
	}
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules([]byte(`
indicators:
  - id: bank
    label: Bank details requested
    patterns: ['bank\s+account\s+number']
`))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Bank details requested", rules[0].Label)

	_, err = LoadRules([]byte("indicators: []"))
	assert.Error(t, err)

	_, err = LoadRules([]byte("indicators: [unclosed"))
	assert.Error(t, err)
}

func TestParseTier(t *testing.T) {
	for _, tier := range []Tier{TierLow, TierMedium, TierHigh} {
		got, err := ParseTier(string(tier))
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}
	_, err := ParseTier("critical")
	assert.Error(t, err)

	assert.Less(t, TierLow.Rank(), TierMedium.Rank())
	assert.Less(t, TierMedium.Rank(), TierHigh.Rank())
}
