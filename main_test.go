package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/jobboard/internal/config"
	"github.com/your-org/jobboard/internal/jobs"
	"github.com/your-org/jobboard/internal/risk"
)

func runScan(t *testing.T, stdin string, args ...string) scanVerdict {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"scan"}, args...))
	require.NoError(t, cmd.Execute())

	var v scanVerdict
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	return v
}

func TestScanCommand(t *testing.T) {
	t.Setenv(config.EnvRoot, t.TempDir())
	t.Setenv(config.EnvRules, "")

	v := runScan(t, "", "Pay", "a", "small", "registration", "fee", "to", "begin.")
	assert.Equal(t, risk.TierMedium, v.Tier)
	assert.Equal(t, []string{"Payment request detected"}, v.Flags)
	assert.Equal(t, jobs.StatusReview, v.Decision.Status)

	v = runScan(t, scamDescription)
	assert.Equal(t, risk.TierHigh, v.Tier)
	assert.True(t, v.Decision.Notify)
}

func TestScanCommand_CustomRules(t *testing.T) {
	root := t.TempDir()
	rules := filepath.Join(root, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(`
indicators:
  - id: off_platform
    label: Off-platform contact
    patterns: ['telegram', 'whatsapp']
`), 0644))
	t.Setenv(config.EnvRoot, root)
	t.Setenv(config.EnvRules, rules)

	v := runScan(t, "", "Message", "us", "on", "Telegram")
	assert.Equal(t, risk.TierMedium, v.Tier)
	assert.Equal(t, []string{"Off-platform contact"}, v.Flags)

	v = runScan(t, "", "Pay", "the", "registration", "fee")
	assert.Equal(t, risk.TierLow, v.Tier)
	assert.Empty(t, v.Flags)
}
