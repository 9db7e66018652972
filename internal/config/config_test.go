package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvRoot, EnvDB, EnvRules, EnvMetricsAddr, EnvSeed} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	t.Setenv(EnvRoot, root)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "data", "jobboard.db"), cfg.DBPath)
	assert.Empty(t, cfg.RulesPath)
	assert.Empty(t, cfg.MetricsAddr)
	assert.True(t, cfg.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	rules := filepath.Join(root, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("indicators: []\n"), 0644))

	t.Setenv(EnvRoot, root)
	t.Setenv(EnvDB, filepath.Join(root, "custom.db"))
	t.Setenv(EnvRules, rules)
	t.Setenv(EnvMetricsAddr, ":9102")
	t.Setenv(EnvSeed, "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "custom.db"), cfg.DBPath)
	assert.Equal(t, rules, cfg.RulesPath)
	assert.Equal(t, ":9102", cfg.MetricsAddr)
	assert.False(t, cfg.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRoot, t.TempDir())

	t.Setenv(EnvSeed, "sometimes")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv(EnvSeed, "")
	t.Setenv(EnvRules, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}

func TestResolveBaseDir_RepoLayout(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "data"), 0755))
	sub := filepath.Join(root, "cmd")
	require.NoError(t, os.Mkdir(sub, 0755))
	t.Chdir(sub)

	assert.Equal(t, root, resolveBaseDir())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "boards", "jobs.db"), ExpandHome("~/boards/jobs.db"))
	assert.Equal(t, "/srv/jobs.db", ExpandHome("/srv/jobs.db"))
	assert.Equal(t, "notices/a.md", ExpandHome("notices/a.md"))
}
