package notice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir())
	w.now = func() time.Time { return time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC) }
	return w
}

func TestWriter_Write(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.Write(Notice{
		JobID:       4,
		Company:     "QuickCash Ltd",
		Title:       "Data Entry Specialist",
		Risk:        "high",
		Flags:       []string{"Payment request detected", "Guaranteed job claim"},
		Description: "Guaranteed job with advance payment.",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir(), "2026-02-08-quickcash_ltd.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, "## Data Entry Specialist")
	assert.Contains(t, content, "- Payment request detected\n")
	assert.Contains(t, content, "## Job Description\nGuaranteed job with advance payment.\n")

	n, err := Read(path)
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, int64(4), n.JobID)
	assert.Equal(t, StatusOpen, n.Status)
	assert.Equal(t, "high", n.Risk)
	assert.Equal(t, []string{"Payment request detected", "Guaranteed job claim"}, n.Flags)
}

func TestWriter_WriteUniqueNames(t *testing.T) {
	w := newTestWriter(t)

	first, err := w.Write(Notice{Company: "Acme", JobID: 1})
	require.NoError(t, err)
	second, err := w.Write(Notice{Company: "Acme", JobID: 2})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "2026-02-08-acme-1.md", filepath.Base(second))
}

func TestWriter_UpdateStatus(t *testing.T) {
	w := newTestWriter(t)
	path, err := w.Write(Notice{Company: "Acme", JobID: 7, Risk: "high", Description: "body text"})
	require.NoError(t, err)

	rel, err := filepath.Rel(w.Root, path)
	require.NoError(t, err)

	updated, err := w.UpdateStatus(rel, StatusConfirmed, false)
	require.NoError(t, err)
	assert.Equal(t, path, updated)

	n, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, n.Status)
	assert.Equal(t, int64(7), n.JobID)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Job Description\nbody text\n")
}

func TestWriter_UpdateStatusDryRun(t *testing.T) {
	w := newTestWriter(t)
	path, err := w.Write(Notice{Company: "Acme"})
	require.NoError(t, err)

	_, err = w.UpdateStatus(path, StatusOverridden, true)
	require.NoError(t, err)

	n, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, n.Status)
}

func TestWriter_UpdateStatusErrors(t *testing.T) {
	w := newTestWriter(t)

	_, err := w.UpdateStatus("notices/missing.md", StatusConfirmed, false)
	assert.Error(t, err)

	path, err := w.Write(Notice{Company: "Acme"})
	require.NoError(t, err)
	_, err = w.UpdateStatus(path, "archived", false)
	assert.Error(t, err)

	unterminated := filepath.Join(w.Root, "unterminated.md")
	require.NoError(t, os.WriteFile(unterminated, []byte("---\nstatus: open\n"), 0644))
	_, err = w.UpdateStatus(unterminated, StatusConfirmed, false)
	assert.Error(t, err)

	plain := filepath.Join(w.Root, "plain.md")
	require.NoError(t, os.WriteFile(plain, []byte("# no frontmatter\n"), 0644))
	_, err = w.UpdateStatus(plain, StatusConfirmed, false)
	assert.Error(t, err)
}

func TestNoticeSlug(t *testing.T) {
	assert.Equal(t, "growth_inc", noticeSlug(Notice{Company: "  Growth Inc. "}))
	assert.Equal(t, "job_12", noticeSlug(Notice{JobID: 12}))
	assert.Equal(t, "job_marketing_associate", noticeSlug(Notice{Title: "Marketing Associate"}))
	assert.Equal(t, "job_0f1e2d3c", noticeSlug(Notice{ID: "0f1e2d3c-aaaa-bbbb-cccc-000000000000"}))
	assert.Equal(t, "caf_bar_24_7", noticeSlug(Notice{Company: "Café-Bar 24/7"}))
}

func TestWriter_DashedValuesSurviveUpdate(t *testing.T) {
	w := newTestWriter(t)
	path, err := w.Write(Notice{
		JobID:       9,
		Company:     "Acme --- Global",
		Title:       "Sales --- Remote",
		Risk:        "high",
		Flags:       []string{"Payment request detected"},
		Description: "Line one\n---\nLine two",
	})
	require.NoError(t, err)

	n, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Sales --- Remote", n.Title)
	assert.Equal(t, "Acme --- Global", n.Company)

	_, err = w.UpdateStatus(path, StatusConfirmed, false)
	require.NoError(t, err)

	n, err = Read(path)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, n.Status)
	assert.Equal(t, "Sales --- Remote", n.Title)
	assert.Equal(t, "high", n.Risk)
	assert.Equal(t, []string{"Payment request detected"}, n.Flags)
	assert.False(t, n.Created.IsZero())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Equal(t, 1, strings.Count(content, "status:"))
	assert.Contains(t, content, "## Job Description\nLine one\n---\nLine two\n")
}

func TestSplitFrontmatter(t *testing.T) {
	front, body, err := splitFrontmatter([]byte("---\ntitle: a --- b\n---\n\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "title: a --- b\n", string(front))
	assert.Equal(t, "body\n", string(body))

	front, body, err = splitFrontmatter([]byte("---\r\nstatus: open\r\n---"))
	require.NoError(t, err)
	assert.Equal(t, "status: open\n", string(front))
	assert.Empty(t, body)

	_, _, err = splitFrontmatter([]byte("--- not a delimiter\n"))
	assert.Error(t, err)
}
