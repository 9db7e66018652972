// Package notice writes admin review notices for auto-blocked job postings.
//
// A notice is a markdown file with YAML frontmatter, one per blocked job,
// placed under <root>/notices. Admins settle it by confirming the block or
// overriding it, which rewrites the frontmatter status.
package notice

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	StatusOpen       = "open"
	StatusConfirmed  = "confirmed"
	StatusOverridden = "overridden"
	// StatusWithdrawn marks a notice whose job was edited after the block.
	StatusWithdrawn = "withdrawn"
)

// ValidStatus reports whether status is a known notice status.
func ValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusConfirmed, StatusOverridden, StatusWithdrawn:
		return true
	}
	return false
}

// Notice is the content of one admin notice.
type Notice struct {
	ID          string    `yaml:"id"`
	JobID       int64     `yaml:"job_id"`
	Company     string    `yaml:"company"`
	Title       string    `yaml:"title"`
	Risk        string    `yaml:"risk"`
	Flags       []string  `yaml:"flags"`
	Status      string    `yaml:"status"`
	Created     time.Time `yaml:"created"`
	Description string    `yaml:"-"`
}

// Writer writes notices below Root.
type Writer struct {
	Root string
	now  func() time.Time
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{Root: root, now: time.Now}
}

// Dir is the directory notices are written to.
func (w *Writer) Dir() string { return filepath.Join(w.Root, "notices") }

// Write stores n and returns the path of the new file. ID, Status and
// Created are filled in when empty.
func (w *Writer) Write(n Notice) (string, error) {
	if err := os.MkdirAll(w.Dir(), 0755); err != nil {
		return "", err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Status == "" {
		n.Status = StatusOpen
	}
	if n.Created.IsZero() {
		n.Created = w.now().UTC()
	}
	if n.Flags == nil {
		n.Flags = []string{}
	}

	front, err := yaml.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("encoding notice frontmatter: %w", err)
	}

	title := strings.TrimSpace(n.Title)
	if title == "" {
		title = "Unknown Position"
	}
	desc := strings.TrimSpace(n.Description)
	if desc == "" {
		desc = "(no description)"
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "## %s\n\n", title)
	b.WriteString("## Flags\n")
	if len(n.Flags) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, f := range n.Flags {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "\n## Job Description\n%s\n", desc)

	f, path, err := createUnique(w.Dir(), n.Created.Format("2006-01-02")+"-"+noticeSlug(n))
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Read parses the frontmatter of the notice at path.
func Read(path string) (Notice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Notice{}, err
	}
	front, _, err := splitFrontmatter(data)
	if err != nil {
		return Notice{}, err
	}
	var n Notice
	if err := yaml.Unmarshal(front, &n); err != nil {
		return Notice{}, fmt.Errorf("decoding notice frontmatter: %w", err)
	}
	return n, nil
}

// UpdateStatus sets the frontmatter status of the notice at path. Other
// frontmatter keys and the body are left untouched. Relative paths are
// resolved against Root.
func (w *Writer) UpdateStatus(path, status string, dryRun bool) (string, error) {
	if !ValidStatus(status) {
		return "", fmt.Errorf("unknown notice status %q", status)
	}
	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(w.Root, absPath)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	front, body, err := splitFrontmatter(data)
	if err != nil {
		return "", err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(front, &doc); err != nil {
		return "", fmt.Errorf("decoding notice frontmatter: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return "", fmt.Errorf("invalid frontmatter")
	}
	setMappingValue(doc.Content[0], "status", status)

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("encoding notice frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	if dryRun {
		return absPath, nil
	}
	content := "---\n" + out.String() + "---\n" + string(body)
	if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return absPath, nil
}

func setMappingValue(m *yaml.Node, key, value string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1].SetString(value)
			return
		}
	}
	k := &yaml.Node{}
	k.SetString(key)
	v := &yaml.Node{}
	v.SetString(value)
	m.Content = append(m.Content, k, v)
}

// splitFrontmatter separates the YAML block delimited by "---" lines from
// the markdown body. Only whole delimiter lines count, so "---" inside a
// value does not end the block.
func splitFrontmatter(data []byte) (front, body []byte, err error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return nil, nil, fmt.Errorf("missing frontmatter")
	}
	if strings.HasPrefix(rest, "---\n") {
		return nil, []byte(strings.TrimPrefix(rest[4:], "\n")), nil
	}
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		if !strings.HasSuffix(rest, "\n---") {
			return nil, nil, fmt.Errorf("unterminated frontmatter")
		}
		return []byte(strings.TrimSuffix(rest, "---")), nil, nil
	}
	body = []byte(strings.TrimPrefix(rest[end+len("\n---\n"):], "\n"))
	return []byte(rest[:end+1]), body, nil
}

func noticeSlug(n Notice) string {
	if slug := slugify(n.Company); slug != "" {
		return slug
	}
	if n.JobID > 0 {
		return fmt.Sprintf("job_%d", n.JobID)
	}
	if slug := slugify(n.Title); slug != "" {
		return "job_" + slug
	}
	id := n.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "job_" + id
}

// createUnique creates <dir>/<base>.md, or <base>-N.md when that name is
// taken. O_EXCL keeps two concurrent writers from sharing a file.
func createUnique(dir, base string) (*os.File, string, error) {
	for i := 0; i < 1000; i++ {
		name := base + ".md"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.md", base, i)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return f, path, nil
	}
	return nil, "", fmt.Errorf("no free notice name for %s in %s", base, dir)
}

// slugify lowercases value and joins its alphanumeric runs with "_".
func slugify(value string) string {
	words := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "_")
}
