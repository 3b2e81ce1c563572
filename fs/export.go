// Package fs exports stored contents as Markdown files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/newsgrab"
	"gopkg.in/yaml.v3"
)

// Ensure Exporter implements newsgrab.ContentExporter at compile time.
var _ newsgrab.ContentExporter = (*Exporter)(nil)

// MarkerFile is written to the root of every export directory. Commit only
// replaces an existing directory that carries it.
const MarkerFile = ".newsgrab-export"

// Exporter writes one Markdown file per content with atomic update
// semantics. Files are staged in baseDir/name.tmp and moved to
// baseDir/name on Commit.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save writes the content to the staging directory.
func (e *Exporter) Save(ctx context.Context, c *newsgrab.Content, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(c.URL)
	if err != nil {
		return err
	}

	if err := e.ensureTempDir(); err != nil {
		return err
	}
	fullPath := filepath.Join(e.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	doc, err := FormatContent(c, body)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(doc), 0644)
}

// ensureTempDir creates the staging directory with its marker.
func (e *Exporter) ensureTempDir() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.tempDir(), MarkerFile), nil, 0644)
}

// Commit replaces the export directory with the staged files. A non-empty
// directory that was not written by a previous export is left alone and
// ECONFLICT is returned.
func (e *Exporter) Commit() error {
	if err := e.ensureTempDir(); err != nil {
		return err
	}
	if err := checkReplaceable(e.finalDir()); err != nil {
		return err
	}
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

func checkReplaceable(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err != nil {
		return newsgrab.Errorf(newsgrab.ECONFLICT, "%s exists and is not an export directory", dir)
	}
	return nil
}

// Abort removes the staging directory.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// URLToPath converts an article URL to a relative file path under its host.
// Example: http://e-info.org.tw/node/95478 → e-info.org.tw/node/95478.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", newsgrab.Errorf(newsgrab.EINVALID, "invalid url %q", rawURL)
	}
	if u.Host == "" {
		return "", newsgrab.Errorf(newsgrab.EINVALID, "url %q has no host", rawURL)
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	switch {
	case p == "":
		p = "index"
	case strings.HasSuffix(u.Path, "/"):
		p += "/index"
	}
	p = strings.TrimSuffix(p, path.Ext(p))
	if u.RawQuery != "" {
		p += "_" + strings.NewReplacer("=", "-", "&", "_", "/", "-").Replace(u.RawQuery)
	}

	rel := filepath.Join(u.Host, filepath.FromSlash(p)+".md")
	if !filepath.IsLocal(rel) {
		return "", newsgrab.Errorf(newsgrab.EINVALID, "url %q does not map to a local path", rawURL)
	}
	return rel, nil
}

// frontmatter is the YAML header of an exported file.
type frontmatter struct {
	ID        string `yaml:"id"`
	Source    string `yaml:"source"`
	URL       string `yaml:"url"`
	Feed      string `yaml:"feed"`
	Title     string `yaml:"title"`
	Published string `yaml:"published,omitempty"`
	Parser    string `yaml:"parser"`
	Stored    string `yaml:"stored"`
}

// FormatContent formats a content body with YAML frontmatter.
func FormatContent(c *newsgrab.Content, body string) (string, error) {
	fm := frontmatter{
		ID:     c.ID,
		Source: c.Source,
		URL:    c.URL,
		Feed:   c.URLRSS,
		Title:  c.Title,
		Parser: c.ParserClassname,
		Stored: c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.PubTS != nil {
		fm.Published = c.PubTS.UTC().Format(time.RFC3339)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String(), nil
}
