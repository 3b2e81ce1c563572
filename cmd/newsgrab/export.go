package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := newsgrab.ContentFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	contents, err := deps.Contents.FindContents(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}
	exporter := fs.NewExporter(filepath.Dir(dir), filepath.Base(dir))

	n, err := exportContents(deps, exporter, contents)
	if err != nil {
		_ = exporter.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d contents to %s\n", n, dir)
	return nil
}

// exportContents saves one file per URL. Contents are listed newest first,
// so older versions of an already exported URL are skipped.
func exportContents(deps *Dependencies, exporter newsgrab.ContentExporter, contents []*newsgrab.Content) (int, error) {
	seen := make(map[string]bool, len(contents))
	for _, ct := range contents {
		if seen[ct.URL] {
			continue
		}
		seen[ct.URL] = true

		body, err := deps.Converter.Convert(ct.HTML)
		if err != nil {
			return 0, fmt.Errorf("convert %s: %w", ct.ID, err)
		}
		if err := exporter.Save(deps.Ctx, ct, body); err != nil {
			return 0, fmt.Errorf("save %s: %w", ct.ID, err)
		}
	}
	return len(seen), exporter.Commit()
}
