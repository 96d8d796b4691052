package manifest

import (
	"fmt"
	"os"
)

// ExportOptions says where the registry lives and where the manifest goes.
type ExportOptions struct {
	Source       string
	Declaration  string
	Output       string
	Catalog      string // optional HTML catalog path
	TemplateID   string
	TemplateName string
}

type ExportResult struct {
	Manifest       *Manifest
	Changed        bool
	CatalogChanged bool
}

// ScrapeFile runs Scrape over the file at path.
func ScrapeFile(path, declaration string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry source: %w", err)
	}
	defer f.Close()

	entries, err := Scrape(f, declaration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Export scrapes the registry source and writes the manifest, and the
// catalog when one is configured. An empty Output skips writing.
func Export(opts ExportOptions) (*ExportResult, error) {
	entries, err := ScrapeFile(opts.Source, opts.Declaration)
	if err != nil {
		return nil, err
	}

	res := &ExportResult{
		Manifest: Build(opts.TemplateID, opts.TemplateName, entries),
	}

	if opts.Output != "" {
		res.Changed, err = res.Manifest.Write(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
	}

	if opts.Catalog != "" {
		res.CatalogChanged, err = res.Manifest.WriteCatalog(opts.Catalog)
		if err != nil {
			return nil, fmt.Errorf("write catalog: %w", err)
		}
	}

	return res, nil
}
