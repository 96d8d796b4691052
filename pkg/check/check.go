// Package check validates site content files and reports the findings as
// diagnostics.
package check

import (
	"context"
	"fmt"

	"github.com/promakler/sitekit/pkg/assets"
	"github.com/promakler/sitekit/pkg/diagnostics"
	"github.com/promakler/sitekit/pkg/registry"
	"github.com/promakler/sitekit/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// Check names used in diagnostics.
const (
	CheckDecode   = "decode"
	CheckSchema   = "schema"
	CheckProps    = "props"
	CheckRegistry = "registry"
	CheckAssets   = "assets"
)

// Sites decodes and validates each file concurrently. Schema and props
// issues are errors; sections the registry cannot render are warnings. The
// returned error is only set when ctx is cancelled.
func Sites(ctx context.Context, files []string, reg *registry.Registry, sink diagnostics.Sink, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, file := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			Site(file, reg, sink)
			return nil
		})
	}

	return g.Wait()
}

// Site checks a single file.
func Site(file string, reg *registry.Registry, sink diagnostics.Sink) {
	site, err := schema.LoadFile(file)
	if err != nil {
		sink.Report(diagnostics.Diagnostic{
			Level:   diagnostics.LevelError,
			Check:   CheckDecode,
			Source:  file,
			Message: "cannot read site",
			Err:     err,
		})
		return
	}

	for _, issue := range site.Validate() {
		sink.Report(diagnostics.Diagnostic{
			Level:   diagnostics.LevelError,
			Check:   CheckSchema,
			Source:  file,
			Message: issue.Error(),
		})
	}

	for _, issue := range site.ValidateAllProps() {
		sink.Report(diagnostics.Diagnostic{
			Level:   diagnostics.LevelError,
			Check:   CheckProps,
			Source:  file,
			Message: issue.Error(),
		})
	}

	if reg == nil {
		return
	}
	for _, u := range reg.Resolve(site) {
		msg := u.String()
		if u.Hidden {
			msg += " (hidden)"
		}
		sink.Report(diagnostics.Diagnostic{
			Level:   diagnostics.LevelWarning,
			Check:   CheckRegistry,
			Source:  file,
			Message: msg,
		})
	}
}

// Assets reports local catalog entries missing from publicDir as warnings.
func Assets(catalog *assets.Catalog, publicDir string, sink diagnostics.Sink) {
	for _, m := range catalog.Check(publicDir) {
		sink.Report(diagnostics.Diagnostic{
			Level:   diagnostics.LevelWarning,
			Check:   CheckAssets,
			Source:  m.Key,
			Message: fmt.Sprintf("%s not found at %s", m.URL, m.Path),
		})
	}
}
