package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/promakler/sitekit/pkg/check"
	"github.com/promakler/sitekit/pkg/diagnostics"
	"github.com/promakler/sitekit/pkg/schema"
	"github.com/promakler/sitekit/pkg/utils/fileutils"
	"github.com/urfave/cli/v3"
)

var errCheckFailed = errors.New("check failed")

func runValidate(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	files, err := p.siteFiles(cmd.Args().Slice())
	if err != nil {
		return err
	}

	workers := cmd.Int("workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	collector := diagnostics.NewCollector(
		diagnostics.WithMinLevel(diagnostics.LevelInfo),
		diagnostics.WithOnReport(newLogPrinter(os.Stdout).Print),
	)
	if err := check.Sites(ctx, files, p.registry(), collector, workers); err != nil {
		return err
	}

	return reportChecks(collector, fmt.Sprintf("%d site file(s)", len(files)), cmd.Bool("strict"))
}

// siteFiles returns args resolved against the project root, or every file
// matching the content glob.
func (p *project) siteFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		files := make([]string, len(args))
		for i, arg := range args {
			files[i] = resolvePath(p.root, arg)
		}
		return files, nil
	}

	files, err := fileutils.Glob(p.cfg.Content.SitesDir, p.cfg.Content.Glob)
	if err != nil {
		return nil, fmt.Errorf("content glob %q: %w", p.cfg.Content.Glob, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no site files match %q in %s", p.cfg.Content.Glob, p.rel(p.cfg.Content.SitesDir))
	}
	return files, nil
}

func reportChecks(c *diagnostics.Collector, what string, strict bool) error {
	failAt := diagnostics.LevelError
	if strict {
		failAt = diagnostics.LevelWarning
	}
	if c.HasLevel(failAt) {
		return fmt.Errorf("%w: %s", errCheckFailed, c.Summary())
	}

	fmt.Printf("OK  %s checked (%s)\n", what, c.Summary())
	return nil
}

func issueDiagnostic(source string, issue schema.Issue) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Level:   diagnostics.LevelError,
		Check:   check.CheckSchema,
		Source:  source,
		Message: issue.Error(),
	}
}
