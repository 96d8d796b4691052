package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/promakler/sitekit/pkg/config"
	"github.com/promakler/sitekit/pkg/ingest"
	"github.com/urfave/cli/v3"
)

func runImportSite(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	req := ingest.Request{
		Input:     ingest.ResolveInput(os.Getenv(config.EnvSiteJSON), cmd.String("input")),
		ID:        cmd.String("id"),
		TargetDir: p.cfg.Content.GeneratedDir,
		Validate:  cmd.Bool("validate"),
		Registry:  p.registry(),
		Force:     cmd.Bool("force"),
		Confirm:   confirmOverwrite(ctx),
	}

	res, err := ingest.ImportSite(ctx, req)
	if res != nil {
		printer := newLogPrinter(os.Stderr)
		for _, issue := range res.Issues {
			printer.Print(issueDiagnostic(res.Input, issue))
		}
		for _, u := range res.Unresolved {
			p.logger.Warn("section has no component", "section", u.String())
		}
	}
	if err != nil {
		return err
	}

	status := "imported"
	if !res.Changed {
		status = "unchanged"
	}
	fmt.Printf("OK  %s %s -> %s\n", status, res.ID, p.rel(res.Target))
	return nil
}

// confirmOverwrite asks on a terminal. Without one it returns nil and the
// import overwrites.
func confirmOverwrite(ctx context.Context) func(string) (bool, error) {
	if !isTerminal(os.Stdin) {
		return nil
	}

	return func(target string) (bool, error) {
		ok := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s exists. Overwrite?", target)).
				Affirmative("Overwrite").
				Negative("Keep").
				Value(&ok),
		))
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, nil
			}
			return false, err
		}
		return ok, nil
	}
}
