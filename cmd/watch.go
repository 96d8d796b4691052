package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/promakler/sitekit/pkg/check"
	"github.com/promakler/sitekit/pkg/config"
	"github.com/promakler/sitekit/pkg/diagnostics"
	"github.com/promakler/sitekit/pkg/manifest"
	"github.com/promakler/sitekit/pkg/utils/fileutils"
	"github.com/promakler/sitekit/pkg/watcher"
	"github.com/urfave/cli/v3"
)

func runWatch(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.Options{
		ConfigPath: p.configPath,
		Root:       p.root,
		Debounce:   cmd.Duration("debounce"),
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil {
		return err
	}

	strict := cmd.Bool("strict")
	printer := newLogPrinter(os.Stdout)

	p.logger.Info("watching", "registry", p.rel(p.cfg.Registry.Source), "content", p.rel(p.cfg.Content.SitesDir))
	p.exportOnce()
	files, _ := fileutils.Glob(p.cfg.Content.SitesDir, p.cfg.Content.Glob)
	p.checkOnce(ctx, files, printer, strict)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-w.Errors:
			p.logger.Warn("watch", "err", err)

		case ev := <-w.Events:
			p.logger.Debug("change", "reason", ev.Reason, "paths", len(ev.Paths))

			if ev.ConfigChanged {
				p.reconfigure(ev.Config)
				p.logger.Info("config reloaded", "path", p.rel(p.configPath))
			}
			if ev.Registry || ev.ConfigChanged {
				p.exportOnce()
			}

			files := ev.Content
			if ev.Registry || ev.ConfigChanged {
				files, _ = fileutils.Glob(p.cfg.Content.SitesDir, p.cfg.Content.Glob)
			}
			p.checkOnce(ctx, existing(files), printer, strict)
		}
	}
}

func (p *project) reconfigure(cfg *config.Config) {
	if cfg == nil {
		return
	}
	cfg.ApplyEnv()
	p.cfg = cfg
}

func (p *project) exportOnce() {
	res, err := manifest.Export(p.exportOptions())
	if err != nil {
		p.logger.Error("export manifest", "err", err)
		return
	}
	if res.Changed {
		p.logger.Info("manifest updated", "path", p.rel(p.cfg.Manifest.Output), "sections", len(res.Manifest.Sections))
	}
}

func (p *project) checkOnce(ctx context.Context, files []string, printer *logPrinter, strict bool) {
	if len(files) == 0 {
		return
	}

	collector := diagnostics.NewCollector(
		diagnostics.WithMinLevel(diagnostics.LevelInfo),
		diagnostics.WithOnReport(printer.Print),
	)
	if err := check.Sites(ctx, files, p.registry(), collector, runtime.NumCPU()); err != nil {
		return
	}

	if err := reportChecks(collector, fmt.Sprintf("%d site file(s)", len(files)), strict); err != nil {
		p.logger.Error("content", "err", err)
	}
}

// existing drops paths removed since the event was queued.
func existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if fileutils.Exists(p) {
			out = append(out, p)
		}
	}
	return out
}
