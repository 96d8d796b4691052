package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/promakler/sitekit/pkg/config"
	"github.com/promakler/sitekit/pkg/manifest"
	"github.com/promakler/sitekit/pkg/registry"
	"github.com/urfave/cli/v3"
)

// project is the template project a command runs against.
type project struct {
	root       string
	configPath string
	cfg        *config.Config
	logger     *log.Logger
}

func loadProject(cmd *cli.Command) (*project, error) {
	logger, err := newLogger(cmd.String("log-level"))
	if err != nil {
		return nil, err
	}

	root := strings.TrimSpace(cmd.String("root"))
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	configPath := resolvePath(absRoot, cmd.String("config"))
	if configPath == "" {
		configPath = filepath.Join(absRoot, config.DefaultPath)
	}

	config.LoadEnv(absRoot)

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	cfg.ResolvePaths(absRoot)
	cfg.ApplyEnv()

	logger.Debug("loaded config", "path", configPath, "template", cfg.Template.ID)

	return &project{
		root:       absRoot,
		configPath: configPath,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "sitekit",
		Level:  lvl,
	}), nil
}

// registry prefers the components declared in the project's registry
// source, falling back to the built-in table.
func (p *project) registry() *registry.Registry {
	entries, err := manifest.ScrapeFile(p.cfg.Registry.Source, p.cfg.Registry.Declaration)
	if err != nil {
		p.logger.Debug("using built-in section registry", "err", err)
		return registry.Default(registry.WithLogger(p.logger))
	}
	return registry.FromEntries(entries, registry.WithLogger(p.logger))
}

func (p *project) exportOptions() manifest.ExportOptions {
	return manifest.ExportOptions{
		Source:       p.cfg.Registry.Source,
		Declaration:  p.cfg.Registry.Declaration,
		Output:       p.cfg.Manifest.Output,
		Catalog:      p.cfg.Manifest.Catalog,
		TemplateID:   p.cfg.Template.ID,
		TemplateName: p.cfg.Template.Name,
	}
}

func (p *project) rel(path string) string {
	if rel, err := filepath.Rel(p.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
