package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promakler/sitekit/cmd/ui/init_ui"
	"github.com/promakler/sitekit/pkg/config"
	"github.com/promakler/sitekit/pkg/utils/fileutils"
	"github.com/urfave/cli/v3"
)

var ErrConfigExists = errors.New("config already exists")

// registryPattern finds candidate registry sources below a project.
const registryPattern = "src/**/*Registry.ts"

func runInit(ctx context.Context, cmd *cli.Command) error {
	target := "."
	if cmd.NArg() > 0 {
		target = cmd.Args().First()
	}

	cfg := config.DefaultConfig()
	if id := strings.TrimSpace(cmd.String("id")); id != "" {
		cfg.Template.ID = id
	}
	if name := strings.TrimSpace(cmd.String("name")); name != "" {
		cfg.Template.Name = name
	}

	sources, _ := fileutils.Glob(target, registryPattern)
	for i, src := range sources {
		if rel, err := filepath.Rel(target, src); err == nil {
			sources[i] = filepath.ToSlash(rel)
		}
	}

	if !cmd.Bool("yes") && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		res, err := init_ui.Run(ctx, init_ui.Params{
			Target:  target,
			Sources: sources,
			Source:  cfg.Registry.Source,
			Fields:  initFields(cfg),
		})
		if err != nil {
			return err
		}
		if res.Cancelled {
			fmt.Println("Cancelled.")
			return nil
		}
		target = res.Target
		if res.Source != "" {
			cfg.Registry.Source = res.Source
		}
		applyInitFields(cfg, res.Values)
	} else if len(sources) == 1 {
		cfg.Registry.Source = sources[0]
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	path := filepath.Join(target, config.DefaultPath)
	if fileutils.Exists(path) && !cmd.Bool("force") {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("OK  wrote %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	if target != "." {
		fmt.Printf("  cd %s\n", target)
	}
	fmt.Println("  sitekit export-manifest   # Write the template manifest")
	fmt.Println("  sitekit validate          # Check site content")

	return nil
}

func initFields(cfg *config.Config) []init_ui.Field {
	return []init_ui.Field{
		{Key: "template.id", Label: "Template id", Placeholder: "astro-template-system", Value: cfg.Template.ID},
		{Key: "template.name", Label: "Template name", Placeholder: "Astro Template System", Value: cfg.Template.Name},
		{Key: "content.sites_dir", Label: "Site content directory", Value: cfg.Content.SitesDir},
		{Key: "manifest.output", Label: "Manifest output", Value: cfg.Manifest.Output},
		{Key: "contracts.dir", Label: "Contracts directory (blank to search)", Placeholder: "../contracts", Value: cfg.Contracts.Dir},
	}
}

func applyInitFields(cfg *config.Config, values map[string]string) {
	for key, dst := range map[string]*string{
		"template.id":       &cfg.Template.ID,
		"template.name":     &cfg.Template.Name,
		"content.sites_dir": &cfg.Content.SitesDir,
		"manifest.output":   &cfg.Manifest.Output,
		"contracts.dir":     &cfg.Contracts.Dir,
	} {
		if v, ok := values[key]; ok {
			*dst = v
		}
	}
}
