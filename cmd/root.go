package cmd

import (
	"context"
	"time"

	"github.com/promakler/sitekit/pkg/config"
	"github.com/promakler/sitekit/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "sitekit",
		Usage: "Tooling for the Astro real-estate site template",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: config.DefaultPath, Usage: "config file path (relative to --root)"},
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Value: ".", Usage: "template project root"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "log level (debug, info, warn, error)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "print version",
				Action: runVersion,
			},
			{
				Name:      "init",
				Usage:     "Write a sitekit.toml for a template project",
				ArgsUsage: "[directory]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "template id"},
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "template display name"},
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite an existing config"},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "accept defaults without asking"},
				},
				Action: runInit,
			},
			{
				Name:  "export-manifest",
				Usage: "Scrape the section registry and write the template manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "catalog", Usage: "also write an HTML section catalog to this path"},
					&cli.BoolFlag{Name: "stdout", Usage: "print the manifest instead of writing it"},
				},
				Action: runExportManifest,
			},
			{
				Name:  "publish-manifest",
				Usage: "Copy the exported manifest into the contracts directory",
				Flags: []cli.Flag{
					contractsFlag(),
					&cli.BoolFlag{Name: "bucket", Usage: "publish to the configured contracts bucket"},
				},
				Action: runPublishManifest,
			},
			{
				Name:   "sync-contracts",
				Usage:  "Copy the site schema from the contracts directory",
				Flags:  []cli.Flag{contractsFlag()},
				Action: runSyncContracts,
			},
			{
				Name:  "import-site",
				Usage: "Import a generated site file into the content collection",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "site file (.json, .yaml); " + config.EnvSiteJSON + " wins when set"},
					&cli.StringFlag{Name: "id", Usage: "site id (defaults to the input file name)"},
					&cli.BoolFlag{Name: "validate", Value: true, Usage: "validate the site before importing"},
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite without asking"},
				},
				Action: runImportSite,
			},
			{
				Name:      "validate",
				Usage:     "Validate site content files",
				ArgsUsage: "[files...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, Usage: "fail on warnings"},
					&cli.IntFlag{Name: "workers", Usage: "files checked in parallel (0 for one per CPU)"},
				},
				Action: runValidate,
			},
			{
				Name:      "sections",
				Usage:     "List section types and their variants",
				ArgsUsage: "[type]",
				Action:    runSections,
			},
			{
				Name:  "assets",
				Usage: "List the asset catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "check", Usage: "report local assets missing from the public directory"},
				},
				Action: runAssets,
			},
			{
				Name:  "watch",
				Usage: "Re-export the manifest and re-validate content on change",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "debounce", Value: 250 * time.Millisecond, Usage: "debounce window"},
					&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, Usage: "report warnings as failures"},
				},
				Action: runWatch,
			},
		},
	}

	return app.Run(ctx, args)
}

func contractsFlag() cli.Flag {
	return &cli.StringFlag{Name: "contracts", Usage: "contracts directory (overrides config and environment)"}
}
