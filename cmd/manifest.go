package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/promakler/sitekit/pkg/contracts"
	"github.com/promakler/sitekit/pkg/iofs"
	"github.com/promakler/sitekit/pkg/manifest"
	"github.com/promakler/sitekit/pkg/transfer"
	"github.com/urfave/cli/v3"
)

func runExportManifest(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	opts := p.exportOptions()
	if catalog := cmd.String("catalog"); catalog != "" {
		opts.Catalog = resolvePath(p.root, catalog)
	}
	stdout := cmd.Bool("stdout")
	if stdout {
		opts.Output = ""
	}

	res, err := manifest.Export(opts)
	if err != nil {
		return fmt.Errorf("export manifest: %w", err)
	}

	if opts.Catalog != "" {
		p.logger.Info("catalog", "path", p.rel(opts.Catalog), "changed", res.CatalogChanged)
	}

	if stdout {
		return res.Manifest.Encode(os.Stdout)
	}

	status := "wrote"
	if !res.Changed {
		status = "unchanged"
	}
	fmt.Printf("OK  %s %s (%d section types)\n", status, p.rel(opts.Output), len(res.Manifest.Sections))
	return nil
}

func runPublishManifest(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	var dst iofs.Writable
	if cmd.Bool("bucket") {
		dst, err = p.contractsBucket()
	} else {
		var dir string
		dir, err = p.contractsDir(cmd)
		if err == nil {
			dst = iofs.FromOS(dir)
		}
	}
	if err != nil {
		return err
	}

	res, err := contracts.PublishManifest(ctx, p.cfg.Manifest.Output, p.cfg.Template.ID, dst)
	if err != nil {
		return err
	}

	printTransfer(dst, res)
	return nil
}

func runSyncContracts(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	dir, err := p.contractsDir(cmd)
	if err != nil {
		return err
	}
	p.logger.Debug("contracts directory", "path", dir)

	res, err := contracts.SyncSchemas(ctx, dir, p.cfg.Contracts.SchemaDir)
	if err != nil {
		return err
	}

	printTransfer(iofs.FromOS(p.cfg.Contracts.SchemaDir), res)
	for _, skipped := range res.Skipped {
		p.logger.Warn("optional schema not found in contracts", "file", skipped)
	}
	return nil
}

// contractsDir resolves the contracts directory: the --contracts flag, then
// the configured directory, then the environment variable, then a search
// upwards from the project root.
func (p *project) contractsDir(cmd *cli.Command) (string, error) {
	if dir := resolvePath(p.root, cmd.String("contracts")); dir != "" {
		return dir, nil
	}
	if p.cfg.Contracts.Dir != "" {
		return p.cfg.Contracts.Dir, nil
	}
	return contracts.FindDir(p.cfg.ContractsEnvDir(), p.root, p.cfg.Contracts.SearchDepth)
}

func (p *project) contractsBucket() (*iofs.BucketFS, error) {
	b := p.cfg.Contracts.Bucket
	if b == nil {
		return nil, fmt.Errorf("%w: no [contracts.bucket] in %s", iofs.ErrBucketConfig, p.rel(p.configPath))
	}
	return iofs.FromBucket(iofs.BucketConfig{
		Endpoint:  b.Endpoint,
		Bucket:    b.Bucket,
		Prefix:    b.Prefix,
		Region:    b.Region,
		AccessKey: b.AccessKey,
		SecretKey: b.SecretKey,
		UseSSL:    b.UseSSL,
	})
}

func printTransfer(dst iofs.Writable, res *transfer.Result) {
	for _, rel := range res.Written {
		fmt.Printf("OK  wrote %s\n", dst.DisplayPath(rel))
	}
	for _, rel := range res.Unchanged {
		fmt.Printf("OK  unchanged %s\n", dst.DisplayPath(rel))
	}
}
