// Package contracts moves schemas and manifests between the template and the
// shared contracts directory.
package contracts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/promakler/sitekit/pkg/iofs"
	"github.com/promakler/sitekit/pkg/manifest"
	"github.com/promakler/sitekit/pkg/transfer"
)

const (
	DirName      = "contracts"
	SchemasDir   = "schemas"
	TemplatesDir = "templates"
	SchemaJSON   = "site.schema.json"
	SchemaTS     = "site.schema.ts"

	DefaultSearchDepth = 6
)

var (
	ErrContractsNotFound = errors.New("contracts directory not found")
	ErrManifestMissing   = errors.New("manifest missing, run export-manifest first")
)

// FindDir locates the contracts directory. envDir wins when it exists;
// otherwise start and up to depth-1 of its parents are searched for a
// "contracts" entry.
func FindDir(envDir, start string, depth int) (string, error) {
	if envDir != "" {
		if _, err := os.Stat(envDir); err == nil {
			return envDir, nil
		}
	}

	if depth <= 0 {
		depth = DefaultSearchDepth
	}

	current, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for range depth {
		candidate := filepath.Join(current, DirName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", fmt.Errorf("%w (searched %d levels above %s)", ErrContractsNotFound, depth, start)
}

// SyncSchemas copies schemas/site.schema.json (required) and
// schemas/site.schema.ts (optional) from the contracts directory into
// targetDir.
func SyncSchemas(ctx context.Context, contractsDir, targetDir string) (*transfer.Result, error) {
	plan := transfer.New()
	plan.Emit(transfer.Copy{
		Owner:  "sync-contracts",
		Source: path.Join(SchemasDir, SchemaJSON),
		Target: SchemaJSON,
	})
	plan.Emit(transfer.Copy{
		Owner:    "sync-contracts",
		Source:   path.Join(SchemasDir, SchemaTS),
		Target:   SchemaTS,
		Optional: true,
	})

	return plan.Execute(ctx, iofs.FromOS(contractsDir), iofs.FromOS(targetDir), transfer.Options{})
}

// ManifestTarget is the path of a template's manifest inside the contracts
// tree.
func ManifestTarget(templateID string) string {
	return path.Join(TemplatesDir, templateID+".manifest.json")
}

// PublishManifest copies the exported manifest to
// templates/<templateID>.manifest.json in dst. The file is checked to be a
// manifest before it is published.
func PublishManifest(ctx context.Context, manifestPath, templateID string, dst iofs.Writable) (*transfer.Result, error) {
	templateID = strings.TrimSpace(templateID)
	if templateID == "" || strings.ContainsAny(templateID, `/\`) {
		return nil, fmt.Errorf("invalid template id %q", templateID)
	}

	raw, err := os.ReadFile(manifestPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrManifestMissing, manifestPath)
	} else if err != nil {
		return nil, err
	}
	if _, err := manifest.Read(manifestPath); err != nil {
		return nil, err
	}

	plan := transfer.New()
	plan.Emit(transfer.Copy{
		Owner:  "publish-manifest",
		Target: ManifestTarget(templateID),
		Builder: func(w io.Writer) error {
			_, err := w.Write(raw)
			return err
		},
	})

	return plan.Execute(ctx, nil, dst, transfer.Options{})
}
