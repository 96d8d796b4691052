// Package ingest imports site content files produced by the content
// pipeline into the template.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/promakler/sitekit/pkg/iofs"
	"github.com/promakler/sitekit/pkg/registry"
	"github.com/promakler/sitekit/pkg/schema"
	"github.com/promakler/sitekit/pkg/transfer"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoInput     = errors.New("missing --input <site.json> (or PROMAKLER_SITE_JSON)")
	ErrNoID        = errors.New("missing --id <domain>")
	ErrInvalidSite = errors.New("invalid site")
	ErrDeclined    = errors.New("import declined")
)

// Request describes one import.
type Request struct {
	Input     string
	ID        string
	TargetDir string

	// Validate checks the site against the schema before copying.
	Validate bool
	// Registry, when set with Validate, reports sections without a component.
	Registry *registry.Registry

	// Force overwrites an existing target without asking.
	Force bool
	// Confirm is asked before overwriting an existing target. A nil Confirm
	// overwrites.
	Confirm func(target string) (bool, error)
}

type Result struct {
	ID         string
	Input      string
	Target     string
	Changed    bool
	Issues     []schema.Issue
	Unresolved []registry.Unresolved
}

// ResolveInput picks the input path. The environment variable wins over the
// flag, as in the content pipeline's scripts.
func ResolveInput(env, flag string) string {
	if v := strings.TrimSpace(env); v != "" {
		return v
	}
	return strings.TrimSpace(flag)
}

// SiteID returns id, or the input's base name without extension.
func SiteID(input, id string) (string, error) {
	if id = strings.TrimSpace(id); id != "" {
		return id, nil
	}
	base := filepath.Base(input)
	id = strings.TrimSuffix(base, filepath.Ext(base))
	if id == "" || id == "." {
		return "", ErrNoID
	}
	return id, nil
}

// ImportSite copies the site file to <TargetDir>/<id>.json. YAML input is
// converted to JSON.
func ImportSite(ctx context.Context, req Request) (*Result, error) {
	if req.Input == "" {
		return nil, ErrNoInput
	}

	input, err := filepath.Abs(req.Input)
	if err != nil {
		return nil, err
	}
	id, err := SiteID(input, req.ID)
	if err != nil {
		return nil, err
	}

	format, err := schema.FormatFromPath(input)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	if format == schema.FormatYAML {
		if raw, err = yamlToJSON(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", input, err)
		}
	}

	res := &Result{
		ID:    id,
		Input: input,
	}

	if req.Validate {
		site, err := schema.Decode(bytes.NewReader(raw), schema.FormatJSON)
		if err != nil {
			return res, fmt.Errorf("%w: %s: %w", ErrInvalidSite, input, err)
		}
		res.Issues = append(site.Validate(), site.ValidateAllProps()...)
		if req.Registry != nil {
			res.Unresolved = req.Registry.Resolve(site)
		}
		if len(res.Issues) > 0 {
			return res, fmt.Errorf("%w: %s: %d issue(s)", ErrInvalidSite, input, len(res.Issues))
		}
	}

	dst := iofs.FromOS(req.TargetDir)
	name := id + ".json"
	res.Target = dst.DisplayPath(name)

	if !req.Force && req.Confirm != nil {
		exists, err := dst.Exists(ctx, name)
		if err != nil {
			return res, err
		}
		if exists {
			ok, err := req.Confirm(res.Target)
			if err != nil {
				return res, err
			}
			if !ok {
				return res, fmt.Errorf("%w: %s exists", ErrDeclined, res.Target)
			}
		}
	}

	plan := transfer.New()
	plan.Emit(transfer.Copy{
		Owner:  "import-site",
		Target: name,
		Builder: func(w io.Writer) error {
			_, err := w.Write(raw)
			return err
		},
	})

	out, err := plan.Execute(ctx, nil, dst, transfer.Options{})
	if err != nil {
		return res, err
	}
	res.Changed = len(out.Written) > 0
	return res, nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
