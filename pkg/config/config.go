package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/promakler/sitekit/pkg/version"
)

const DefaultPath = "sitekit.toml"

var (
	ErrUnknownKeys = errors.New("unknown config keys")
	ErrInvalid     = errors.New("invalid config")
)

// Config describes an Astro template project as seen by sitekit.
type Config struct {
	Sitekit   ConfigSitekit   `toml:"sitekit" yaml:"sitekit" json:"sitekit"`
	Template  ConfigTemplate  `toml:"template" yaml:"template" json:"template"`
	Registry  ConfigRegistry  `toml:"registry" yaml:"registry" json:"registry"`
	Manifest  ConfigManifest  `toml:"manifest" yaml:"manifest" json:"manifest"`
	Content   ConfigContent   `toml:"content" yaml:"content" json:"content"`
	Contracts ConfigContracts `toml:"contracts" yaml:"contracts" json:"contracts"`
	Assets    ConfigAssets    `toml:"assets" yaml:"assets" json:"assets"`
}

type ConfigSitekit struct {
	Version string `toml:"version" yaml:"version" json:"version"`
}

type ConfigTemplate struct {
	ID   string `toml:"id" yaml:"id" json:"id"`
	Name string `toml:"name" yaml:"name" json:"name"`
}

type ConfigRegistry struct {
	Source      string `toml:"source" yaml:"source" json:"source"`
	Declaration string `toml:"declaration" yaml:"declaration" json:"declaration"`
}

type ConfigManifest struct {
	Output  string `toml:"output" yaml:"output" json:"output"`
	Catalog string `toml:"catalog" yaml:"catalog" json:"catalog"`
}

type ConfigContent struct {
	SitesDir     string `toml:"sites_dir" yaml:"sites_dir" json:"sites_dir"`
	GeneratedDir string `toml:"generated_dir" yaml:"generated_dir" json:"generated_dir"`
	Glob         string `toml:"glob" yaml:"glob" json:"glob"`
}

type ConfigContracts struct {
	Dir         string        `toml:"dir" yaml:"dir" json:"dir"`
	Env         string        `toml:"env" yaml:"env" json:"env"`
	SearchDepth int           `toml:"search_depth" yaml:"search_depth" json:"search_depth"`
	SchemaDir   string        `toml:"schema_dir" yaml:"schema_dir" json:"schema_dir"`
	Bucket      *ConfigBucket `toml:"bucket" yaml:"bucket" json:"bucket"`
}

type ConfigBucket struct {
	Endpoint  string `toml:"endpoint" yaml:"endpoint" json:"endpoint"`
	Bucket    string `toml:"bucket" yaml:"bucket" json:"bucket"`
	Prefix    string `toml:"prefix" yaml:"prefix" json:"prefix"`
	Region    string `toml:"region" yaml:"region" json:"region"`
	AccessKey string `toml:"access_key" yaml:"access_key" json:"access_key"`
	SecretKey string `toml:"secret_key" yaml:"secret_key" json:"secret_key"`
	UseSSL    bool   `toml:"use_ssl" yaml:"use_ssl" json:"use_ssl"`
}

type ConfigAssets struct {
	PublicDir string            `toml:"public_dir" yaml:"public_dir" json:"public_dir"`
	Overrides map[string]string `toml:"overrides" yaml:"overrides" json:"overrides"`
}

// DefaultConfig matches the layout of the astro-template-system project.
func DefaultConfig() *Config {
	return &Config{
		Sitekit: ConfigSitekit{
			Version: version.String(),
		},
		Template: ConfigTemplate{
			ID:   "astro-template-system",
			Name: "Astro Template System",
		},
		Registry: ConfigRegistry{
			Source:      "src/utils/sectionRegistry.ts",
			Declaration: "export const SectionRegistry",
		},
		Manifest: ConfigManifest{
			Output: "schema/template.manifest.json",
		},
		Content: ConfigContent{
			SitesDir:     "src/content/sites",
			GeneratedDir: "src/content/sites/generated",
			Glob:         "**/*.json",
		},
		Contracts: ConfigContracts{
			Env:         "PROMAKLER_CONTRACTS_DIR",
			SearchDepth: 6,
			SchemaDir:   "schema",
		},
		Assets: ConfigAssets{
			PublicDir: "public",
			Overrides: map[string]string{},
		},
	}
}

// Load reads a Config from path. Keys that do not map to a field are an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to DefaultConfig when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// Save writes c as TOML.
func (c *Config) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(c)
}

// Validate checks c and fills defaults for blank fields.
func (c *Config) Validate() error {
	def := DefaultConfig()

	if err := version.CheckConfig(c.Sitekit.Version); err != nil {
		return fmt.Errorf("%w: sitekit.version: %w", ErrInvalid, err)
	}

	c.Template.ID = strings.TrimSpace(c.Template.ID)
	if c.Template.ID == "" {
		return fmt.Errorf("%w: template.id is required", ErrInvalid)
	}
	if strings.ContainsAny(c.Template.ID, `/\`) {
		return fmt.Errorf("%w: template.id must not contain path separators (got %q)", ErrInvalid, c.Template.ID)
	}
	if strings.TrimSpace(c.Template.Name) == "" {
		c.Template.Name = c.Template.ID
	}

	fill(&c.Registry.Source, def.Registry.Source)
	fill(&c.Registry.Declaration, def.Registry.Declaration)
	fill(&c.Manifest.Output, def.Manifest.Output)
	fill(&c.Content.SitesDir, def.Content.SitesDir)
	fill(&c.Content.GeneratedDir, def.Content.GeneratedDir)
	fill(&c.Content.Glob, def.Content.Glob)
	fill(&c.Contracts.Env, def.Contracts.Env)
	fill(&c.Contracts.SchemaDir, def.Contracts.SchemaDir)
	fill(&c.Assets.PublicDir, def.Assets.PublicDir)

	if c.Contracts.SearchDepth <= 0 {
		c.Contracts.SearchDepth = def.Contracts.SearchDepth
	}
	if c.Assets.Overrides == nil {
		c.Assets.Overrides = map[string]string{}
	}

	if b := c.Contracts.Bucket; b != nil {
		if strings.TrimSpace(b.Endpoint) == "" || strings.TrimSpace(b.Bucket) == "" {
			return fmt.Errorf("%w: contracts.bucket needs endpoint and bucket", ErrInvalid)
		}
		fill(&b.Region, "us-east-1")
		b.Prefix = strings.Trim(strings.TrimSpace(b.Prefix), "/")
	}

	return nil
}

// ResolvePaths makes every relative path in c relative to baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	for _, p := range []*string{
		&c.Registry.Source,
		&c.Manifest.Output,
		&c.Manifest.Catalog,
		&c.Content.SitesDir,
		&c.Content.GeneratedDir,
		&c.Contracts.Dir,
		&c.Contracts.SchemaDir,
		&c.Assets.PublicDir,
	} {
		*p = resolvePath(baseDir, *p)
	}
}

// WatchedPaths returns the files and directories whose changes matter to watch.
func (c *Config) WatchedPaths() []string {
	return []string{c.Registry.Source, c.Content.SitesDir}
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func fill(dst *string, def string) {
	*dst = strings.TrimSpace(*dst)
	if *dst == "" {
		*dst = def
	}
}
