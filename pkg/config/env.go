package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvSiteJSON    = "PROMAKLER_SITE_JSON"
	EnvS3AccessKey = "PROMAKLER_S3_ACCESS_KEY"
	EnvS3SecretKey = "PROMAKLER_S3_SECRET_KEY"
)

// LoadEnv loads root/.env into the process environment. Variables that are
// already set win, and a missing file is not an error.
func LoadEnv(root string) {
	_ = godotenv.Load(filepath.Join(root, ".env"))
}

// ApplyEnv fills settings that may come from the environment.
func (c *Config) ApplyEnv() {
	if b := c.Contracts.Bucket; b != nil {
		if b.AccessKey == "" {
			b.AccessKey = strings.TrimSpace(os.Getenv(EnvS3AccessKey))
		}
		if b.SecretKey == "" {
			b.SecretKey = strings.TrimSpace(os.Getenv(EnvS3SecretKey))
		}
	}
}

// ContractsEnvDir returns the contracts directory named by the configured
// environment variable, if any.
func (c *Config) ContractsEnvDir() string {
	return strings.TrimSpace(os.Getenv(c.Contracts.Env))
}
