package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIBaseURL is the root of the remote shop API.
	APIBaseURL string `yaml:"apiBaseUrl"`

	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// CartSettleDelay is the wait between authentication becoming true and
	// the first cart fetch, giving the backing service time to become
	// reachable.
	CartSettleDelay time.Duration `yaml:"cartSettleDelay"`

	// CredentialsFile is where the session token/role/userId persist
	// between runs.
	CredentialsFile string `yaml:"credentialsFile"`

	// RedisURL, when set, turns on the shared catalog cache.
	RedisURL        string        `yaml:"redisUrl"`
	CatalogCacheTTL time.Duration `yaml:"catalogCacheTtl"`
}

// Load builds the configuration in precedence order: defaults, then an
// optional YAML config file, then environment variables. A .env file in the
// working directory is honored the same way the services load theirs.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:      "http://localhost:3001",
		RequestTimeout:  10 * time.Second,
		CartSettleDelay: 500 * time.Millisecond,
		CredentialsFile: defaultCredentialsFile(),
		CatalogCacheTTL: 5 * time.Minute,
	}

	if path := configFilePath(); path != "" {
		applyFile(&cfg, path)
	}

	cfg.APIBaseURL = getenv("STOREFRONT_API_URL", cfg.APIBaseURL)
	cfg.RequestTimeout = parseDuration(os.Getenv("STOREFRONT_TIMEOUT"), cfg.RequestTimeout)
	cfg.CartSettleDelay = parseDuration(os.Getenv("STOREFRONT_CART_SETTLE_DELAY"), cfg.CartSettleDelay)
	cfg.CredentialsFile = getenv("STOREFRONT_CREDENTIALS_FILE", cfg.CredentialsFile)
	cfg.RedisURL = getenv("STOREFRONT_REDIS_URL", cfg.RedisURL)
	cfg.CatalogCacheTTL = parseDuration(os.Getenv("STOREFRONT_CATALOG_TTL"), cfg.CatalogCacheTTL)

	return cfg
}

func configFilePath() string {
	if p := strings.TrimSpace(os.Getenv("STOREFRONT_CONFIG")); p != "" {
		return p
	}
	p := filepath.Join(configDir(), "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func applyFile(cfg *Config, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// Unknown keys are ignored; a broken file falls back to defaults.
	_ = yaml.Unmarshal(raw, cfg)
}

func configDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "storefront")
	}
	return ".storefront"
}

func defaultCredentialsFile() string {
	return filepath.Join(configDir(), "credentials.json")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	if strings.TrimSpace(v) == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
