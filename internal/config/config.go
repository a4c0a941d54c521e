package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/entmatch/internal/domain"
	logpkg "github.com/kailas-cloud/entmatch/internal/logger"
)

// Index drivers.
const (
	DriverBleve = "bleve"
	DriverRedis = "redis"
)

// Config holds the entmatch service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // json, console (default: json)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// IndexConfig selects and configures the catalog index backend.
type IndexConfig struct {
	Driver string `yaml:"driver"` // bleve, redis (default: bleve)

	// bleve
	Path string `yaml:"path"` // empty = in-memory

	// redis
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	IndexName        string   `yaml:"index_name"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`

	SeedFile       string       `yaml:"seed_file"`
	Fields         FieldsConfig `yaml:"fields"`
	ExcludedFields []string     `yaml:"excluded_fields"`
}

// FieldsConfig names the record schema fields.
type FieldsConfig struct {
	ID                 string `yaml:"id"`
	Match              string `yaml:"match"`
	TokenCount         string `yaml:"token_count"`
	SearchDefinitionID string `yaml:"search_definition_id"`
}

// Schema converts the field names to the domain schema.
func (f FieldsConfig) Schema() domain.Schema {
	return domain.Schema{
		IDField:                 f.ID,
		MatchField:              f.Match,
		TokenCountField:         f.TokenCount,
		SearchDefinitionIDField: f.SearchDefinitionID,
	}
}

// SearchConfig holds matching settings.
type SearchConfig struct {
	Limit int `yaml:"limit"` // candidate window (default: 100)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then
// applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Index.Driver == "" {
		c.Index.Driver = DriverBleve
	}
	if c.Index.ReadinessTimeout <= 0 {
		c.Index.ReadinessTimeout = 10
	}
	if c.Index.KeyPrefix == "" {
		c.Index.KeyPrefix = "entmatch:rec:"
	}
	if c.Index.IndexName == "" {
		c.Index.IndexName = "entmatch:idx"
	}

	def := domain.DefaultSchema()
	f := &c.Index.Fields
	if f.ID == "" {
		f.ID = def.IDField
	}
	if f.Match == "" {
		f.Match = def.MatchField
	}
	if f.TokenCount == "" {
		f.TokenCount = def.TokenCountField
	}
	if f.SearchDefinitionID == "" {
		f.SearchDefinitionID = def.SearchDefinitionIDField
	}

	if c.Search.Limit <= 0 {
		c.Search.Limit = 100
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = logpkg.FormatJSON
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Index.Driver {
	case DriverBleve:
	case DriverRedis:
		if len(c.Index.Addrs) == 0 {
			return fmt.Errorf("index.addrs is required for driver %q", DriverRedis)
		}
	default:
		return fmt.Errorf("index.driver must be %q or %q, got %q", DriverBleve, DriverRedis, c.Index.Driver)
	}

	switch c.Logging.Format {
	case logpkg.FormatJSON, logpkg.FormatConsole:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", logpkg.FormatJSON, logpkg.FormatConsole, c.Logging.Format)
	}

	f := c.Index.Fields
	seen := map[string]string{}
	for key, name := range map[string]string{
		"match":                f.Match,
		"token_count":          f.TokenCount,
		"search_definition_id": f.SearchDefinitionID,
	} {
		if other, dup := seen[name]; dup {
			return fmt.Errorf("index.fields.%s and index.fields.%s both name %q", key, other, name)
		}
		seen[name] = key
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
