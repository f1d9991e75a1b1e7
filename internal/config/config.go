package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultName           = "app"
	defaultHost           = "127.0.0.1"
	defaultPort           = 8080
	defaultEnvironment    = "development"
	defaultDataDir        = "data"
	defaultRequestTimeout = 30 * time.Second

	// DefaultEnvFile is read when no dotenv path is given explicitly.
	DefaultEnvFile = ".env"
)

// ErrInvalidConfig indicates the resolved configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validEnvironments = []string{"development", "staging", "production", "test"}

// AppConfig is the resolved application configuration.
type AppConfig struct {
	Name           string        `yaml:"name"`
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Environment    string        `yaml:"environment"`
	DataDir        string        `yaml:"data_dir"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Tags           []string      `yaml:"tags"`
}

// Overrides holds command-line flag overrides. Nil pointers leave the value
// resolved from lower-precedence sources untouched.
type Overrides struct {
	ConfigFile string
	EnvFile    string
	Name       *string
	Host       *string
	Port       *int
	Env        *string
}

// Loader resolves an AppConfig on every call to Load.
type Loader struct {
	overrides *Overrides
	lookupEnv func(string) (string, bool)
	getwd     func() (string, error)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookupEnv replaces the process environment lookup, primarily for tests.
func WithLookupEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookupEnv = lookup
	}
}

// WithWorkingDir fixes the directory used for config file discovery and the
// default dotenv file.
func WithWorkingDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.getwd = func() (string, error) { return dir, nil }
	}
}

// NewLoader creates a Loader bound to the given overrides.
func NewLoader(overrides *Overrides, opts ...LoaderOption) *Loader {
	l := &Loader{
		overrides: overrides,
		lookupEnv: os.LookupEnv,
		getwd:     os.Getwd,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load extracts configuration from all sources with precedence:
// CLI flags > config file > environment > dotenv > defaults
func (l *Loader) Load() (AppConfig, error) {
	cfg := defaultConfig()
	overrides := l.overrides
	if overrides == nil {
		overrides = &Overrides{}
	}

	dir, err := l.getwd()
	if err != nil {
		return AppConfig{}, fmt.Errorf("resolve working directory: %w", err)
	}

	dotenv, err := readEnvFile(overrides.EnvFile, dir)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read env file: %w", err)
	}
	lookup := layeredLookup(l.lookupEnv, dotenv)

	if err := applyEnvConfig(&cfg, lookup); err != nil {
		return AppConfig{}, fmt.Errorf("apply environment: %w", err)
	}

	path := resolveConfigFile(overrides.ConfigFile, dir, lookup)
	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("load config file %s: %w", path, err)
		}
		if err := applyFileConfig(&cfg, fileCfg); err != nil {
			return AppConfig{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	applyCLIOverrides(&cfg, overrides)

	if err := validateConfig(cfg); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

// defaultConfig returns an AppConfig with default values.
func defaultConfig() AppConfig {
	return AppConfig{
		Name:           defaultName,
		Host:           defaultHost,
		Port:           defaultPort,
		Environment:    defaultEnvironment,
		DataDir:        defaultDataDir,
		RequestTimeout: defaultRequestTimeout,
		Tags:           []string{},
	}
}

// readEnvFile reads dotenv values without exporting them into the process
// environment. Without an explicit path, DefaultEnvFile in dir is read and a
// missing file is not an error.
func readEnvFile(path, dir string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultEnvFile)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return values, nil
}

// layeredLookup consults the process environment first and falls back to
// dotenv values.
func layeredLookup(env func(string) (string, bool), dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if value, ok := env(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
}

func lookupTrimmed(lookup func(string) (string, bool), keys ...string) string {
	for _, key := range keys {
		if value, ok := lookup(key); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return ""
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *AppConfig, lookup func(string) (string, bool)) error {
	if name := lookupTrimmed(lookup, "APP_NAME"); name != "" {
		cfg.Name = name
	}

	if host := lookupTrimmed(lookup, "APP_HOST"); host != "" {
		cfg.Host = host
	}

	if port := lookupTrimmed(lookup, "APP_PORT", "PORT"); port != "" {
		value, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q", port)
		}
		cfg.Port = value
	}

	if env := lookupTrimmed(lookup, "APP_ENV"); env != "" {
		cfg.Environment = env
	}

	if dir := lookupTrimmed(lookup, "APP_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	if timeout := lookupTrimmed(lookup, "APP_REQUEST_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid request timeout %q: %w", timeout, err)
		}
		cfg.RequestTimeout = d
	}

	if tags := lookupTrimmed(lookup, "APP_TAGS"); tags != "" {
		cfg.Tags = parseTags(tags)
	}

	return nil
}

// applyFileConfig applies values present in the config file.
func applyFileConfig(cfg *AppConfig, fileCfg *fileConfig) error {
	if fileCfg.Name != "" {
		cfg.Name = fileCfg.Name
	}
	if fileCfg.Host != "" {
		cfg.Host = fileCfg.Host
	}
	if fileCfg.Port != nil {
		cfg.Port = *fileCfg.Port
	}
	if fileCfg.Environment != "" {
		cfg.Environment = fileCfg.Environment
	}
	if fileCfg.DataDir != "" {
		cfg.DataDir = fileCfg.DataDir
	}
	timeout, ok, err := fileCfg.requestTimeout()
	if err != nil {
		return err
	}
	if ok {
		cfg.RequestTimeout = timeout
	}
	if fileCfg.Tags != nil {
		cfg.Tags = fileCfg.Tags
	}
	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *AppConfig, overrides *Overrides) {
	if overrides.Name != nil && *overrides.Name != "" {
		cfg.Name = *overrides.Name
	}
	if overrides.Host != nil && *overrides.Host != "" {
		cfg.Host = *overrides.Host
	}
	if overrides.Port != nil {
		cfg.Port = *overrides.Port
	}
	if overrides.Env != nil && *overrides.Env != "" {
		cfg.Environment = *overrides.Env
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg AppConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidConfig)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidConfig, cfg.Port)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive, got %s", ErrInvalidConfig, cfg.RequestTimeout)
	}
	valid := false
	for _, env := range validEnvironments {
		if cfg.Environment == env {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, cfg.Environment)
	}
	return nil
}

// parseTags splits a comma-separated list, dropping blank entries.
func parseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}
