package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

// Config holds the campusbot configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	NLU        NLUConfig        `yaml:"nlu"`
	Generative GenerativeConfig `yaml:"generative"`
	Router     RouterConfig     `yaml:"router"`
	Session    SessionConfig    `yaml:"session"`
	Auth       AuthConfig       `yaml:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	APIKeys KeyList `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the relational entity store settings.
type DatabaseConfig struct {
	Driver             string `yaml:"driver"` // postgres, sqlite (default: postgres)
	DSN                string `yaml:"dsn"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
	MigrateOnStart     bool   `yaml:"migrate_on_start"`
}

// RedisConfig holds the session store settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// NLUConfig holds Dialogflow settings.
type NLUConfig struct {
	ProjectID           string  `yaml:"project_id"`
	LanguageCode        string  `yaml:"language_code"`
	CredentialsFile     string  `yaml:"credentials_file"`
	Endpoint            string  `yaml:"endpoint"`
	TimeoutSec          int     `yaml:"timeout_sec"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// GenerativeConfig holds the generative model settings.
// APIKeys may be given as a YAML list or as one comma-separated string.
type GenerativeConfig struct {
	APIKeys           KeyList `yaml:"api_keys"`
	BaseURL           string  `yaml:"base_url"`
	Model             string  `yaml:"model"`
	Temperature       float32 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
	AttemptTimeoutSec int     `yaml:"attempt_timeout_sec"`
}

// RouterConfig tunes the query pipeline.
type RouterConfig struct {
	HistoryWindow int  `yaml:"history_window"`
	Rephrase      bool `yaml:"rephrase"`
}

// SessionConfig controls the idle-session sweeper. A negative interval disables it.
type SessionConfig struct {
	SweepIntervalSec int `yaml:"sweep_interval_sec"`
	InactiveAfterSec int `yaml:"inactive_after_sec"`
}

// RateLimitConfig limits public query traffic per client IP. Zero rps disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// KeyList is a list of secrets that also accepts a comma-separated scalar,
// so a single env variable can carry several keys.
type KeyList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *KeyList) UnmarshalYAML(node *yaml.Node) error {
	var raw []string
	switch node.Kind {
	case yaml.ScalarNode:
		raw = strings.Split(node.Value, ",")
	case yaml.SequenceNode:
		if err := node.Decode(&raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: expected a string or a list of keys", node.Line)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*k = out
	return nil
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

// Parse decodes YAML config bytes, expanding ${VAR} references first.
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
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetimeSec <= 0 {
		c.Database.ConnMaxLifetimeSec = 300
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.NLU.LanguageCode == "" {
		c.NLU.LanguageCode = "en"
	}
	if c.NLU.TimeoutSec <= 0 {
		c.NLU.TimeoutSec = 5
	}
	if c.NLU.ConfidenceThreshold <= 0 {
		c.NLU.ConfidenceThreshold = 0.3
	}
	if c.Generative.Model == "" {
		c.Generative.Model = "gpt-4o-mini"
	}
	if c.Generative.Temperature <= 0 {
		c.Generative.Temperature = 0.7
	}
	if c.Generative.MaxTokens <= 0 {
		c.Generative.MaxTokens = 512
	}
	if c.Generative.AttemptTimeoutSec <= 0 {
		c.Generative.AttemptTimeoutSec = 8
	}
	if c.Router.HistoryWindow <= 0 {
		c.Router.HistoryWindow = chat.DefaultHistoryWindow
	}
	if c.Session.SweepIntervalSec == 0 {
		c.Session.SweepIntervalSec = 60
	}
	if c.Session.InactiveAfterSec <= 0 {
		c.Session.InactiveAfterSec = 5 * 60
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = int(c.RateLimit.RequestsPerSecond) * 2
		if c.RateLimit.Burst < 1 {
			c.RateLimit.Burst = 1
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be \"postgres\" or \"sqlite\", got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if len(c.Redis.Addrs) == 0 {
		errs = append(errs, errors.New("redis.addrs is required"))
	}
	if c.NLU.ProjectID == "" {
		errs = append(errs, errors.New("nlu.project_id is required"))
	}
	if c.NLU.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("nlu.confidence_threshold must be in (0, 1], got %g", c.NLU.ConfidenceThreshold))
	}
	if len(c.Generative.APIKeys) == 0 {
		errs = append(errs, errors.New("generative.api_keys needs at least one key"))
	}
	if c.Generative.Temperature > 2 {
		errs = append(errs, fmt.Errorf("generative.temperature must be at most 2, got %g", c.Generative.Temperature))
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_second must not be negative"))
	}
	return errors.Join(errs...)
}

// Seconds converts a config value in seconds to a duration.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
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
