package ygggo_dbclient

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config holds client configuration.
type Config struct {
	// Driver allows overriding the sql driver (e.g., "mysql" in prod, "sqlmock" in tests).
	Driver string
	// DSN is used verbatim when non-empty; otherwise the DSN is built from the
	// field-based values below.
	DSN      string
	Hostname string
	Hostport int
	Database string
	Username string
	Password string
	Charset  string
	// Prefix is prepended to every logical table name before SQL generation.
	Prefix string
	Params map[string]string

	Logging   bool
	Telemetry bool

	// raw is the full loaded mapping, kept for dotted-path resolution.
	raw map[string]any
}

// LoadConfig reads configuration from a YAML file. Environment variables with
// the YGGGO_DB_ prefix override file values (e.g. YGGGO_DB_HOSTNAME).
// A missing file or non-mapping content is a *ConfigurationError.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("YGGGO_DB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("hostport", 3306)
	v.SetDefault("charset", "utf8mb4")

	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	cfg := &Config{
		Driver:    v.GetString("driver"),
		DSN:       v.GetString("dsn"),
		Hostname:  v.GetString("hostname"),
		Hostport:  v.GetInt("hostport"),
		Database:  v.GetString("database"),
		Username:  v.GetString("username"),
		Password:  v.GetString("password"),
		Charset:   v.GetString("charset"),
		Prefix:    v.GetString("prefix"),
		Params:    v.GetStringMapString("params"),
		Logging:   v.GetBool("logging"),
		Telemetry: v.GetBool("telemetry"),
		raw:       v.AllSettings(),
	}
	return cfg, nil
}

// MustLoadConfig is LoadConfig that panics on error. Configuration failures at
// startup are unrecoverable for the process.
func MustLoadConfig(path string) *Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

var (
	loadOnce  sync.Once
	loadedCfg *Config
	loadedErr error
)

// loadConfigOnce performs the guarded one-time load used by Default.
// The result, error included, is cached for the process lifetime.
func loadConfigOnce(path string) (*Config, error) {
	loadOnce.Do(func() {
		loadedCfg, loadedErr = LoadConfig(path)
	})
	return loadedCfg, loadedErr
}

// Resolve walks the loaded mapping along a dotted path ("section.key").
// The first path segment is case-normalized. A missing level returns def.
// A trailing dot ("section.") returns the whole sub-mapping.
func (c *Config) Resolve(path string, def any) any {
	if c == nil || c.raw == nil {
		return def
	}
	segments := strings.Split(path, ".")
	if len(segments) > 0 {
		segments[0] = strings.ToLower(segments[0])
	}
	var cur any = c.raw
	for _, seg := range segments {
		if seg == "" {
			return cur
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		next, ok := m[seg]
		if !ok {
			return def
		}
		cur = next
	}
	return cur
}
