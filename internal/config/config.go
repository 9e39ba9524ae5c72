// Package config loads the service configuration from YAML and environment.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Export   ExportConfig   `yaml:"export"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// UpstreamConfig says where the raw documents come from. A non-empty
// SnapshotDir reads JSON files from disk instead of calling BaseURL.
type UpstreamConfig struct {
	BaseURL     string        `yaml:"base_url"     env:"UPSTREAM_BASE_URL"     env-default:"http://localhost:5000/api"`
	Timeout     time.Duration `yaml:"timeout"      env:"UPSTREAM_TIMEOUT"      env-default:"30s"`
	MaxAttempts int           `yaml:"max_attempts" env:"UPSTREAM_MAX_ATTEMPTS" env-default:"4"`
	SnapshotDir string        `yaml:"snapshot_dir" env:"UPSTREAM_SNAPSHOT_DIR"`
}

// CatalogConfig controls how the in-memory catalog is built and refreshed.
type CatalogConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"CATALOG_REFRESH_INTERVAL" env-default:"10m"`
	// RetryInterval is used instead of RefreshInterval until the first
	// load succeeds.
	RetryInterval   time.Duration `yaml:"retry_interval"   env:"CATALOG_RETRY_INTERVAL"   env-default:"15s"`
	LoadTimeout     time.Duration `yaml:"load_timeout"     env:"CATALOG_LOAD_TIMEOUT"     env-default:"1m"`
	Workers         int           `yaml:"workers"          env:"CATALOG_WORKERS"          env-default:"4"`
	IndexCacheSize  int           `yaml:"index_cache_size" env:"CATALOG_INDEX_CACHE_SIZE" env-default:"64"`
	// DeriveCareers builds the career list from course documents instead of
	// GET /careers.
	DeriveCareers bool   `yaml:"derive_careers" env:"CATALOG_DERIVE_CAREERS" env-default:"false"`
	TablesPath    string `yaml:"tables_path"    env:"CATALOG_TABLES_PATH"`
	// LegacyFieldKeys maps a course title to the per-track key older
	// documents used instead of "fields". Nil keeps the built-in table.
	LegacyFieldKeys map[string]string `yaml:"legacy_field_keys"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,X-Request-Id"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// ExportConfig holds the careers export settings.
type ExportConfig struct {
	OutDir string     `yaml:"out_dir" env:"EXPORT_OUT_DIR" env-default:"out"`
	SFTP   SFTPConfig `yaml:"sftp"`
}

// SFTPConfig holds the upload target for exports. KnownHostsPath empty
// requires InsecureIgnoreHostKey to be set explicitly.
type SFTPConfig struct {
	Host                  string `yaml:"host"                     env:"SFTP_HOST"`
	Port                  int    `yaml:"port"                     env:"SFTP_PORT"                     env-default:"22"`
	User                  string `yaml:"user"                     env:"SFTP_USER"`
	Pass                  string `yaml:"pass"                     env:"SFTP_PASS"`
	RemoteDir             string `yaml:"remote_dir"               env:"SFTP_DIR"                      env-default:"/"`
	KnownHostsPath        string `yaml:"known_hosts"              env:"SFTP_KNOWN_HOSTS"`
	InsecureIgnoreHostKey bool   `yaml:"insecure_ignore_host_key" env:"SFTP_INSECURE_IGNORE_HOST_KEY" env-default:"false"`
}

// Enabled reports whether an SFTP target is configured.
func (s SFTPConfig) Enabled() bool {
	return s.Host != "" && s.User != ""
}
