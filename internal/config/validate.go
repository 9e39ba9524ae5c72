package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if err := c.Upstream.validate(); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	if err := c.Export.SFTP.validate(); err != nil {
		return fmt.Errorf("export.sftp: %w", err)
	}
	return nil
}

func (u *UpstreamConfig) validate() error {
	if u.SnapshotDir != "" {
		return nil
	}
	parsed, err := url.Parse(u.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", u.BaseURL)
	}
	if u.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", u.MaxAttempts)
	}
	return nil
}

func (c *CatalogConfig) validate() error {
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must be >= 0 (got %s)", c.RefreshInterval)
	}
	if c.RetryInterval < 0 {
		return fmt.Errorf("retry_interval must be >= 0 (got %s)", c.RetryInterval)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", c.Workers)
	}
	if c.IndexCacheSize <= 0 {
		return fmt.Errorf("index_cache_size must be > 0 (got %d)", c.IndexCacheSize)
	}
	for title, key := range c.LegacyFieldKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("legacy_field_keys[%q] is empty", title)
		}
	}
	return nil
}

func (s *SFTPConfig) validate() error {
	if !s.Enabled() {
		return nil
	}
	if s.Pass == "" {
		return errors.New("pass is required when host and user are set")
	}
	if s.KnownHostsPath == "" && !s.InsecureIgnoreHostKey {
		return errors.New("known_hosts is required unless insecure_ignore_host_key is set")
	}
	return nil
}
