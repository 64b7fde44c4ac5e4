package config

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goassetd/internal/storage/database"
	"github.com/LeJamon/goassetd/internal/storage/snapshot/compression"
)

// Config is the full daemon configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Log      LogConfig      `mapstructure:"log"`

	configPath string
}

// ServerConfig configures the JSON-RPC listener.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// DatabaseConfig selects and locates the key-value backend holding
// snapshots.
type DatabaseConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// SnapshotConfig tunes snapshot encoding.
type SnapshotConfig struct {
	Compression string `mapstructure:"compression"`
	CacheSize   int    `mapstructure:"cache_size"`
}

// AuditConfig locates the SQLite audit log. An empty path disables
// auditing.
type AuditConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// GetConfigPath returns the path the config was loaded from, empty when
// running on defaults only.
func (c *Config) GetConfigPath() string { return c.configPath }

// LogLevel parses the configured level into a logrus level.
func (c *Config) LogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(c.Log.Level)
}

// Validate checks the configuration for values the daemon cannot run
// with.
func Validate(c *Config) error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr must not be empty")
	}

	backends := database.AvailableBackends()
	found := false
	for _, b := range backends {
		if b == c.Database.Backend {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("database.backend %q not available (have %v)", c.Database.Backend, backends)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	if _, err := compression.Get(c.Snapshot.Compression); err != nil {
		return fmt.Errorf("snapshot.compression: %w", err)
	}
	if c.Snapshot.CacheSize < 1 {
		return fmt.Errorf("snapshot.cache_size must be at least 1, got %d", c.Snapshot.CacheSize)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
