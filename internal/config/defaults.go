package config

import (
	"github.com/spf13/viper"
)

// setDefaults installs the values a bare daemon starts with.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", "127.0.0.1:5005")

	v.SetDefault("database.backend", "pebble")
	v.SetDefault("database.path", "/var/lib/assetd/db")

	v.SetDefault("snapshot.compression", "lz4")
	v.SetDefault("snapshot.cache_size", 16)

	v.SetDefault("audit.path", "")

	v.SetDefault("log.level", "info")
}
