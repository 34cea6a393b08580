// Package config loads settings from an optional file and MCMAP_ environment
// variables.
package config

import (
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "MCMAP"

type Config struct {
	Workers int   `mapstructure:"workers"`
	Cache   Cache `mapstructure:"cache"`
	Log     Log   `mapstructure:"log"`
}

type Cache struct {
	// Regions is the number of decoded regions kept in memory.
	Regions int64 `mapstructure:"regions"`
}

type Log struct {
	Level string `mapstructure:"level"`
	// File enables logging to a rotated file instead of stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("cache.regions", 16)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
}

// Load reads path when it is not empty. Environment variables such as
// MCMAP_CACHE_REGIONS override the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &cfg, nil
}
