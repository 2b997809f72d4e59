// Package config loads webmodels settings from defaults, an optional YAML file and WEBMODELS_* env vars.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "WEBMODELS"

type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreJSON   StoreKind = "json"
)

type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Navigator NavigatorConfig `mapstructure:"navigator"`
	Preview   PreviewConfig   `mapstructure:"preview"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

type StoreConfig struct {
	Kind StoreKind `mapstructure:"kind"`
	Path string    `mapstructure:"path"`
}

// NavigatorConfig is expressed in terminal cells: a phone-sized terminal is narrow,
// a landscape phone is also short.
type NavigatorConfig struct {
	DesktopDuration time.Duration `mapstructure:"desktop_duration"`
	MobileDuration  time.Duration `mapstructure:"mobile_duration"`
	MobileWidth     int           `mapstructure:"mobile_width"`
	ShortHeight     int           `mapstructure:"short_height"`
	SwipeThreshold  int           `mapstructure:"swipe_threshold"`
}

type PreviewConfig struct {
	CacheDir string        `mapstructure:"cache_dir"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

// DataDir is where the default store lives.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "webmodels")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.kind", string(StoreSQLite))
	v.SetDefault("store.path", "")
	v.SetDefault("navigator.desktop_duration", 1000*time.Millisecond)
	v.SetDefault("navigator.mobile_duration", 800*time.Millisecond)
	v.SetDefault("navigator.mobile_width", 80)
	v.SetDefault("navigator.short_height", 20)
	v.SetDefault("navigator.swipe_threshold", 3)
	v.SetDefault("preview.cache_dir", "")
	v.SetDefault("preview.cache_ttl", 30*time.Minute)
	v.SetDefault("preview.timeout", 20*time.Second)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("log.file", "")
}

// Load reads path when given. Without a path it looks for config.yaml in DataDir and
// tolerates its absence.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DataDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	c.Store.Kind = StoreKind(strings.ToLower(strings.TrimSpace(string(c.Store.Kind))))
	switch c.Store.Kind {
	case StoreSQLite, StoreJSON:
	default:
		return fmt.Errorf("config: unknown store.kind %q", c.Store.Kind)
	}
	if c.Store.Path == "" {
		name := "webmodels.db"
		if c.Store.Kind == StoreJSON {
			name = "contacts.json"
		}
		c.Store.Path = filepath.Join(DataDir(), name)
	}
	if c.Navigator.DesktopDuration <= 0 || c.Navigator.MobileDuration <= 0 {
		return errors.New("config: navigator durations must be positive")
	}
	if c.Navigator.SwipeThreshold <= 0 {
		return errors.New("config: navigator.swipe_threshold must be positive")
	}
	return nil
}
