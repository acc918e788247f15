package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Store backend names accepted in the config file.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// Config holds user configuration loaded from config.toml.
type Config struct {
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the graph cache backend.
type CacheConfig struct {
	Backend  string      `toml:"backend"`
	TTLHours int         `toml:"ttl_hours"`
	Redis    RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the snapshot store backend.
type StoreConfig struct {
	Backend string      `toml:"backend"`
	Mongo   MongoConfig `toml:"mongo"`
}

// MongoConfig holds connection settings for the mongo store backend.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServeConfig holds settings for the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:  CacheBackendFile,
			TTLHours: 24,
			Redis:    RedisConfig{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend: StoreBackendMemory,
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: "depscope"},
		},
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// LoadConfig reads the config file at path, falling back to the XDG config
// location when path is empty. A missing file yields the defaults; a present
// but invalid file is an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := configPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreBackendMemory, StoreBackendMongo:
	default:
		return fmt.Errorf("invalid store backend %q", c.Store.Backend)
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("cache ttl_hours must not be negative")
	}
	return nil
}
