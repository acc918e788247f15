package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("cache backend = %q, want %q", cfg.Cache.Backend, CacheBackendFile)
	}
	if cfg.Store.Backend != StoreBackendMemory {
		t.Errorf("store backend = %q, want %q", cfg.Store.Backend, StoreBackendMemory)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("serve addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
ttl_hours = 48

[cache.redis]
addr = "redis.internal:6379"
db = 2

[store]
backend = "mongo"

[store.mongo]
uri = "mongodb://db.internal:27017"
database = "graphs"

[serve]
addr = ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("cache backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTLHours != 48 {
		t.Errorf("ttl_hours = %d, want 48", cfg.Cache.TTLHours)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" {
		t.Errorf("redis addr = %q", cfg.Cache.Redis.Addr)
	}
	if cfg.Cache.Redis.DB != 2 {
		t.Errorf("redis db = %d, want 2", cfg.Cache.Redis.DB)
	}
	if cfg.Store.Backend != StoreBackendMongo {
		t.Errorf("store backend = %q, want mongo", cfg.Store.Backend)
	}
	if cfg.Store.Mongo.Database != "graphs" {
		t.Errorf("mongo database = %q, want graphs", cfg.Store.Mongo.Database)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("serve addr = %q, want :9090", cfg.Serve.Addr)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[serve]
addr = ":3000"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Serve.Addr != ":3000" {
		t.Errorf("serve addr = %q, want :3000", cfg.Serve.Addr)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("cache backend = %q, want file default", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q, want default", cfg.Cache.Redis.Addr)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid cache backend",
			content: "[cache]\nbackend = \"memcached\"\n",
			wantErr: "invalid cache backend",
		},
		{
			name:    "invalid store backend",
			content: "[store]\nbackend = \"postgres\"\n",
			wantErr: "invalid store backend",
		},
		{
			name:    "negative ttl",
			content: "[cache]\nttl_hours = -1\n",
			wantErr: "ttl_hours",
		},
		{
			name:    "unknown key",
			content: "[cache]\nbakend = \"file\"\n",
			wantErr: "unknown key",
		},
		{
			name:    "malformed toml",
			content: "[cache\n",
			wantErr: "load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("LoadConfig() should have failed")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
