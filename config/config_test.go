package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/skadi15/fruitstand/internal/domain/pricing"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "single service - http",
			input:    "http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:     "http and migrate with spaces",
			input:    " http , migrate ",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeMigrate: true},
		},
		{
			name:     "duplicate services",
			input:    "http,http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only commas",
			input:       ",,",
			expectError: true,
		},
		{
			name:        "invalid service",
			input:       "http,scheduler",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ParseServices(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	tests := []struct {
		services    string
		backend     StorageBackend
		httpOn      bool
		migrateOnly bool
		postgres    bool
	}{
		{services: "http", backend: StorageBackendMemory, httpOn: true},
		{services: "http", backend: StorageBackendPostgres, httpOn: true, postgres: true},
		{services: "migrate", backend: StorageBackendMemory, migrateOnly: true, postgres: true},
		{services: "http,migrate", backend: StorageBackendPostgres, httpOn: true, postgres: true},
		{services: "bogus", backend: StorageBackendMemory},
	}

	for _, tt := range tests {
		cfg := AppConfig{Services: tt.services, Storage: StorageConfig{Backend: tt.backend}}
		if got := cfg.IsHTTPServerEnabled(); got != tt.httpOn {
			t.Errorf("%q: IsHTTPServerEnabled() = %v, want %v", tt.services, got, tt.httpOn)
		}
		if got := cfg.IsMigrateOnlyEnabled(); got != tt.migrateOnly {
			t.Errorf("%q: IsMigrateOnlyEnabled() = %v, want %v", tt.services, got, tt.migrateOnly)
		}
		if got := cfg.NeedsPostgres(); got != tt.postgres {
			t.Errorf("%q/%s: NeedsPostgres() = %v, want %v", tt.services, tt.backend, got, tt.postgres)
		}
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Storage.Backend != StorageBackendMemory {
		t.Errorf("default backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Name != "fruitstand" || cfg.Postgres.Port != 5432 {
		t.Errorf("unexpected postgres defaults: %+v", cfg.Postgres)
	}
	if cfg.Cache.Enabled || cfg.Cache.OrderTTL != 10*time.Minute {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if got := cfg.Pricing.Catalog(); !reflect.DeepEqual(got, pricing.DefaultCatalog()) {
		t.Errorf("default catalog = %+v, want %+v", got, pricing.DefaultCatalog())
	}
	if cfg.Services != "http" {
		t.Errorf("default services = %q", cfg.Services)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	environ := map[string]string{
		"STORAGE_BACKEND":              "Postgres",
		"DB_HOST":                      "db.internal",
		"DB_PORT":                      "6543",
		"REDIS_URI":                    "redis:6379",
		"REDIS_CLUSTER_NODES":          "a:1,b:2",
		"CACHE_ENABLED":                "true",
		"CACHE_ORDER_TTL":              "1m",
		"HTTP_MAX_CONNECTIONS":         "64",
		"PRICING_APPLE_CENTS":          "30",
		"PRICING_ORANGE_CENTS":         "-5",
		"PRICING_APPLE_BOGO":           "false",
		"PRICING_ORANGE_THREE_FOR_TWO": "true",
		"SERVICES":                     "http,migrate",
	}

	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Storage.Backend != StorageBackendPostgres {
		t.Errorf("backend = %q, want postgres", cfg.Storage.Backend)
	}
	if cfg.Postgres.Host != "db.internal" || cfg.Postgres.Port != 6543 {
		t.Errorf("postgres = %+v", cfg.Postgres)
	}
	if !reflect.DeepEqual(cfg.Redis.ClusterNodes, []string{"a:1", "b:2"}) {
		t.Errorf("cluster nodes = %v", cfg.Redis.ClusterNodes)
	}
	if !cfg.Cache.Enabled || cfg.Cache.OrderTTL != time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.HTTP.MaxConnections != 64 {
		t.Errorf("max connections = %d", cfg.HTTP.MaxConnections)
	}

	catalog := cfg.Pricing.Catalog()
	if catalog.AppleCents != 30 || catalog.OrangeCents != 0 {
		t.Errorf("catalog prices = %d/%d, want 30/0", catalog.AppleCents, catalog.OrangeCents)
	}
	if catalog.Offers.AppleBOGO || !catalog.Offers.OrangeThreeForTwo {
		t.Errorf("offers = %+v", catalog.Offers)
	}
}

func TestStorageConfig_Sanitize(t *testing.T) {
	tests := map[StorageBackend]StorageBackend{
		"":           StorageBackendMemory,
		"MEMORY":     StorageBackendMemory,
		"pg":         StorageBackendPostgres,
		"postgresql": StorageBackendPostgres,
		"mem":        StorageBackendMemory,
		"postgress":  "postgress",
		" Mongo ":    "mongo",
	}
	for in, want := range tests {
		cfg := StorageConfig{Backend: in}
		cfg.Sanitize()
		if cfg.Backend != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, cfg.Backend, want)
		}
	}
}

func TestHTTPAndCacheConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{MaxConnections: -1}
	h.Sanitize()
	if h.MaxConnections != 0 || h.ReadHeaderTimeout <= 0 || h.ShutdownTimeout <= 0 {
		t.Errorf("unexpected http config: %+v", h)
	}

	c := CacheConfig{KeyPrefix: " fs: ", OrderTTL: 0}
	c.Sanitize()
	if c.KeyPrefix != "fs:" || c.OrderTTL != time.Second {
		t.Errorf("unexpected cache config: %+v", c)
	}
}

func TestValidServiceModes(t *testing.T) {
	modes := ValidServiceModes()
	expected := []ServiceMode{ServiceModeHTTP, ServiceModeMigrate}
	if !reflect.DeepEqual(modes, expected) {
		t.Errorf("ValidServiceModes() = %v, want %v", modes, expected)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
		Environment:   " prod ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if got := cfg.GlobalTags(); !reflect.DeepEqual(got, map[string]string{"env": "prod"}) {
		t.Fatalf("GlobalTags() = %v", got)
	}
}
