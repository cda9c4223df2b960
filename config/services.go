package config

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP API.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeMigrate applies database migrations. On its own the process exits afterwards.
	ServiceModeMigrate ServiceMode = "migrate"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeMigrate}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	for part := range strings.SplitSeq(servicesStr, ",") {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeMigrate:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, migrate)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// StorageBackend selects where orders are persisted.
type StorageBackend string

const (
	// StorageBackendMemory keeps orders in process memory.
	StorageBackendMemory StorageBackend = "memory"
	// StorageBackendPostgres stores orders in PostgreSQL.
	StorageBackendPostgres StorageBackend = "postgres"
)

// StorageConfig selects the order repository implementation.
type StorageConfig struct {
	Backend StorageBackend `env:"STORAGE_BACKEND" envDefault:"memory"`
}

// Sanitize normalises case and aliases of the backend name. Unknown names are
// kept so startup rejects them.
func (s *StorageConfig) Sanitize() {
	backend := StorageBackend(strings.ToLower(strings.TrimSpace(string(s.Backend))))
	switch backend {
	case StorageBackendPostgres, "postgresql", "pg":
		s.Backend = StorageBackendPostgres
	case StorageBackendMemory, "mem", "":
		s.Backend = StorageBackendMemory
	default:
		s.Backend = backend
	}
}
