package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skadi15/fruitstand/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces, not on the concrete data adapters.

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error)
	Count(ctx context.Context) (int, error)
}

// CacheRepository defines a byte-oriented cache with per-key TTLs.
// Get returns (nil, nil) when the key does not exist.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}

// MetricsSink receives counters emitted by services. A nil sink disables metrics.
type MetricsSink interface {
	Count(name string, value int64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}
