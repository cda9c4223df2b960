package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/skadi15/fruitstand/internal/core"
	"github.com/skadi15/fruitstand/internal/domain/model"
	"github.com/skadi15/fruitstand/internal/domain/pricing"
	apperrors "github.com/skadi15/fruitstand/internal/errors"
	obserrors "github.com/skadi15/fruitstand/internal/observability/errors"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultOrderListLimit is used when a listing does not specify a limit.
	DefaultOrderListLimit = 50
	// MaxOrderListLimit caps a single page of orders.
	MaxOrderListLimit = 500
	// DefaultOrderCacheTTL is how long a serialized order stays in the cache.
	DefaultOrderCacheTTL = 10 * time.Minute
	// orderLookupTimeout bounds a shared repository read once it is detached
	// from the caller that started it.
	orderLookupTimeout = 30 * time.Second

	orderCacheKeyPrefix = "order:"
)

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	Repo   core.OrderRepository // Required
	Config OrderServiceConfig
	Logger *slog.Logger // Optional
}

// OrderServiceConfig holds the optional collaborators of OrderService.
type OrderServiceConfig struct {
	Pricing  *pricing.Calculator  // Defaults to the standard catalog
	Cache    core.CacheRepository // Optional read-through cache
	CacheTTL time.Duration
	Metrics  core.MetricsSink
	Now      func() time.Time
}

// OrderList is a page of orders plus the total number stored.
type OrderList struct {
	Orders []*model.Order `json:"orders"`
	Total  int            `json:"total"`
}

// OrderService prices, stores, and retrieves fruit orders.
type OrderService struct {
	repo     core.OrderRepository
	pricing  *pricing.Calculator
	cache    core.CacheRepository
	cacheTTL time.Duration
	metrics  core.MetricsSink
	now      func() time.Time
	logger   *slog.Logger
	lookups  singleflight.Group
}

// NewOrderService constructs an OrderService.
func NewOrderService(opts OrderServiceOptions) (*OrderService, error) {
	if opts.Repo == nil {
		return nil, errors.New("OrderRepository is required")
	}

	cfg := opts.Config
	calc := cfg.Pricing
	if calc == nil {
		calc = pricing.NewCalculator(pricing.DefaultCatalog())
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultOrderCacheTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "order_service")

	return &OrderService{
		repo:     opts.Repo,
		pricing:  calc,
		cache:    cfg.Cache,
		cacheTTL: ttl,
		metrics:  cfg.Metrics,
		now:      now,
		logger:   logger,
	}, nil
}

// MustNewOrderService constructs an OrderService and panics on invalid options.
func MustNewOrderService(opts OrderServiceOptions) *OrderService {
	svc, err := NewOrderService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Place validates and prices the request, then stores the resulting order.
func (s *OrderService) Place(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		s.recordPlaceFailed(err)
		return nil, err
	}

	start := s.now()
	order := &model.Order{
		ID:         uuid.New(),
		NumApples:  req.Apples,
		NumOranges: req.Oranges,
		TotalCents: s.pricing.Total(req.Apples, req.Oranges),
		CreatedAt:  start.UTC().Truncate(time.Microsecond),
	}
	order.SyncTotal()

	if err := s.repo.Create(ctx, order); err != nil {
		s.recordPlaceFailed(err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.storeCached(ctx, order)
	s.recordPlaced(order, s.now().Sub(start))

	s.logger.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"apples", order.NumApples,
		"oranges", order.NumOranges,
		"total", order.TotalCents.String())
	return order, nil
}

// Get returns the order with the given id. Concurrent lookups of the same id
// share one repository read. The shared read does not inherit any single
// caller's cancellation; each caller stops waiting when its own ctx ends.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if id == uuid.Nil {
		return nil, apperrors.ValidationField(model.ParamOrderID, "order id is required")
	}

	if cached := s.loadCached(ctx, id); cached != nil {
		return cached, nil
	}

	flight := s.lookups.DoChan(id.String(), func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), orderLookupTimeout)
		defer cancel()

		order, err := s.repo.GetByID(fctx, id)
		if err != nil {
			return nil, err
		}
		s.storeCached(fctx, order)
		return order, nil
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.MapDBError(ctx.Err())
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		// Callers sharing a flight get their own copy.
		order := *res.Val.(*model.Order)
		return &order, nil
	}
}

// List returns one page of orders, oldest first, with the total count.
func (s *OrderService) List(ctx context.Context, opts model.OrderListOptions) (*OrderList, error) {
	opts = normalizeListOptions(opts)

	orders, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	return &OrderList{Orders: orders, Total: total}, nil
}

// Quote prices a basket without storing anything.
func (s *OrderService) Quote(apples, oranges int) (pricing.Quote, error) {
	req := model.CreateOrderRequest{Apples: apples, Oranges: oranges}
	if err := req.Validate(); err != nil {
		return pricing.Quote{}, err
	}
	return s.pricing.Quote(apples, oranges), nil
}

// Catalog exposes the prices and offers in effect.
func (s *OrderService) Catalog() pricing.Catalog {
	return s.pricing.Catalog()
}

func normalizeListOptions(opts model.OrderListOptions) model.OrderListOptions {
	if opts.Limit <= 0 {
		opts.Limit = DefaultOrderListLimit
	}
	if opts.Limit > MaxOrderListLimit {
		opts.Limit = MaxOrderListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}

func orderCacheKey(id uuid.UUID) string {
	return orderCacheKeyPrefix + id.String()
}

// loadCached returns nil on any miss or cache failure.
func (s *OrderService) loadCached(ctx context.Context, id uuid.UUID) *model.Order {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, orderCacheKey(id))
	if err != nil {
		s.logger.WarnContext(ctx, "order cache read failed", "order_id", id, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var order model.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed cached order", "order_id", id, "error", err)
		return nil
	}
	return &order
}

func (s *OrderService) storeCached(ctx context.Context, order *model.Order) {
	if s.cache == nil || order == nil {
		return
	}
	raw, err := json.Marshal(order)
	if err != nil {
		s.logger.WarnContext(ctx, "order cache encode failed", "order_id", order.ID, "error", err)
		return
	}
	if err := s.cache.Set(ctx, orderCacheKey(order.ID), raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "order cache write failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) recordPlaced(order *model.Order, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count("orders.placed", 1, nil)
	s.metrics.Count("orders.apples", int64(order.NumApples), nil)
	s.metrics.Count("orders.oranges", int64(order.NumOranges), nil)
	s.metrics.Count("orders.revenue_cents", int64(order.TotalCents), nil)
	s.metrics.Timing("orders.place", elapsed, nil)
}

func (s *OrderService) recordPlaceFailed(err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count("orders.place_failed", 1, map[string]string{"error_class": obserrors.Classify(err)})
}
