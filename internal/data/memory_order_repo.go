package data

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/skadi15/fruitstand/internal/core"
	"github.com/skadi15/fruitstand/internal/domain/model"
	apperrors "github.com/skadi15/fruitstand/internal/errors"
)

var _ core.OrderRepository = (*MemoryOrderRepo)(nil)

// MemoryOrderRepo is an in-process order store. It keeps orders in
// insertion order and is safe for concurrent use.
type MemoryOrderRepo struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*model.Order
	order []uuid.UUID
}

// NewMemoryOrderRepo creates an empty MemoryOrderRepo.
func NewMemoryOrderRepo() *MemoryOrderRepo {
	return &MemoryOrderRepo{byID: make(map[uuid.UUID]*model.Order)}
}

// Create stores a copy of order.
func (r *MemoryOrderRepo) Create(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return apperrors.MapDBError(err)
	}
	if order == nil {
		return errors.New("order is required")
	}
	if order.ID == uuid.Nil {
		return apperrors.Validation("order id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[order.ID]; exists {
		return apperrors.Conflict("order id already exists")
	}
	cp := *order
	r.byID[order.ID] = &cp
	r.order = append(r.order, order.ID)
	return nil
}

// GetByID returns a copy of the stored order.
func (r *MemoryOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, orderNotFound(id)
	}
	cp := *o
	cp.SyncTotal()
	return &cp, nil
}

// List returns copies of stored orders in insertion order.
func (r *MemoryOrderRepo) List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset >= len(r.order) {
		return []*model.Order{}, nil
	}
	end := min(offset+limit, len(r.order))

	out := make([]*model.Order, 0, end-offset)
	for _, id := range r.order[offset:end] {
		cp := *r.byID[id]
		cp.SyncTotal()
		out = append(out, &cp)
	}
	return out, nil
}

// Count returns the number of stored orders.
func (r *MemoryOrderRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}
