package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/skadi15/fruitstand/internal/domain/model"
)

// OrderBuilder provides a fluent interface for building orders in tests.
type OrderBuilder struct {
	order model.Order
}

// NewOrder starts an empty order with a fresh id and TestTime as its timestamp.
func NewOrder() *OrderBuilder {
	return &OrderBuilder{order: model.Order{
		ID:        uuid.New(),
		CreatedAt: TestTime(),
	}}
}

// WithID sets the order id.
func (b *OrderBuilder) WithID(id uuid.UUID) *OrderBuilder {
	b.order.ID = id
	return b
}

// WithQuantities sets both line quantities.
func (b *OrderBuilder) WithQuantities(apples, oranges int) *OrderBuilder {
	b.order.NumApples = apples
	b.order.NumOranges = oranges
	return b
}

// WithTotalCents sets the stored total.
func (b *OrderBuilder) WithTotalCents(cents model.Money) *OrderBuilder {
	b.order.TotalCents = cents
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *OrderBuilder) WithCreatedAt(t time.Time) *OrderBuilder {
	b.order.CreatedAt = t
	return b
}

// Build returns a copy of the order with TotalCost derived from the cents.
func (b *OrderBuilder) Build() *model.Order {
	o := b.order
	o.SyncTotal()
	return &o
}
