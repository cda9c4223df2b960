package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/skadi15/fruitstand/internal/errors"
)

// Request parameter names accepted by the order endpoints.
const (
	ParamApples  = "apples"
	ParamOranges = "oranges"
	ParamOrderID = "order_id"
)

// MaxQuantity bounds a single line item so totals stay well inside int64 cents.
const MaxQuantity = 1_000_000

// Money is an amount in cents.
type Money int64

// Dollars returns the amount as a decimal dollar value for the wire.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// String formats the amount as dollars with two decimals.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// Order is a priced, stored fruit order. The JSON names (orderId, numApples,
// numOranges, totalCost) are part of the public API.
type Order struct {
	ID         uuid.UUID `json:"orderId"    db:"id"`
	NumApples  int       `json:"numApples"  db:"num_apples"`
	NumOranges int       `json:"numOranges" db:"num_oranges"`
	TotalCents Money     `json:"-"          db:"total_cents"`
	TotalCost  float64   `json:"totalCost"  db:"-"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}

// SyncTotal derives TotalCost from TotalCents.
func (o *Order) SyncTotal() {
	o.TotalCost = o.TotalCents.Dollars()
}

// MarshalJSON always derives totalCost from the stored cents.
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	p := plain(o)
	p.TotalCost = o.TotalCents.Dollars()
	return json.Marshal(p)
}

// UnmarshalJSON restores TotalCents from the dollar amount on the wire.
func (o *Order) UnmarshalJSON(b []byte) error {
	type plain Order
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*o = Order(p)
	o.TotalCents = Money(math.Round(o.TotalCost * 100))
	return nil
}

// IsEquivalentTo reports whether other describes the same purchase,
// ignoring identity and timestamps.
func (o *Order) IsEquivalentTo(other *Order) bool {
	if o == nil || other == nil {
		return false
	}
	return o.NumApples == other.NumApples &&
		o.NumOranges == other.NumOranges &&
		o.TotalCents == other.TotalCents
}

// CreateOrderRequest carries the quantities for a new order.
type CreateOrderRequest struct {
	Apples  int `json:"apples"`
	Oranges int `json:"oranges"`
}

// Validate checks that both quantities are in range.
func (r *CreateOrderRequest) Validate() error {
	if r == nil {
		return apperrors.Validation("create order request is required")
	}
	if err := checkQuantity(ParamApples, r.Apples); err != nil {
		return err
	}
	return checkQuantity(ParamOranges, r.Oranges)
}

// OrderListOptions controls paging for order listings.
type OrderListOptions struct {
	Limit  int
	Offset int
}

// ParseQuantity converts a raw request parameter into a quantity.
// present distinguishes an absent parameter from an empty one.
func ParseQuantity(name, raw string, present bool) (int, error) {
	if !present {
		return 0, MissingParameter(name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ValidationField(name,
			fmt.Sprintf("Parameter %s does not contain a valid integer [value=%s]", name, raw))
	}
	if err := checkQuantity(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

// MissingParameter reports a required request parameter that was not sent.
func MissingParameter(name string) error {
	return apperrors.ValidationField(name, fmt.Sprintf("Parameter %s not in request", name))
}

func checkQuantity(name string, v int) error {
	if v < 0 {
		return apperrors.ValidationField(name,
			fmt.Sprintf("Parameter %s must not be negative [value=%d]", name, v))
	}
	if v > MaxQuantity {
		return apperrors.ValidationField(name,
			fmt.Sprintf("Parameter %s cannot exceed %d [value=%d]", name, MaxQuantity, v))
	}
	return nil
}
