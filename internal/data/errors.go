package data

import (
	"github.com/google/uuid"
	apperrors "github.com/skadi15/fruitstand/internal/errors"
)

// ErrOrderNotFound is the sentinel matched by errors.Is for missing orders.
var ErrOrderNotFound = apperrors.NotFound("order not found")

// orderNotFound returns a NotFound error carrying the caller-facing message
// while still matching ErrOrderNotFound.
func orderNotFound(id uuid.UUID) error {
	err := apperrors.NotFoundf("No order found for ID %s", id)
	err.Cause = ErrOrderNotFound
	return err
}
