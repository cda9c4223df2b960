package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	apperrors "github.com/skadi15/fruitstand/internal/errors"
	"github.com/stretchr/testify/assert"
)

type storageError struct{}

func (*storageError) Error() string { return "storage" }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "app error", err: apperrors.Validation("bad"), want: "app_validation"},
		{
			name: "wrapped app error",
			err:  fmt.Errorf("create order: %w", apperrors.Conflict("dup")),
			want: "app_conflict",
		},
		{
			name: "innermost pointer type",
			err:  fmt.Errorf("outer: %w", &storageError{}),
			want: "errors_storageerror",
		},
		{name: "sentinel", err: context.Canceled, want: "errors_errorstring"},
		{name: "joined", err: goerrors.Join(goerrors.New("a")), want: "errors_joinerror"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
