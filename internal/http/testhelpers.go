package httpx

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/skadi15/fruitstand/internal/data"
	"github.com/skadi15/fruitstand/internal/service"
	"github.com/stretchr/testify/require"
)

// newTestOrderService wires an OrderService over an in-memory repository.
func newTestOrderService(t *testing.T) *service.OrderService {
	t.Helper()
	svc, err := service.NewOrderService(service.OrderServiceOptions{
		Repo: data.NewMemoryOrderRepo(),
		Config: service.OrderServiceConfig{
			Now: func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) },
		},
		Logger: discardLogger(),
	})
	require.NoError(t, err)
	return svc
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
