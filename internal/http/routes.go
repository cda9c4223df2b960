package httpx

import (
	"log/slog"
	"net/http"

	"github.com/skadi15/fruitstand/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Orders *service.OrderService
	Logger *slog.Logger // Optional; defaults to slog.Default()
}

// NewRouter creates the API router wrapped in recovery and request logging.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerOrderRoutes(mux, &OrderHandlers{Svc: services.Orders})
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return withMiddleware(mux, logger)
}

// withMiddleware logs outermost so recovered panics still get an access line.
func withMiddleware(h http.Handler, logger *slog.Logger) http.Handler {
	return Chain(h, Logging(logger), Recover(logger))
}

func registerOrderRoutes(mux *http.ServeMux, h *OrderHandlers) {
	mux.HandleFunc("POST /api/orders", h.Place)
	mux.HandleFunc("GET /api/orders", h.List)
	mux.HandleFunc("GET /api/orders/{id}", h.GetByID)
	mux.HandleFunc("GET /api/quote", h.Quote)
}
