// Package mocks provides gomock implementations of the core ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockOrderRepository(ctrl)
//	repo.EXPECT().GetByID(gomock.Any(), id).Return(order, nil)
package mocks

// Generate mock for OrderRepository interface from internal/core package.
// Create, GetByID, List, Count
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=order_repository_mock.go github.com/skadi15/fruitstand/internal/core OrderRepository

// Generate mock for CacheRepository interface from internal/core package.
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/skadi15/fruitstand/internal/core CacheRepository
