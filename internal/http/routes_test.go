package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skadi15/fruitstand/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_OrderLifecycle(t *testing.T) {
	srv := httptest.NewServer(NewRouter(RouterServices{
		Orders: newTestOrderService(t),
		Logger: discardLogger(),
	}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/orders?apples=1&oranges=2", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var placed model.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&placed))
	assert.InDelta(t, 1.45, placed.TotalCost, 1e-9)

	get, err := http.Get(srv.URL + "/api/orders/" + placed.ID.String())
	require.NoError(t, err)
	defer get.Body.Close()
	require.Equal(t, http.StatusOK, get.StatusCode)

	var fetched model.Order
	require.NoError(t, json.NewDecoder(get.Body).Decode(&fetched))
	assert.Equal(t, placed.ID, fetched.ID)
	assert.True(t, placed.IsEquivalentTo(&fetched))
}

func TestRouter_RoutesAndMethods(t *testing.T) {
	h := NewRouter(RouterServices{Orders: newTestOrderService(t), Logger: discardLogger()})

	tests := []struct {
		method, target string
		want           int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodHead, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/orders", http.StatusOK},
		{http.MethodGet, "/api/quote?apples=1&oranges=1", http.StatusOK},
		{http.MethodDelete, "/api/orders", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.target)
	}
}
