package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/skadi15/fruitstand/internal/domain/model"
	"github.com/skadi15/fruitstand/internal/domain/pricing"
	"github.com/skadi15/fruitstand/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestOrderHandlers_Place_Form(t *testing.T) {
	tests := []struct {
		apples, oranges string
		want            float64
	}{
		{"1", "2", 1.45},
		{"5", "2", 1.95},
		{"1", "7", 3.25},
		{"4", "6", 2.90},
		{"0", "0", 0},
	}

	h := &OrderHandlers{Svc: newTestOrderService(t)}
	for _, tt := range tests {
		form := url.Values{"apples": {tt.apples}, "oranges": {tt.oranges}}
		r := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()

		h.Place(w, r)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var order model.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
		assert.InDelta(t, tt.want, order.TotalCost, 1e-9)
		assert.NotEqual(t, uuid.Nil, order.ID)
	}
}

func TestOrderHandlers_Place_QueryAndJSON(t *testing.T) {
	h := &OrderHandlers{Svc: newTestOrderService(t)}

	r := httptest.NewRequest(http.MethodPost, "/api/orders?apples=5&oranges=2", nil)
	w := httptest.NewRecorder()
	h.Place(w, r)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCost":1.95`)

	r = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"apples":1,"oranges":7}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	w = httptest.NewRecorder()
	h.Place(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"orderId", "numApples", "numOranges", "totalCost"} {
		assert.Contains(t, raw, key)
	}
	assert.InDelta(t, 3.25, raw["totalCost"], 1e-9)
}

func TestOrderHandlers_Place_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		body    string
		json    bool
		errCode string
		message string
	}{
		{
			name:    "missing apples",
			target:  "/api/orders?oranges=1",
			errCode: "validation_failed",
			message: "Parameter apples not in request",
		},
		{
			name:    "missing oranges",
			target:  "/api/orders?apples=1",
			errCode: "validation_failed",
			message: "Parameter oranges not in request",
		},
		{
			name:    "not an integer",
			target:  "/api/orders?apples=abc&oranges=1",
			errCode: "validation_failed",
			message: "Parameter apples does not contain a valid integer [value=abc]",
		},
		{
			name:    "negative",
			target:  "/api/orders?apples=1&oranges=-3",
			errCode: "validation_failed",
			message: "Parameter oranges must not be negative [value=-3]",
		},
		{
			name:    "json missing field",
			target:  "/api/orders",
			body:    `{"apples":2}`,
			json:    true,
			errCode: "validation_failed",
			message: "Parameter oranges not in request",
		},
		{
			name:    "json negative",
			target:  "/api/orders",
			body:    `{"apples":-2,"oranges":0}`,
			json:    true,
			errCode: "validation_failed",
			message: "Parameter apples must not be negative [value=-2]",
		},
		{
			name:    "json malformed",
			target:  "/api/orders",
			body:    `{"apples":`,
			json:    true,
			errCode: "invalid_json",
		},
	}

	h := &OrderHandlers{Svc: newTestOrderService(t)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			if tt.json {
				r.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()

			h.Place(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.errCode, body["error"])
			if tt.message != "" {
				assert.Equal(t, tt.message, body["message"])
			}
		})
	}
}

func TestOrderHandlers_GetByID(t *testing.T) {
	svc := newTestOrderService(t)
	h := &OrderHandlers{Svc: svc}

	placed, err := svc.Place(context.Background(), model.CreateOrderRequest{Apples: 4, Oranges: 6})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/orders/"+placed.ID.String(), nil)
		r.SetPathValue("id", placed.ID.String())
		w := httptest.NewRecorder()

		h.GetByID(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var got model.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, placed.IsEquivalentTo(&got))
	})

	t.Run("not found", func(t *testing.T) {
		missing := uuid.New()
		r := httptest.NewRequest(http.MethodGet, "/api/orders/"+missing.String(), nil)
		r.SetPathValue("id", missing.String())
		w := httptest.NewRecorder()

		h.GetByID(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "not_found", body["error"])
		assert.Equal(t, "No order found for ID "+missing.String(), body["message"])
	})

	t.Run("malformed id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/orders/nope", nil)
		r.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		h.GetByID(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_id", decodeError(t, w)["error"])
	})
}

func TestOrderHandlers_List(t *testing.T) {
	svc := newTestOrderService(t)
	h := &OrderHandlers{Svc: svc}
	ctx := context.Background()

	var ids []uuid.UUID
	for i := range 3 {
		o, err := svc.Place(ctx, model.CreateOrderRequest{Apples: i, Oranges: i})
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/orders?limit=2&offset=1", nil)
	w := httptest.NewRecorder()
	h.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var list service.OrderList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, ids[1], list.Orders[0].ID)

	// order_id switches to a single lookup
	r = httptest.NewRequest(http.MethodGet, "/api/orders?order_id="+ids[2].String(), nil)
	w = httptest.NewRecorder()
	h.List(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	var one model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &one))
	assert.Equal(t, ids[2], one.ID)

	r = httptest.NewRequest(http.MethodGet, "/api/orders?order_id=", nil)
	w = httptest.NewRecorder()
	h.List(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandlers_List_Empty(t *testing.T) {
	h := &OrderHandlers{Svc: newTestOrderService(t)}

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orders":[],"total":0}`, w.Body.String())
}

func TestOrderHandlers_Quote(t *testing.T) {
	h := &OrderHandlers{Svc: newTestOrderService(t)}

	r := httptest.NewRequest(http.MethodGet, "/api/quote?apples=3&oranges=3", nil)
	w := httptest.NewRecorder()
	h.Quote(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var q pricing.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	// 2 apples charged (50) + 2 oranges charged (120)
	assert.Equal(t, model.Money(170), q.TotalCents)
	apples, ok := q.Line(model.ParamApples)
	require.True(t, ok)
	assert.Equal(t, "buy-one-get-one-free", apples.Offer)

	r = httptest.NewRequest(http.MethodGet, "/api/quote?apples=3", nil)
	w = httptest.NewRecorder()
	h.Quote(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
