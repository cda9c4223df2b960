// Package httpx provides the HTTP API for placing and looking up fruit orders.
package httpx

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/skadi15/fruitstand/internal/domain/model"
	apperrors "github.com/skadi15/fruitstand/internal/errors"
	"github.com/skadi15/fruitstand/internal/service"
)

// OrderHandlers provides HTTP handlers for order operations.
type OrderHandlers struct {
	Svc *service.OrderService
}

// placeOrderBody is the JSON form of a new order. Pointers distinguish an
// omitted quantity from zero.
type placeOrderBody struct {
	Apples  *int `json:"apples"`
	Oranges *int `json:"oranges"`
}

// Place handles POST /api/orders. Quantities come from form or query
// parameters, or from a JSON body.
func (h *OrderHandlers) Place(w http.ResponseWriter, r *http.Request) {
	var (
		req model.CreateOrderRequest
		err error
	)
	if isJSONRequest(r) {
		var body placeOrderBody
		if !DecodeJSON(w, r, &body) {
			return
		}
		req, err = body.toRequest()
	} else {
		req, err = quantitiesFromForm(r)
	}
	if err != nil {
		WriteAppError(w, err, "invalid_request")
		return
	}

	order, err := h.Svc.Place(r.Context(), req)
	if err != nil {
		WriteAppError(w, err, "create_failed")
		return
	}

	WriteJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders. With order_id it behaves like GetByID.
func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	if raw, ok := r.URL.Query()[model.ParamOrderID]; ok {
		h.writeOrder(w, r, firstOrEmpty(raw))
		return
	}

	limit, offset := ParseLimitOffset(r, service.DefaultOrderListLimit, service.MaxOrderListLimit)
	list, err := h.Svc.List(r.Context(), model.OrderListOptions{Limit: limit, Offset: offset})
	if err != nil {
		WriteAppError(w, err, "list_failed")
		return
	}

	WriteJSON(w, http.StatusOK, list)
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	h.writeOrder(w, r, r.PathValue("id"))
}

// Quote handles GET /api/quote. It prices a basket without storing it.
func (h *OrderHandlers) Quote(w http.ResponseWriter, r *http.Request) {
	req, err := quantitiesFromForm(r)
	if err != nil {
		WriteAppError(w, err, "invalid_request")
		return
	}

	quote, err := h.Svc.Quote(req.Apples, req.Oranges)
	if err != nil {
		WriteAppError(w, err, "quote_failed")
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

func (h *OrderHandlers) writeOrder(w http.ResponseWriter, r *http.Request, raw string) {
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_id",
			Err:     fmt.Errorf("invalid order ID %q", raw),
		})
		return
	}

	order, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err, "get_failed")
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

func quantitiesFromForm(r *http.Request) (model.CreateOrderRequest, error) {
	if err := r.ParseForm(); err != nil {
		return model.CreateOrderRequest{}, apperrors.Validation(err.Error())
	}

	raw, ok := formParam(r, model.ParamApples)
	apples, err := model.ParseQuantity(model.ParamApples, raw, ok)
	if err != nil {
		return model.CreateOrderRequest{}, err
	}
	raw, ok = formParam(r, model.ParamOranges)
	oranges, err := model.ParseQuantity(model.ParamOranges, raw, ok)
	if err != nil {
		return model.CreateOrderRequest{}, err
	}
	return model.CreateOrderRequest{Apples: apples, Oranges: oranges}, nil
}

func (b placeOrderBody) toRequest() (model.CreateOrderRequest, error) {
	if b.Apples == nil {
		return model.CreateOrderRequest{}, model.MissingParameter(model.ParamApples)
	}
	if b.Oranges == nil {
		return model.CreateOrderRequest{}, model.MissingParameter(model.ParamOranges)
	}
	req := model.CreateOrderRequest{Apples: *b.Apples, Oranges: *b.Oranges}
	return req, req.Validate()
}

func firstOrEmpty(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
