package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/psolovev/storefront/internal/core/domain"
	"github.com/psolovev/storefront/internal/core/service"
	"github.com/psolovev/storefront/internal/port"
)

// HTTPHandler is the thin JSON glue over the core: it owns the cart
// sessions and maps core errors onto status codes. A cart session is
// discarded after its checkout completes, success or failure.
type HTTPHandler struct {
	mu       sync.Mutex
	carts    map[string]*service.Cart
	catalog  port.Catalog
	ledger   port.InventoryLedger
	checkout *service.CheckoutService
	orders   port.OrderRepository
}

func NewHTTPHandler(catalog port.Catalog, ledger port.InventoryLedger, checkout *service.CheckoutService, orders port.OrderRepository) *HTTPHandler {
	return &HTTPHandler{
		carts:    make(map[string]*service.Cart),
		catalog:  catalog,
		ledger:   ledger,
		checkout: checkout,
		orders:   orders,
	}
}

func (h *HTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Post("/api/carts", h.CreateCart)
	r.Get("/api/carts/{cartID}", h.GetCart)
	r.Post("/api/carts/{cartID}/items", h.AddItem)
	r.Delete("/api/carts/{cartID}/items/{sku}", h.RemoveItem)
	r.Post("/api/carts/{cartID}/checkout", h.Checkout)
	r.Get("/api/orders/{orderID}", h.GetOrder)
	return r
}

type AddItemRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	PaymentToken string `json:"payment_token"`
}

type LineItemDTO struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartResponse struct {
	CartID string        `json:"cart_id"`
	Items  []LineItemDTO `json:"items"`
	Total  float64       `json:"total"`
}

type OrderDTO struct {
	OrderID       string        `json:"order_id"`
	Items         []LineItemDTO `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TotalDiscount float64       `json:"total_discount"`
	FinalAmount   float64       `json:"final_amount"`
	CreatedAt     time.Time     `json:"created_at"`
}

type CheckoutResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Order   *OrderDTO `json:"order,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cartID := uuid.New().String()

	h.mu.Lock()
	h.carts[cartID] = service.NewCart(h.catalog, h.ledger)
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, CartResponse{CartID: cartID, Items: []LineItemDTO{}})
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	h.mu.Lock()
	defer h.mu.Unlock()
	cart, ok := h.carts[cartID]
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "cart not found"})
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(cartID, cart))
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	cart, ok := h.carts[cartID]
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "cart not found"})
		return
	}

	if err := cart.AddItem(r.Context(), req.SKU, req.Quantity); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrProductNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrInsufficientInventory):
			status = http.StatusConflict
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(cartID, cart))
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	sku := chi.URLParam(r, "sku")

	h.mu.Lock()
	defer h.mu.Unlock()
	cart, ok := h.carts[cartID]
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "cart not found"})
		return
	}

	cart.RemoveItem(sku)
	writeJSON(w, http.StatusOK, cartResponse(cartID, cart))
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	h.mu.Lock()
	cart, ok := h.carts[cartID]
	if ok {
		// the session is spent whatever the outcome
		delete(h.carts, cartID)
	}
	h.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "cart not found"})
		return
	}

	result := h.checkout.Checkout(r.Context(), cart, req.PaymentToken)

	resp := CheckoutResponse{Success: result.Success, Message: result.Message}
	if result.Order != nil {
		dto := orderDTO(*result.Order)
		resp.Order = &dto
	}

	if !result.Success {
		writeJSON(w, http.StatusConflict, resp)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	order, err := h.orders.FindByID(r.Context(), orderID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}
	if order == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "order not found"})
		return
	}
	writeJSON(w, http.StatusOK, orderDTO(*order))
}

func cartResponse(cartID string, cart *service.Cart) CartResponse {
	items := cart.Items()
	dtos := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, lineItemDTO(item))
	}
	return CartResponse{CartID: cartID, Items: dtos, Total: cart.Total()}
}

func lineItemDTO(item domain.LineItem) LineItemDTO {
	return LineItemDTO{
		SKU:       item.Product.SKU,
		Name:      item.Product.Name,
		UnitPrice: item.Product.Price,
		Quantity:  item.Quantity,
		Subtotal:  item.Subtotal(),
	}
}

func orderDTO(order domain.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemDTO(item))
	}
	return OrderDTO{
		OrderID:       order.ID,
		Items:         items,
		Subtotal:      order.Subtotal,
		TotalDiscount: order.TotalDiscount,
		FinalAmount:   order.FinalAmount,
		CreatedAt:     order.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
