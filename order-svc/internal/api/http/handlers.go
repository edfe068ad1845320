package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bitebook/auth"
	"bitebook/order-svc/internal/domain"
	"bitebook/order-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Catalog  service.CatalogServiceInterface
	Carts    service.CartServiceInterface
	Checkout service.CheckoutServiceInterface
	Orders   service.OrderServiceInterface
	Auth     func(http.Handler) http.Handler
	Logger   *zap.Logger
}

func NewHandler(
	catalog service.CatalogServiceInterface,
	carts service.CartServiceInterface,
	checkout service.CheckoutServiceInterface,
	orders service.OrderServiceInterface,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Catalog:  catalog,
		Carts:    carts,
		Checkout: checkout,
		Orders:   orders,
		Auth:     authMiddleware,
		Logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/dishes", h.getRestaurantDishes).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/dishes/{dishId}", h.getDish).Methods("GET")

	private := r.NewRoute().Subrouter()
	private.Use(h.Auth)

	private.HandleFunc("/api/cart", h.getCart).Methods("GET")
	private.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	private.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	private.HandleFunc("/api/cart/items/{itemId}", h.setCartQuantity).Methods("PUT")
	private.HandleFunc("/api/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")

	private.HandleFunc("/api/checkout", h.getCheckout).Methods("GET")
	private.HandleFunc("/api/checkout/restaurant", h.selectRestaurant).Methods("POST")
	private.HandleFunc("/api/checkout/proceed", h.proceedToCheckout).Methods("POST")
	private.HandleFunc("/api/checkout/order-type", h.chooseOrderType).Methods("POST")
	private.HandleFunc("/api/checkout/address", h.submitAddress).Methods("POST")
	private.HandleFunc("/api/checkout/payment", h.placeOrder).Methods("POST")
	private.HandleFunc("/api/checkout/back", h.checkoutBack).Methods("POST")
	private.HandleFunc("/api/checkout/reset", h.resetCheckout).Methods("POST")

	private.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	private.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	private.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	private.HandleFunc("/api/wallet", h.getWallet).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func userID(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func pathInt(r *http.Request, key string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[key])
	return value, err == nil && value > 0
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid restaurant id")
		return
	}
	rest, err := h.Catalog.GetRestaurant(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getRestaurantDishes(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathInt(r, "restaurantId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid restaurant id")
		return
	}
	dishes, err := h.Catalog.ListDishes(r.Context(), restaurantID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	restaurantID, okRest := pathInt(r, "restaurantId")
	dishID, okDish := pathInt(r, "dishId")
	if !okRest || !okDish {
		writeError(w, http.StatusBadRequest, "invalid dish id")
		return
	}
	dish, err := h.Catalog.GetDish(r.Context(), restaurantID, dishID)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Dish not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Get(r.Context(), userID(r))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart.View())
}

type addItemRequest struct {
	RestaurantID int `json:"restaurant_id"`
	DishID       int `json:"dish_id"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.RestaurantID <= 0 || req.DishID <= 0 {
		writeError(w, http.StatusBadRequest, "restaurant_id and dish_id are required")
		return
	}

	cart, err := h.Carts.AddDish(r.Context(), userID(r), req.RestaurantID, req.DishID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Dish not found")
	case errors.Is(err, domain.ErrDishUnavailable):
		writeError(w, http.StatusUnprocessableEntity, "This dish is currently unavailable")
	case errors.Is(err, domain.ErrInvalidItem):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.internalError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, cart.View())
	}
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathInt(r, "itemId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cart, err := h.Carts.SetQuantity(r.Context(), userID(r), itemID, req.Quantity)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart.View())
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathInt(r, "itemId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	cart, err := h.Carts.RemoveItem(r.Context(), userID(r), itemID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart.View())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), userID(r)); err != nil {
		h.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutResponse struct {
	Session *domain.CheckoutSession `json:"session,omitempty"`
	Order   *domain.Order           `json:"order,omitempty"`
	Kind    service.GateKind        `json:"kind,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// writeCheckout renders a transition outcome. Refused transitions carry the
// unchanged session so the client can stay on the current step.
func (h *Handler) writeCheckout(w http.ResponseWriter, r *http.Request, status int, session *domain.CheckoutSession, order *domain.Order, err error) {
	if err == nil {
		writeJSON(w, status, checkoutResponse{Session: session, Order: order})
		return
	}

	gate, ok := service.AsGateError(err)
	if !ok {
		h.internalError(w, r, err)
		return
	}

	code := http.StatusUnprocessableEntity
	if gate.Kind == service.GateExternal {
		code = http.StatusBadGateway
		h.Logger.Warn("checkout step failed", zap.String("path", r.URL.Path), zap.Error(gate))
	}
	writeJSON(w, code, checkoutResponse{Session: session, Kind: gate.Kind, Message: gate.Message})
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.Checkout.Current(r.Context(), userID(r))
	h.writeCheckout(w, r, http.StatusOK, session, nil, err)
}

func (h *Handler) selectRestaurant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RestaurantID int `json:"restaurant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	session, err := h.Checkout.SelectRestaurant(r.Context(), userID(r), req.RestaurantID)
	h.writeCheckout(w, r, http.StatusOK, session, nil, err)
}

func (h *Handler) proceedToCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.Checkout.ProceedToCheckout(r.Context(), userID(r))
	h.writeCheckout(w, r, http.StatusOK, session, nil, err)
}

func (h *Handler) chooseOrderType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderType domain.OrderType `json:"order_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	session, err := h.Checkout.ChooseOrderType(r.Context(), userID(r), req.OrderType)
	h.writeCheckout(w, r, http.StatusOK, session, nil, err)
}

func (h *Handler) submitAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address  domain.Address  `json:"address"`
		Customer domain.Customer `json:"customer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	session, err := h.Checkout.SubmitAddress(r.Context(), userID(r), req.Address, req.Customer)
	h.writeCheckout(w, r, http.StatusOK, session, nil, err)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	session, order, err := h.Checkout.PlaceOrder(r.Context(), userID(r), req)
	h.writeCheckout(w, r, http.StatusCreated, session, order, err)
}

func (h *Handler) checkoutBack(w http.ResponseWriter, r *http.Request) {
	session, err := h.Checkout.Back(r.Context(), userID(r))
	h.writeCheckout(w, r, http.StatusOK, session, nil, err)
}

func (h *Handler) resetCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.Checkout.Reset(r.Context(), userID(r))
	h.writeCheckout(w, r, http.StatusOK, session, nil, err)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), userID(r))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), userID(r), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if order.OrderType == domain.OrderTypePickup {
		order.QRCode = h.Orders.QRLink(order.ID)
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.GetQRCode(r.Context(), userID(r), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if len(qrCode) == 0 {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) getWallet(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	balance, err := h.Orders.WalletBalance(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.Wallet{UserID: id, Balance: balance, UpdatedAt: time.Now().UTC()})
}
