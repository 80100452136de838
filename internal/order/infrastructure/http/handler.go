package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/alerquim/commerce-platform/internal/events"
	"github.com/alerquim/commerce-platform/internal/order/application"
	"github.com/alerquim/commerce-platform/internal/order/domain"
	"github.com/alerquim/commerce-platform/pkg/auth"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	issuer  *auth.Issuer
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service, issuer *auth.Issuer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		issuer:  issuer,
		tracer:  otel.Tracer("order-http"),
	}
}

type createOrderReq struct {
	CustomerDocument string             `json:"customerDocument"`
	SellerName       string             `json:"sellerName"`
	Items            []events.OrderItem `json:"items"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(h.issuer.Middleware)
		r.Post("/orders", h.createOrder)
		r.Post("/orders/{id}/cancel", h.cancelOrder)
		r.With(auth.RequireRole("admin")).Get("/orders", h.listOrders)
		r.With(auth.RequireRole("admin")).Get("/orders/{id}", h.getOrder)
	})
	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrderHTTP")
	defer span.End()

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	view, err := h.service.CreateOrder(ctx, application.CreateOrderRequest{
		CustomerDocument: req.CustomerDocument,
		SellerName:       req.SellerName,
		Items:            req.Items,
	})
	if err != nil {
		status := statusFor(err)
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(view)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	view, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CancelOrderHTTP")
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := h.service.CancelOrder(ctx, id); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	var rejected *application.StockRejectedError
	switch {
	case errors.As(err, &rejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrValidationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, application.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
