package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"mockpay/internal/logger"

	"go.uber.org/zap"
)

// Handler exposes the gateway service over REST.
type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts all gateway routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", h.CreateOrder)
	mux.HandleFunc("GET /orders/{id}", h.GetOrder)
	mux.HandleFunc("POST /payment_links", h.CreatePaymentLink)
	mux.HandleFunc("GET /payment_links/{id}", h.GetPaymentLink)
	mux.HandleFunc("POST /send_webhook", h.SendWebhook)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("/", h.NotFound)
}

type errorResponse struct {
	Error string `json:"error"`
}

type deliveryErrorResponse struct {
	Error     string           `json:"error"`
	Exception string           `json:"exception"`
	Signature string           `json:"signature"`
	Body      *WebhookEnvelope `json:"body"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in CreateOrderInput
	// A malformed body is reported the same way as a missing amount.
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrAmountRequired.Error()})
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ToOrderResponse(order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToOrderResponse(order))
}

func (h *Handler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	var in CreatePaymentLinkInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrAmountRequired.Error()})
		return
	}

	link, err := h.svc.CreatePaymentLink(r.Context(), in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ToPaymentLinkResponse(link))
}

func (h *Handler) GetPaymentLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.svc.GetPaymentLink(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToPaymentLinkResponse(link))
}

func (h *Handler) SendWebhook(w http.ResponseWriter, r *http.Request) {
	var in DispatchWebhookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrTargetURLRequired.Error()})
		return
	}

	result, err := h.svc.DispatchWebhook(r.Context(), in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Index describes the service for anyone poking the root URL.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "mockpay",
		"endpoints": []string{
			"POST /orders",
			"GET  /orders/{id}",
			"POST /payment_links",
			"GET  /payment_links/{id}",
			"POST /send_webhook",
		},
	})
}

// NotFound answers unknown paths with JSON instead of the default plain
// text page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   "not found",
		"message": "Check path and HTTP method.",
	})
}

// respondError maps service errors onto the wire contract. Validation
// failures are 400, unknown identifiers 404, failed deliveries 500 with the
// attempted signature and envelope attached.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAmountRequired),
		errors.Is(err, ErrAmountNegative),
		errors.Is(err, ErrTargetURLRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrPaymentLinkNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		var derr *DeliveryError
		if errors.As(err, &derr) {
			writeJSON(w, http.StatusInternalServerError, deliveryErrorResponse{
				Error:     "failed to POST to target",
				Exception: derr.Err.Error(),
				Signature: derr.Signature,
				Body:      derr.Envelope,
			})
			return
		}
		logger.L().Error("unhandled gateway error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}
