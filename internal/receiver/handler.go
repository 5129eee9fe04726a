// Package receiver implements the webhook subscriber: it re-signs the raw
// bytes of each delivery and only decodes bodies whose signature checks out.
package receiver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mockpay/internal/logger"
	"mockpay/internal/signature"

	"go.uber.org/zap"
)

// Handler verifies inbound webhook deliveries against the shared secret.
type Handler struct {
	secret string
}

func NewHandler(secret string) *Handler {
	return &Handler{secret: secret}
}

// Process verifies a single delivery. The signature is recomputed over the
// exact received bytes — re-serializing a parsed form would silently break
// verification on whitespace or key-order differences. A rejected body is
// never decoded.
func (h *Handler) Process(body []byte, candidate string) (any, error) {
	if !signature.Verify(body, h.secret, candidate) {
		return nil, ErrInvalidSignature
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}

// Register mounts the subscriber routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhook", h.Webhook)
	mux.HandleFunc("GET /healthz", h.Health)
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}
	defer r.Body.Close()

	payload, err := h.Process(body, r.Header.Get(signature.Header))
	if err != nil {
		// Do not echo the computed digest: a rejected caller learns only
		// that the signature did not match.
		logger.FromCtx(r.Context()).Warn("webhook rejected",
			zap.String("remote", r.RemoteAddr),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": userMessage(err)})
		return
	}

	logger.FromCtx(r.Context()).Info("webhook verified",
		zap.String("remote", r.RemoteAddr),
		zap.Int("body_bytes", len(body)),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"received": payload,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func userMessage(err error) string {
	if errors.Is(err, ErrInvalidPayload) {
		return ErrInvalidPayload.Error()
	}
	return ErrInvalidSignature.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}
