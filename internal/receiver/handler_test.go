package receiver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mockpay/internal/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "mock_webhook_secret"

func postWebhook(t *testing.T, h *Handler, body []byte, sig string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	mux := http.NewServeMux()
	h.Register(mux)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set(signature.Header, sig)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestProcess(t *testing.T) {
	h := NewHandler(testSecret)
	body := []byte(`{"event":"payment.captured","payload":{"mock":"data"},"created_at":1700000000}`)

	t.Run("Accepted", func(t *testing.T) {
		payload, err := h.Process(body, signature.Sign(body, testSecret))
		require.NoError(t, err)

		envelope := payload.(map[string]any)
		assert.Equal(t, "payment.captured", envelope["event"])
	})

	t.Run("RejectedStaleSignature", func(t *testing.T) {
		// Signature computed over a different body must not verify.
		other := []byte(`{"event":"payment.captured","payload":{"mock":"tampered"},"created_at":1700000000}`)

		payload, err := h.Process(body, signature.Sign(other, testSecret))
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.Nil(t, payload, "a rejected delivery must never surface the payload")
	})

	t.Run("RejectedWrongSecret", func(t *testing.T) {
		_, err := h.Process(body, signature.Sign(body, "other_secret"))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("RejectedMissingSignature", func(t *testing.T) {
		_, err := h.Process(body, "")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("ValidSignatureInvalidJSON", func(t *testing.T) {
		raw := []byte("not json at all")
		_, err := h.Process(raw, signature.Sign(raw, testSecret))
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})
}

func TestWebhookHandler(t *testing.T) {
	h := NewHandler(testSecret)
	body := []byte(`{"event":"payment.captured","payload":{"order_id":"order_1"},"created_at":1700000000}`)

	t.Run("Accepted", func(t *testing.T) {
		w, resp := postWebhook(t, h, body, signature.Sign(body, testSecret))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", resp["status"])

		received := resp["received"].(map[string]any)
		assert.Equal(t, "payment.captured", received["event"])
	})

	t.Run("Rejected", func(t *testing.T) {
		tampered := []byte(`{"event":"payment.captured","payload":{"order_id":"order_2"},"created_at":1700000000}`)
		w, resp := postWebhook(t, h, tampered, signature.Sign(body, testSecret))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid signature", resp["error"])
		assert.NotContains(t, resp, "received")
		// The response must not leak the expected digest.
		assert.NotContains(t, w.Body.String(), signature.Sign(tampered, testSecret))
	})

	t.Run("MissingHeader", func(t *testing.T) {
		w, resp := postWebhook(t, h, body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid signature", resp["error"])
	})

	t.Run("Health", func(t *testing.T) {
		mux := http.NewServeMux()
		h.Register(mux)

		req := httptest.NewRequest("GET", "/healthz", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
